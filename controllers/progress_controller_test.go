package controllers_test

import (
	"fmt"
	"testing"

	"codelearn/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func firstQuestionID(t *testing.T, app *fiber.App, id uint) uint {
	t.Helper()

	resp := doRequest(t, app, "GET", coursePath(id), "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	course := decodeMap(t, resp)
	level := course["levels"].([]interface{})[0].(map[string]interface{})
	slide := level["slides"].([]interface{})[0].(map[string]interface{})
	question := slide["questions"].([]interface{})[0].(map[string]interface{})
	return uint(question["ID"].(float64))
}

func TestSubmitAnswerGrading(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, adminToken := createUser(t, db, cfg, "admin", true)
	user, userToken := createUser(t, db, cfg, "student", false)

	created := seedCourse(t, app, adminToken, "Python Basics", "Python")
	questionID := firstQuestionID(t, app, courseID(t, created))
	path := fmt.Sprintf("/progress/answer/%d", questionID)

	// Seeded question: options print/echo/log, correct answer "print".
	resp := doRequest(t, app, "POST", path, userToken, map[string]interface{}{
		"userId": user.ID,
		"answer": "print",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decodeMap(t, resp)["correct"])

	resp = doRequest(t, app, "POST", path, userToken, map[string]interface{}{
		"userId": user.ID,
		"answer": "echo",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, false, decodeMap(t, resp)["correct"])

	// Both submissions were recorded.
	var attempts int64
	db.Model(&models.AnswerAttempt{}).
		Where("question_id = ? AND user_id = ?", questionID, user.ID).
		Count(&attempts)
	assert.EqualValues(t, 2, attempts)

	resp = doRequest(t, app, "POST", "/progress/answer/9999", userToken, map[string]interface{}{
		"userId": user.ID,
		"answer": "print",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCompleteLevelIdempotent(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, adminToken := createUser(t, db, cfg, "admin", true)
	user, userToken := createUser(t, db, cfg, "student", false)

	created := seedCourse(t, app, adminToken, "Python Basics", "Python")
	levelID := firstLevelID(t, created)
	path := fmt.Sprintf("/progress/complete-level/%d", levelID)

	for i := 0; i < 2; i++ {
		resp := doRequest(t, app, "POST", path, userToken, map[string]interface{}{
			"userId": user.ID,
		})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	var count int64
	db.Model(&models.LevelCompletion{}).
		Where("level_id = ? AND user_id = ?", levelID, user.ID).
		Count(&count)
	assert.EqualValues(t, 1, count, "repeat completion must not add a second entry")
}

func TestCompleteLevelUnknownLevel(t *testing.T) {
	app, db, cfg := newTestApp(t)
	user, userToken := createUser(t, db, cfg, "student", false)

	resp := doRequest(t, app, "POST", "/progress/complete-level/9999", userToken, map[string]interface{}{
		"userId": user.ID,
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCompleteCourseSetSemantics(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, adminToken := createUser(t, db, cfg, "admin", true)
	user, userToken := createUser(t, db, cfg, "student", false)

	created := seedCourse(t, app, adminToken, "Python Basics", "Python")
	path := fmt.Sprintf("/progress/complete-course/%d", courseID(t, created))

	for i := 0; i < 2; i++ {
		resp := doRequest(t, app, "POST", path, userToken, map[string]interface{}{
			"userId": user.ID,
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		completed := decodeMap(t, resp)["completedCourses"].([]interface{})
		assert.Len(t, completed, 1, "duplicate add must be a no-op")
	}

	var fetched models.User
	require.NoError(t, db.Preload("CompletedCourses").First(&fetched, user.ID).Error)
	require.Len(t, fetched.CompletedCourses, 1)
	assert.EqualValues(t, courseID(t, created), fetched.CompletedCourses[0].ID)
}
