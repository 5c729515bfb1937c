package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"codelearn/config"
	"codelearn/models"
	"codelearn/routes"
	"codelearn/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestApp wires the full route table against a fresh sqlite database so
// every test starts from an empty store.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *config.Config) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, utils.MigrateModels(db))

	cfg := &config.Config{
		JWTSecret:  "testsecret",
		ServerPort: "8080",
	}

	app := fiber.New()
	routes.SetupRoutes(app, db, cfg)

	return app, db, cfg
}

func createUser(t *testing.T, db *gorm.DB, cfg *config.Config, username string, admin bool) (models.User, string) {
	t.Helper()

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "not-a-real-hash",
		IsAdmin:      admin,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := utils.GenerateJWTToken(user.ID, cfg)
	require.NoError(t, err)

	return user, token
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, payload interface{}) *http.Response {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

func decodeList(t *testing.T, resp *http.Response) []interface{} {
	t.Helper()
	var result []interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

// sampleCourseInput is one level with two slides, each slide carrying one
// single-choice question.
func sampleCourseInput(title, language string) map[string]interface{} {
	return map[string]interface{}{
		"title":       title,
		"description": "Learn " + language + " from scratch",
		"language":    language,
		"levels": []map[string]interface{}{
			{
				"title": "Getting Started",
				"slides": []map[string]interface{}{
					{
						"content": []string{"Variables hold values.", "Declare one like this:"},
						"code":    []string{"", "x = 1"},
						"questions": []map[string]interface{}{
							{
								"questionText":   "Which keyword prints a value?",
								"type":           models.QuestionSingleChoice,
								"options":        []string{"print", "echo", "log"},
								"correctAnswers": []string{"print"},
							},
						},
					},
					{
						"content": []string{"Loops repeat work."},
						"code":    []string{"for i in range(3): ..."},
						"questions": []map[string]interface{}{
							{
								"questionText":   "How many iterations does range(3) give?",
								"type":           models.QuestionSingleChoice,
								"options":        []string{"2", "3", "4"},
								"correctAnswers": []string{"3"},
							},
						},
					},
				},
			},
		},
	}
}

// seedCourse creates a course through the API and returns the created
// aggregate from the response body.
func seedCourse(t *testing.T, app *fiber.App, adminToken, title, language string) map[string]interface{} {
	t.Helper()

	resp := doRequest(t, app, "POST", "/courses/add", adminToken, sampleCourseInput(title, language))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	result := decodeMap(t, resp)
	course, ok := result["course"].(map[string]interface{})
	require.True(t, ok, "create response should embed the course")
	return course
}

func courseID(t *testing.T, course map[string]interface{}) uint {
	t.Helper()
	id, ok := course["ID"].(float64)
	require.True(t, ok, "course should carry an ID")
	return uint(id)
}

func firstLevelID(t *testing.T, course map[string]interface{}) uint {
	t.Helper()
	levels, ok := course["levels"].([]interface{})
	require.True(t, ok)
	require.NotEmpty(t, levels)
	level := levels[0].(map[string]interface{})
	return uint(level["ID"].(float64))
}

func coursePath(id uint) string {
	return fmt.Sprintf("/courses/%d", id)
}
