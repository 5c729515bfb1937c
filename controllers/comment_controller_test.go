package controllers_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentsAndDerivedRating(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, adminToken := createUser(t, db, cfg, "admin", true)
	_, aliceToken := createUser(t, db, cfg, "alice", false)
	_, bobToken := createUser(t, db, cfg, "bob", false)

	created := seedCourse(t, app, adminToken, "Python Basics", "Python")
	path := fmt.Sprintf("/courses/%d/comments", courseID(t, created))

	resp := doRequest(t, app, "POST", path, aliceToken, map[string]interface{}{
		"comment": "Loved it",
		"rating":  5,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeMap(t, resp)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "alice", data["name"], "display name is snapshotted at post time")

	resp = doRequest(t, app, "POST", path, bobToken, map[string]interface{}{
		"comment": "Decent intro",
		"rating":  3,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doRequest(t, app, "GET", path, "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decodeList(t, resp), 2)

	// Course rating is the average of its comment ratings, derived on read.
	resp = doRequest(t, app, "GET", coursePath(courseID(t, created)), "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	course := decodeMap(t, resp)
	assert.Equal(t, 4.0, course["rating"])
}

func TestAddCommentValidation(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, adminToken := createUser(t, db, cfg, "admin", true)
	_, userToken := createUser(t, db, cfg, "alice", false)

	created := seedCourse(t, app, adminToken, "Python Basics", "Python")
	path := fmt.Sprintf("/courses/%d/comments", courseID(t, created))

	resp := doRequest(t, app, "POST", path, userToken, map[string]interface{}{
		"comment": "out of range",
		"rating":  6,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, "POST", "/courses/9999/comments", userToken, map[string]interface{}{
		"comment": "no such course",
		"rating":  4,
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, app, "POST", path, "", map[string]interface{}{
		"comment": "anonymous",
		"rating":  4,
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
