package controllers

import (
	"errors"
	"strconv"
	"time"

	"codelearn/config"
	"codelearn/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewProgressController(db *gorm.DB, cfg *config.Config) *ProgressController {
	return &ProgressController{DB: db, Cfg: cfg}
}

// SubmitAnswer godoc
// @Summary Submit an answer
// @Description Grades the answer against the question's accepted answers and records the attempt
// @Tags progress
// @Accept json
// @Produce json
// @Param questionId path int true "Question ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/answer/{questionId} [post]
func (pc *ProgressController) SubmitAnswer(c *fiber.Ctx) error {
	questionID, err := strconv.Atoi(c.Params("questionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid question ID",
		})
	}

	var input struct {
		UserID uint   `json:"userId"`
		Answer string `json:"answer"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.UserID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "userId is required",
		})
	}

	var question models.Question
	if err := pc.DB.First(&question, questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Question not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	// The verdict returned here is authoritative; clients should trust it
	// instead of re-grading locally.
	correct := question.IsCorrect(input.Answer)

	attempt := models.AnswerAttempt{
		QuestionID: question.ID,
		UserID:     input.UserID,
		Answer:     input.Answer,
		Correct:    correct,
	}
	if err := pc.DB.Create(&attempt).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not record attempt",
		})
	}

	return c.JSON(fiber.Map{
		"questionId": question.ID,
		"correct":    correct,
	})
}

// CompleteLevel godoc
// @Summary Mark a level completed
// @Description Adds the user to the level's completion set; repeat calls are no-ops
// @Tags progress
// @Accept json
// @Produce json
// @Param levelId path int true "Level ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/complete-level/{levelId} [post]
func (pc *ProgressController) CompleteLevel(c *fiber.Ctx) error {
	levelID, err := strconv.Atoi(c.Params("levelId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid level ID",
		})
	}

	var input struct {
		UserID uint `json:"userId"`
	}
	if err := c.BodyParser(&input); err != nil || input.UserID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "userId is required",
		})
	}

	var level models.Level
	if err := pc.DB.First(&level, levelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Level not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	var user models.User
	if err := pc.DB.First(&user, input.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	// Conditional insert against the (level_id, user_id) unique index, never a
	// read-modify-write: concurrent completions from two devices cannot
	// produce a second entry.
	completion := models.LevelCompletion{
		LevelID:     level.ID,
		UserID:      user.ID,
		CompletedAt: time.Now(),
	}
	if err := pc.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "level_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&completion).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not record level completion",
		})
	}

	if err := pc.DB.Preload("Completions").First(&level, level.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Level completed",
		"level":   level,
	})
}

// CompleteCourse godoc
// @Summary Mark a course completed
// @Description Adds the course to the user's completed set; duplicate adds are no-ops
// @Tags progress
// @Accept json
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/complete-course/{courseId} [post]
//
// Course completion stays an explicit call. It is not auto-derived when the
// last level completes, so the level set and the course set remain
// independently updated.
func (pc *ProgressController) CompleteCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}

	var input struct {
		UserID uint `json:"userId"`
	}
	if err := c.BodyParser(&input); err != nil || input.UserID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "userId is required",
		})
	}

	var course models.Course
	if err := pc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Course not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	var user models.User
	if err := pc.DB.First(&user, input.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	// Join-table upsert is ON CONFLICT DO NOTHING, so re-adding keeps set
	// semantics.
	if err := pc.DB.Model(&user).Association("CompletedCourses").Append(&course); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not record course completion",
		})
	}

	if err := pc.DB.Preload("CompletedCourses").First(&user, user.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	completedIDs := make([]uint, 0, len(user.CompletedCourses))
	for _, completed := range user.CompletedCourses {
		completedIDs = append(completedIDs, completed.ID)
	}

	return c.JSON(fiber.Map{
		"message":          "Course completed",
		"userId":           user.ID,
		"completedCourses": completedIDs,
	})
}
