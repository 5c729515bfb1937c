package controllers

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"codelearn/config"
	"codelearn/models"
	"codelearn/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CoursesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCoursesController(db *gorm.DB, cfg *config.Config) *CoursesController {
	return &CoursesController{DB: db, Cfg: cfg}
}

// CreateCourse godoc
// @Summary Create a course
// @Description Creates a course together with its nested levels, slides and questions
// @Tags courses
// @Accept json
// @Produce json
// @Param input body CreateCourseInput true "Course data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/add [post]
func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	var input CreateCourseInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}

	course, created, err := assembleCourse(cc.DB, input)
	if err != nil {
		// The committed ids are logged, not exposed: partial aggregates are a
		// server-side concern (see assembleCourse).
		log.Printf("course assembly aborted: %v (committed: %+v)", err, created)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create course",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Course created",
		"course":  course,
	})
}

// GetCourse godoc
// @Summary Get course details
// @Description Returns one course with levels, slides and questions expanded
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} models.Course
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /courses/{id} [get]
func (cc *CoursesController) GetCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}

	var course models.Course
	if err := cc.DB.
		Preload("Levels", orderByID("levels")).
		Preload("Levels.Slides", orderByID("slides")).
		Preload("Levels.Slides.Questions", orderByID("questions")).
		Preload("Comments").
		First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Course not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Could not query database",
			"message": err.Error(),
		})
	}

	course.Rating = models.AverageRating(course.Comments)

	return c.JSON(course)
}

// ListCourses godoc
// @Summary List courses
// @Description Returns all courses as summary projections for catalog browsing
// @Tags courses
// @Accept json
// @Produce json
// @Success 200 {array} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponse
// @Router /courses/ [get]
func (cc *CoursesController) ListCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := cc.DB.
		Preload("Levels", orderByID("levels")).
		Preload("Comments").
		Find(&courses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Could not query database",
			"message": err.Error(),
		})
	}

	result := make([]fiber.Map, 0, len(courses))
	for i := range courses {
		result = append(result, courseSummary(&courses[i]))
	}

	return c.JSON(result)
}

// SearchCourses godoc
// @Summary Search courses
// @Description Case-insensitive substring search over title and language
// @Tags courses
// @Accept json
// @Produce json
// @Param title query string false "Title filter"
// @Param language query string false "Language filter"
// @Success 200 {array} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponse
// @Router /courses/courses/search [get]
func (cc *CoursesController) SearchCourses(c *fiber.Ctx) error {
	title := c.Query("title")
	language := c.Query("language")

	// LOWER(...) LIKE instead of ILIKE so the same query runs on postgres and
	// sqlite. Absent filters match everything.
	query := cc.DB.Model(&models.Course{})
	if title != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(title)+"%")
	}
	if language != "" {
		query = query.Where("LOWER(language) LIKE ?", "%"+strings.ToLower(language)+"%")
	}

	var courses []models.Course
	if err := query.
		Preload("Levels", orderByID("levels")).
		Preload("Comments").
		Find(&courses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Could not query database",
			"message": err.Error(),
		})
	}

	result := make([]fiber.Map, 0, len(courses))
	for i := range courses {
		result = append(result, courseSummary(&courses[i]))
	}

	return c.JSON(result)
}

// GetIncompleteCourses godoc
// @Summary Incomplete courses for a user
// @Description Courses the user has started (some level completed) but not marked completed
// @Tags courses
// @Accept json
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {array} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Router /courses/incompleted-courses/{userId} [get]
func (cc *CoursesController) GetIncompleteCourses(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	var user models.User
	if err := cc.DB.Preload("CompletedCourses").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	completed := make(map[uint]bool, len(user.CompletedCourses))
	for _, course := range user.CompletedCourses {
		completed[course.ID] = true
	}

	var courses []models.Course
	if err := cc.DB.
		Preload("Levels", orderByID("levels")).
		Preload("Levels.Completions").
		Find(&courses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	result := make([]fiber.Map, 0)
	for i := range courses {
		if completed[courses[i].ID] {
			continue
		}
		if !startedByUser(&courses[i], user.ID) {
			continue
		}
		result = append(result, courseSummary(&courses[i]))
	}

	return c.JSON(result)
}

// DeleteCourse godoc
// @Summary Delete a course
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/course/{id} [delete]
func (cc *CoursesController) DeleteCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	// Children are not cascaded; levels keep their course_id and become
	// unreachable through retrieval.
	if err := cc.DB.Delete(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete course")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"message": "Course deleted",
	})
}

// courseSummary is the catalog projection: title, description, language,
// rating and level titles, with slides left unexpanded.
func courseSummary(course *models.Course) fiber.Map {
	levels := make([]fiber.Map, 0, len(course.Levels))
	for _, level := range course.Levels {
		levels = append(levels, fiber.Map{
			"id":    level.ID,
			"title": level.Title,
		})
	}

	return fiber.Map{
		"id":          course.ID,
		"title":       course.Title,
		"description": course.Description,
		"language":    course.Language,
		"rating":      models.AverageRating(course.Comments),
		"levels":      levels,
	}
}

func startedByUser(course *models.Course, userID uint) bool {
	for _, level := range course.Levels {
		for _, completion := range level.Completions {
			if completion.UserID == userID {
				return true
			}
		}
	}
	return false
}

func orderByID(table string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(table + ".id")
	}
}
