package controllers

import (
	"errors"
	"strconv"

	"codelearn/config"
	"codelearn/models"
	"codelearn/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CommentsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCommentsController(db *gorm.DB, cfg *config.Config) *CommentsController {
	return &CommentsController{DB: db, Cfg: cfg}
}

// AddCommentRequest defines the request body for adding a comment
type AddCommentRequest struct {
	Text   string `json:"comment" example:"This course was amazing!"`
	Rating int    `json:"rating" example:"5" minimum:"0" maximum:"5"`
}

// AddComment godoc
// @Summary Add comment to course
// @Description Adds a comment with rating to a course
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param input body AddCommentRequest true "Comment data"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{id}/comments [post]
func (cc *CommentsController) AddComment(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var input AddCommentRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Rating < 0 || input.Rating > 5 {
		return utils.BadRequest(c, "Rating must be between 0 and 5")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var user models.User
	if err := cc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	comment := models.Comment{
		CourseID: course.ID,
		UserID:   user.ID,
		Name:     user.Username, // snapshot, not re-resolved on later renames
		Text:     input.Text,
		Rating:   input.Rating,
	}

	if err := cc.DB.Create(&comment).Error; err != nil {
		return utils.InternalServerError(c, "Could not create comment")
	}

	return utils.Created(c, comment)
}

// GetComments godoc
// @Summary Get course comments
// @Description Returns all comments for a course
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {array} models.Comment
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /courses/{id}/comments [get]
func (cc *CommentsController) GetComments(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	comments := make([]models.Comment, 0)
	if err := cc.DB.Where("course_id = ?", courseID).Find(&comments).Error; err != nil {
		return utils.InternalServerError(c, "Could not fetch comments")
	}

	return c.JSON(comments)
}
