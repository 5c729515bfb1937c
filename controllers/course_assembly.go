package controllers

import (
	"fmt"

	"codelearn/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuestionInput, SlideInput, LevelInput and CreateCourseInput mirror the
// request body of POST /courses/add.
type QuestionInput struct {
	QuestionText   string   `json:"questionText"`
	Type           string   `json:"type"`
	Options        []string `json:"options"`
	CorrectAnswers []string `json:"correctAnswers"`
	Code           string   `json:"code"`
}

type SlideInput struct {
	Content   []string        `json:"content"`
	Code      []string        `json:"code"`
	Questions []QuestionInput `json:"questions"`
}

type LevelInput struct {
	Title  string       `json:"title"`
	Slides []SlideInput `json:"slides"`
}

type CreateCourseInput struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Language    string       `json:"language"`
	Levels      []LevelInput `json:"levels"`
}

// createdIDs accumulates the identifiers committed by each assembly stage so
// a mid-assembly failure can name exactly which rows were left behind.
type createdIDs struct {
	QuestionIDs []uint
	SlideIDs    []uint
	LevelIDs    []uint
	CourseID    uint
}

// assembleCourse persists a course aggregate stage by stage: each slide before
// its questions, each level after its slides, the course itself last, with
// ownership columns stamped once the parent row exists.
//
// The stages are not wrapped in a transaction. A stage failure aborts the
// remaining stages and returns the accumulator; rows already committed stay
// behind as orphans with no compensating cleanup.
func assembleCourse(db *gorm.DB, input CreateCourseInput) (*models.Course, *createdIDs, error) {
	created := &createdIDs{}

	var levels []models.Level
	for li := range input.Levels {
		levelInput := &input.Levels[li]

		var slides []models.Slide
		for si := range levelInput.Slides {
			slideInput := &levelInput.Slides[si]

			slide := models.Slide{
				Content: datatypes.NewJSONSlice(slideInput.Content),
				Code:    datatypes.NewJSONSlice(slideInput.Code),
			}
			if err := db.Create(&slide).Error; err != nil {
				return nil, created, fmt.Errorf("create slide %d of level %d: %w", si, li, err)
			}
			created.SlideIDs = append(created.SlideIDs, slide.ID)

			for qi := range slideInput.Questions {
				questionInput := &slideInput.Questions[qi]

				questionType := questionInput.Type
				if questionType == "" {
					questionType = models.QuestionSingleChoice
				}

				question := models.Question{
					SlideID:        slide.ID,
					QuestionText:   questionInput.QuestionText,
					Type:           questionType,
					Options:        datatypes.NewJSONSlice(questionInput.Options),
					CorrectAnswers: datatypes.NewJSONSlice(questionInput.CorrectAnswers),
					Code:           questionInput.Code,
				}
				if err := db.Create(&question).Error; err != nil {
					return nil, created, fmt.Errorf("create question %d of slide %d: %w", qi, si, err)
				}
				created.QuestionIDs = append(created.QuestionIDs, question.ID)
				slide.Questions = append(slide.Questions, question)
			}

			slides = append(slides, slide)
		}

		level := models.Level{Title: levelInput.Title}
		if err := db.Create(&level).Error; err != nil {
			return nil, created, fmt.Errorf("create level %d: %w", li, err)
		}
		created.LevelIDs = append(created.LevelIDs, level.ID)

		for i := range slides {
			if err := db.Model(&models.Slide{}).Where("id = ?", slides[i].ID).
				Update("level_id", level.ID).Error; err != nil {
				return nil, created, fmt.Errorf("attach slide %d to level %d: %w", i, li, err)
			}
			slides[i].LevelID = level.ID
		}
		level.Slides = slides

		levels = append(levels, level)
	}

	course := models.Course{
		Title:       input.Title,
		Description: input.Description,
		Language:    input.Language,
	}
	if err := db.Create(&course).Error; err != nil {
		return nil, created, fmt.Errorf("create course: %w", err)
	}
	created.CourseID = course.ID

	for i := range levels {
		if err := db.Model(&models.Level{}).Where("id = ?", levels[i].ID).
			Update("course_id", course.ID).Error; err != nil {
			return nil, created, fmt.Errorf("attach level %d to course: %w", i, err)
		}
		levels[i].CourseID = course.ID
	}
	course.Levels = levels

	return &course, created, nil
}
