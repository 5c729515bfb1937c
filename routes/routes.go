package routes

import (
	"codelearn/config"
	"codelearn/controllers"
	"codelearn/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/auth/signup", authController.Signup)
	app.Post("/auth/signin", authController.Signin)
	app.Post("/auth/forgot-password", authController.ForgotPassword)
	app.Post("/auth/reset-password", authController.ResetPassword)
	app.Get("/auth/:id", authController.GetUser)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(db, cfg)

	// Courses routes. The specific paths are registered before /:id so they
	// are not swallowed by the parameter route.
	coursesController := controllers.NewCoursesController(db, cfg)
	commentsController := controllers.NewCommentsController(db, cfg)
	courses := app.Group("/courses")
	courses.Get("/", coursesController.ListCourses)
	courses.Get("/courses/search", coursesController.SearchCourses)
	courses.Get("/incompleted-courses/:userId", coursesController.GetIncompleteCourses)
	courses.Post("/add", authMiddleware, adminMiddleware, coursesController.CreateCourse)
	courses.Delete("/course/:id", authMiddleware, adminMiddleware, coursesController.DeleteCourse)
	courses.Post("/:id/comments", authMiddleware, commentsController.AddComment)
	courses.Get("/:id/comments", commentsController.GetComments)
	courses.Get("/:id", coursesController.GetCourse)

	// Progress routes
	progressController := controllers.NewProgressController(db, cfg)
	progress := app.Group("/progress", authMiddleware)
	progress.Post("/answer/:questionId", progressController.SubmitAnswer)
	progress.Post("/complete-level/:levelId", progressController.CompleteLevel)
	progress.Post("/complete-course/:courseId", progressController.CompleteCourse)
}
