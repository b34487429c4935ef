package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Developersbbs/key-system-client-sub001/backend/config"
	"github.com/Developersbbs/key-system-client-sub001/backend/controllers"
	"github.com/Developersbbs/key-system-client-sub001/backend/middleware"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, logger *log.Logger) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(db, cfg)
	adminMiddleware := middleware.AdminMiddleware()

	// Profile
	usersController := controllers.NewUsersController(db, cfg)
	app.Get("/api/user/profile", authMiddleware, usersController.GetProfile)

	// Course routes (literal paths before the :courseId ones)
	coursesController := controllers.NewCoursesController(db, cfg)
	courses := app.Group("/api/courses", authMiddleware)
	courses.Get("/my-courses", coursesController.GetMyCourses)
	courses.Get("/user-progress", coursesController.GetUserProgress)

	chaptersController := controllers.NewChaptersController(db, cfg)
	courses.Get("/:courseId/chapters/:chapterId", chaptersController.GetChapterDetails)
	courses.Get("/:courseId/chapters/:chapterId/progress", chaptersController.GetChapterProgress)
	courses.Post("/:courseId/chapters/:chapterId/progress", chaptersController.SaveChapterProgress)

	// Playback guard
	playbackController := controllers.NewPlaybackController(db, cfg, logger)
	courses.Post("/:courseId/chapters/:chapterId/playback/start", playbackController.StartSession)
	courses.Post("/:courseId/chapters/:chapterId/playback/tick", playbackController.Tick)
	courses.Post("/:courseId/chapters/:chapterId/playback/close", playbackController.EndSession)

	// Chapter-scoped routes
	chapters := app.Group("/api/chapters", authMiddleware)
	chapters.Get("/progress/:courseId", chaptersController.GetCourseProgress)

	quizzesController := controllers.NewQuizzesController(db, cfg)
	chapters.Post("/:chapterId/mcqs/submit", quizzesController.SubmitQuiz)
	chapters.Get("/:chapterId/mcqs/result", quizzesController.GetQuizResult)

	// Dashboards
	dashboardController := controllers.NewDashboardController(db, cfg)
	app.Get("/api/dashboard/overview", authMiddleware, dashboardController.GetMemberOverview)
	app.Get("/api/dashboard/admin", authMiddleware, adminMiddleware, dashboardController.GetAdminDashboard)

	// Admin routes
	admin := app.Group("/api/admin", authMiddleware, adminMiddleware)
	admin.Post("/levels", coursesController.CreateLevel)
	admin.Delete("/levels/:id", coursesController.DeleteLevel)
	admin.Post("/courses", coursesController.CreateCourse)
	admin.Put("/courses/:id", coursesController.UpdateCourse)
	admin.Delete("/courses/:id", coursesController.DeleteCourse)
	admin.Post("/courses/:id/chapters", chaptersController.AddChapter)
	admin.Put("/courses/:id/chapters/:chapterId", chaptersController.UpdateChapter)
	admin.Delete("/courses/:id/chapters/:chapterId", chaptersController.DeleteChapter)
	admin.Post("/chapters/:id/mcqs", quizzesController.AddMCQ)
	admin.Put("/chapters/:id/mcqs/:mcqId", quizzesController.UpdateMCQ)
	admin.Delete("/chapters/:id/mcqs/:mcqId", quizzesController.DeleteMCQ)
	admin.Get("/members", usersController.ListMembers)
	admin.Put("/members/:id", usersController.UpdateMemberAccess)
}
