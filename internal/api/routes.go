package api

import (
	"fitu/dashboard/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Services are the dependencies of the HTTP API.
type Services struct {
	Auth          service.AuthService
	Accounts      service.AccountService
	Instructors   service.InstructorService
	Dashboard     service.DashboardService
	Students      service.StudentService
	Rosters       service.RosterService
	Exports       service.ExportService
	Assignments   service.AssignmentService
	Announcements service.AnnouncementService
}

func SetupRoutes(router *gin.Engine, hookSecret string, svc Services) {
	accountHandler := NewAccountHandler(svc.Accounts)
	instructorHandler := NewInstructorHandler(svc.Instructors, svc.Dashboard)
	studentHandler := NewStudentHandler(svc.Students)
	rosterHandler := NewRosterHandler(svc.Rosters, svc.Exports)
	assignmentHandler := NewAssignmentHandler(svc.Assignments)
	announcementHandler := NewAnnouncementHandler(svc.Announcements)

	authMiddleware := AuthMiddleware(svc.Auth)

	ping := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	}
	router.GET("/ping", ping)

	apiV1 := router.Group("/api/v1")
	apiV1.GET("/ping", ping)
	apiV1.POST("/hooks/accounts", HookSecretMiddleware(hookSecret), accountHandler.ProvisionAccount)

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.POST("/me/last-active", accountHandler.UpdateLastActive)
		protected.GET("/exercises/catalog", GetExerciseCatalog)

		// --- Instructor Routes ---
		instructor := protected.Group("/instructor")
		instructor.Use(InstructorMiddleware())
		{
			instructor.GET("/profile", instructorHandler.GetProfile)
			instructor.PUT("/profile", instructorHandler.UpdateProfile)
			instructor.GET("/dashboard/stats", instructorHandler.GetStats)
			instructor.GET("/dashboard/trend", instructorHandler.GetTrend)

			instructor.GET("/students", studentHandler.ListStudents)
			instructor.GET("/students/:id", studentHandler.GetStudent)
			instructor.PUT("/students/:id/status", studentHandler.UpdateStatus)

			instructor.GET("/roster", rosterHandler.GetRoster)
			instructor.PUT("/roster", rosterHandler.SaveRoster)
			instructor.GET("/roster/students", rosterHandler.ListRosterStudents)
			instructor.GET("/roster/candidates", rosterHandler.ListCandidates)
			instructor.GET("/roster/export", rosterHandler.ExportRoster)
			instructor.POST("/roster/exports", rosterHandler.PublishRoster)

			instructor.GET("/assignments", assignmentHandler.ListAssignments)
			instructor.POST("/assignments", assignmentHandler.CreateAssignment)
			instructor.PUT("/assignments/:id", assignmentHandler.UpdateAssignment)
			instructor.DELETE("/assignments/:id", assignmentHandler.DeleteAssignment)
			instructor.GET("/assignments/:id/performed", assignmentHandler.ListPerformed)
			instructor.PATCH("/assignments/:id/performed/:performedId", assignmentHandler.SetAccomplished)
			instructor.DELETE("/assignments/:id/performed/:performedId", assignmentHandler.DeletePerformed)

			instructor.GET("/announcements", announcementHandler.ListAnnouncements)
			instructor.POST("/announcements", announcementHandler.CreateAnnouncement)
			instructor.DELETE("/announcements/:id", announcementHandler.DeleteAnnouncement)
		}

		// --- Student Routes ---
		student := protected.Group("/student")
		{
			student.GET("/assignments", assignmentHandler.ListStudentAssignments)
			student.POST("/assignments/:id/performed", assignmentHandler.RecordPerformance)
			student.GET("/announcements", announcementHandler.ListStudentAnnouncements)
		}
	}
}
