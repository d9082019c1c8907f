package handler

import "github.com/gin-gonic/gin"

// Router bundles every handler for route registration.
type Router struct {
	Students     *StudentHandler
	Appointments *AppointmentHandler
	Waitlist     *WaitlistHandler
	Catalog      *CatalogHandler
	Profile      *ProfileHandler
	Dashboard    *DashboardHandler
	Reports      *ReportHandler
	Metrics      *MetricsHandler
}

// Register wires every endpoint under the given group.
func (r *Router) Register(g *gin.RouterGroup) {
	students := g.Group("/students")
	{
		students.GET("", r.Students.List)
		students.POST("", r.Students.Create)
		students.GET("/:id", r.Students.Get)
		students.PUT("/:id", r.Students.Update)
		students.DELETE("/:id", r.Students.Delete)

		students.POST("/:id/payments", r.Students.AddPayment)
		students.PUT("/:id/payments/:paymentId", r.Students.UpdatePayment)
		students.DELETE("/:id/payments/:paymentId", r.Students.RemovePayment)

		students.POST("/:id/measurements", r.Students.AddMeasurement)
		students.POST("/:id/skinfolds", r.Students.AddSkinfold)
		students.POST("/:id/notes", r.Students.AddSessionNote)
		students.POST("/:id/diary", r.Students.AddDiaryEntry)

		students.POST("/:id/goals", r.Students.SaveGoal)
		students.DELETE("/:id/goals/:goalId", r.Students.RemoveGoal)
		students.POST("/:id/plans", r.Students.SavePlan)
		students.DELETE("/:id/plans/:planId", r.Students.RemovePlan)
	}

	appointments := g.Group("/appointments")
	{
		appointments.GET("", r.Appointments.List)
		appointments.POST("", r.Appointments.Create)
		appointments.GET("/:id", r.Appointments.Get)
		appointments.PUT("/:id", r.Appointments.Update)
		appointments.DELETE("/:id", r.Appointments.Delete)
		appointments.POST("/:id/complete", r.Appointments.Complete)
		appointments.POST("/:id/cancel", r.Appointments.Cancel)
		appointments.POST("/:id/reschedule", r.Appointments.Reschedule)
	}

	waitlist := g.Group("/waitlist")
	{
		waitlist.GET("", r.Waitlist.List)
		waitlist.POST("", r.Waitlist.Create)
		waitlist.PUT("/:id", r.Waitlist.Update)
		waitlist.DELETE("/:id", r.Waitlist.Delete)
		waitlist.POST("/:id/promote", r.Waitlist.Promote)
	}

	templates := g.Group("/workout-templates")
	{
		templates.GET("", r.Catalog.ListTemplates)
		templates.POST("", r.Catalog.CreateTemplate)
		templates.PUT("/:id", r.Catalog.UpdateTemplate)
		templates.DELETE("/:id", r.Catalog.DeleteTemplate)
	}

	exercises := g.Group("/exercises")
	{
		exercises.GET("", r.Catalog.ListExercises)
		exercises.POST("", r.Catalog.CreateExercise)
		exercises.PUT("/:id", r.Catalog.UpdateExercise)
		exercises.DELETE("/:id", r.Catalog.DeleteExercise)
		exercises.POST("/suggest-description", r.Catalog.SuggestDescription)
	}

	commTemplates := g.Group("/communication-templates")
	{
		commTemplates.GET("", r.Catalog.ListCommTemplates)
		commTemplates.POST("", r.Catalog.CreateCommTemplate)
		commTemplates.PUT("/:id", r.Catalog.UpdateCommTemplate)
		commTemplates.DELETE("/:id", r.Catalog.DeleteCommTemplate)
	}

	g.GET("/profile", r.Profile.Get)
	g.PUT("/profile", r.Profile.Save)
	g.GET("/patch-notes", r.Profile.PatchNotes)

	g.GET("/dashboard", r.Dashboard.Summary)

	reports := g.Group("/reports")
	{
		reports.GET("/financial", r.Reports.Financial)
		reports.GET("/engagement", r.Reports.Engagement)
		reports.GET("/retention", r.Reports.Retention)
		reports.GET("/exercise-popularity", r.Reports.Popularity)
		reports.GET("/financial/export", r.Reports.ExportFinancial)
	}
}
