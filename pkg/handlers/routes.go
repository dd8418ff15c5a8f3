package handlers

import "github.com/gin-gonic/gin"

// RegisterRoutes wires every endpoint onto the engine. Shared by the
// standalone server and the serverless entrypoint.
func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/ping", h.Ping)

	r.GET("/faculty", h.GetFaculty)
	r.POST("/upload-faculty", h.UploadFaculty)

	r.GET("/exam-schedule", h.GetSchedule)
	r.POST("/exam-schedule", h.AddScheduleSlot)
	r.DELETE("/exam-schedule/:date", h.DeleteScheduleDate)

	r.POST("/generate-assignments", h.GenerateAssignments)
	r.GET("/assignments", h.GetAssignments)
	r.POST("/assignments", h.SaveAssignments)

	r.GET("/faculty-groups", h.GetGroups)
	r.POST("/faculty-groups", h.SaveGroups)

	r.GET("/faculty-unavailability", h.GetUnavailability)
	r.POST("/faculty-unavailability", h.SaveUnavailability)

	r.GET("/exam-config", h.GetConfig)
	r.POST("/exam-config", h.SaveConfig)

	r.POST("/regenerate-from-summary", h.RegenerateFromSummary)
	r.GET("/download-report", h.DownloadReport)
}
