package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anupamroy/invigilation-api-go/pkg/models"
	"github.com/anupamroy/invigilation-api-go/pkg/roster"
	"github.com/anupamroy/invigilation-api-go/pkg/store"
)

// Handler contains dependencies for the route handlers
type Handler struct {
	Store *store.Store
}

// Ping is the health check endpoint
func (h *Handler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// GetFaculty returns the stored faculty roster
func (h *Handler) GetFaculty(c *gin.Context) {
	faculty, err := h.Store.Faculty()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load faculty roster"})
		return
	}
	c.JSON(http.StatusOK, faculty)
}

// GetSchedule returns the stored exam schedule
func (h *Handler) GetSchedule(c *gin.Context) {
	schedule, err := h.Store.Schedule()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load exam schedule"})
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// AddScheduleSlot appends one slot requirement to the exam schedule
func (h *Handler) AddScheduleSlot(c *gin.Context) {
	var slot models.SlotRequirement
	if err := c.ShouldBindJSON(&slot); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if slot.Date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}
	if err := h.Store.AppendScheduleSlot(slot); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save schedule entry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DeleteScheduleDate removes every schedule entry for a date
func (h *Handler) DeleteScheduleDate(c *gin.Context) {
	if err := h.Store.DeleteScheduleDate(c.Param("date")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete schedule entry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GenerateAssignments distributes duties over the posted faculty list
// by round-robin rotation and persists the result wholesale.
func (h *Handler) GenerateAssignments(c *gin.Context) {
	var input struct {
		Faculty  []models.FacultyMember   `json:"faculty"`
		Schedule []models.SlotRequirement `json:"schedule"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	names := make([]string, 0, len(input.Faculty))
	for _, f := range input.Faculty {
		if f.Name != "" {
			names = append(names, f.Name)
		}
	}

	assignments, err := roster.Generate(names, input.Schedule)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Store.ReplaceAssignments(assignments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save assignments"})
		return
	}
	c.JSON(http.StatusOK, assignments)
}

// GetAssignments returns the stored duty list
func (h *Handler) GetAssignments(c *gin.Context) {
	assignments, err := h.Store.Assignments()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load assignments"})
		return
	}
	c.JSON(http.StatusOK, assignments)
}

// SaveAssignments replaces the stored duty list
func (h *Handler) SaveAssignments(c *gin.Context) {
	var assignments []models.DutyAssignment
	if err := c.ShouldBindJSON(&assignments); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Store.ReplaceAssignments(assignments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save assignments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetGroups returns the stored faculty groups blob as-is
func (h *Handler) GetGroups(c *gin.Context) {
	groups, err := h.Store.Groups()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load faculty groups"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", groups)
}

// SaveGroups replaces the stored faculty groups blob. The payload is
// opaque; only JSON validity is checked.
func (h *Handler) SaveGroups(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read request body"})
		return
	}
	if !json.Valid(body) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Body must be valid JSON"})
		return
	}
	if err := h.Store.SaveGroups(body); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save faculty groups"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetUnavailability returns the stored per-faculty unavailable dates
func (h *Handler) GetUnavailability(c *gin.Context) {
	unavail, err := h.Store.Unavailability()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load unavailability"})
		return
	}
	c.JSON(http.StatusOK, unavail)
}

// SaveUnavailability replaces the stored unavailability records
func (h *Handler) SaveUnavailability(c *gin.Context) {
	var unavail models.Unavailability
	if err := c.ShouldBindJSON(&unavail); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Store.ReplaceUnavailability(unavail); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save unavailability"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetConfig returns the exam config, with defaults when nothing is stored
func (h *Handler) GetConfig(c *gin.Context) {
	cfg, err := h.Store.Config()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load exam config"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// SaveConfig replaces the stored exam config
func (h *Handler) SaveConfig(c *gin.Context) {
	var cfg models.ExamConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Store.SaveConfig(cfg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save exam config"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
