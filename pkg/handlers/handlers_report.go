package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anupamroy/invigilation-api-go/pkg/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DownloadReport renders the stored assignments as either the faculty
// summary workbook (type=excel) or the duty chart (type=csv).
func (h *Handler) DownloadReport(c *gin.Context) {
	assignments, err := h.Store.Assignments()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load assignments"})
		return
	}
	if len(assignments) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No assignments found"})
		return
	}

	faculty, err := h.Store.Faculty()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load faculty roster"})
		return
	}

	switch c.Query("type") {
	case "excel":
		unavail, err := h.Store.Unavailability()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load unavailability"})
			return
		}
		rows := report.BuildSummary(assignments, faculty, unavail)
		data, err := report.SummaryXLSX(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate Excel report"})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=faculty_summary.xlsx")
		c.Data(http.StatusOK, xlsxContentType, data)

	case "csv":
		data, err := report.ChartCSV(assignments, faculty)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate duty chart"})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=faculty_duty_chart.csv")
		c.Data(http.StatusOK, "text/csv", data)

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report type"})
	}
}
