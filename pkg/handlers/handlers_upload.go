package handlers

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/anupamroy/invigilation-api-go/pkg/reconcile"
)

// saveUpload copies a multipart file into the system temp directory
// under a unique name. The returned cleanup must run on every exit path.
func saveUpload(c *gin.Context, fh *multipart.FileHeader) (string, func(), error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	path := filepath.Join(os.TempDir(), "upload_"+uuid.NewString()+ext)
	if err := c.SaveUploadedFile(fh, path); err != nil {
		return "", nil, err
	}
	return path, func() { _ = os.Remove(path) }, nil
}

func isXLSX(fh *multipart.FileHeader) bool {
	return strings.EqualFold(filepath.Ext(fh.Filename), ".xlsx")
}

// UploadFaculty replaces the stored roster from an uploaded xlsx or csv
// file. Header variants are normalized; rows without a name are dropped.
func (h *Handler) UploadFaculty(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	path, cleanup, err := saveUpload(c, fh)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store uploaded file"})
		return
	}
	defer cleanup()

	table, err := reconcile.ReadFile(path)
	if err != nil {
		if errors.Is(err, reconcile.ErrUnsupportedFormat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read roster file"})
		return
	}

	faculty := reconcile.RosterFromTable(table)
	if err := h.Store.ReplaceFaculty(faculty); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save faculty roster"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "count": len(faculty)})
}

// RegenerateFromSummary rebuilds assignments, schedule and
// unavailability from an edited summary workbook. The summary is
// required and must be xlsx; the schedule and unavailability workbooks
// are optional and skipped with a warning when unreadable.
func (h *Handler) RegenerateFromSummary(c *gin.Context) {
	summaryFile, err := c.FormFile("summary_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "summary_file is required"})
		return
	}
	if !isXLSX(summaryFile) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please upload an Excel file (.xlsx) for faculty summary"})
		return
	}

	summaryPath, cleanup, err := saveUpload(c, summaryFile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store uploaded file"})
		return
	}
	defer cleanup()

	summary, err := reconcile.ReadFile(summaryPath)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read faculty summary"})
		return
	}

	scheduleTable := h.optionalTable(c, "schedule_file")
	unavailTable := h.optionalTable(c, "unavailability_file")

	result, err := reconcile.FromSummary(summary, scheduleTable, unavailTable)
	if err != nil {
		var schemaErr *reconcile.SchemaError
		if errors.As(err, &schemaErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": schemaErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to regenerate assignments"})
		return
	}

	// Assignments replace wholesale; schedule and unavailability only
	// when the reconciliation actually produced data for them.
	if err := h.Store.ReplaceAssignments(result.Assignments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save assignments"})
		return
	}
	schedule := result.EffectiveSchedule()
	if len(schedule) > 0 {
		if err := h.Store.ReplaceSchedule(schedule); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save exam schedule"})
			return
		}
	}
	if len(result.Unavailability) > 0 {
		if err := h.Store.ReplaceUnavailability(result.Unavailability); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save unavailability"})
			return
		}
	}

	message := fmt.Sprintf("Regenerated %d assignments from summary", len(result.Assignments))
	if len(schedule) > 0 {
		message += fmt.Sprintf(" and updated exam schedule with %d dates", len(schedule))
	}
	if len(result.Unavailability) > 0 {
		message += fmt.Sprintf(" and updated unavailability for %d faculty", len(result.Unavailability))
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"message":  message,
		"warnings": result.Warnings,
	})
}

// optionalTable loads an optional xlsx upload. Missing, non-xlsx or
// unreadable files are skipped so the summary can still be processed.
func (h *Handler) optionalTable(c *gin.Context, field string) *reconcile.Table {
	fh, err := c.FormFile(field)
	if err != nil || fh == nil {
		return nil
	}
	if !isXLSX(fh) {
		log.Printf("skipping %s: not an xlsx file", field)
		return nil
	}
	path, cleanup, err := saveUpload(c, fh)
	if err != nil {
		log.Printf("skipping %s: %v", field, err)
		return nil
	}
	defer cleanup()

	table, err := reconcile.ReadFile(path)
	if err != nil {
		log.Printf("skipping %s: %v", field, err)
		return nil
	}
	return table
}
