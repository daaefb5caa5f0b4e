package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-exam-api/internal/service"
	appErrors "github.com/noah-isme/school-exam-api/pkg/errors"
	"github.com/noah-isme/school-exam-api/pkg/response"
)

// AttendanceHandler exposes the attendance snapshots kept in settings.
type AttendanceHandler struct {
	attendance *service.AttendanceService
}

// NewAttendanceHandler constructs AttendanceHandler.
func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

type attendancePayload struct {
	Term    string `json:"term"`
	Year    string `json:"year"`
	Present *int   `json:"present"`
	Total   *int   `json:"total"`
}

// Get godoc
// @Summary Get a student's attendance snapshot
// @Tags Attendance
// @Produce json
// @Param studentId path string true "Student ID"
// @Param term query string false "Term"
// @Param year query string false "Year"
// @Success 200 {object} response.Envelope
// @Router /attendance/{studentId} [get]
func (h *AttendanceHandler) Get(c *gin.Context) {
	record, label, err := h.attendance.Get(c.Request.Context(), c.Param("studentId"), c.Query("term"), c.Query("year"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"record": record, "status": label})
}

// Save godoc
// @Summary Save a student's attendance
// @Description Edits are clamped so present never exceeds total.
// @Tags Attendance
// @Accept json
// @Produce json
// @Param studentId path string true "Student ID"
// @Param payload body attendancePayload true "Attendance edit"
// @Success 200 {object} response.Envelope
// @Router /attendance/{studentId} [put]
func (h *AttendanceHandler) Save(c *gin.Context) {
	var payload attendancePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	record, label, err := h.attendance.Save(c.Request.Context(), service.AttendanceEntry{
		StudentID: c.Param("studentId"),
		Term:      payload.Term,
		Year:      payload.Year,
		Present:   payload.Present,
		Total:     payload.Total,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"record": record, "status": label})
}

// BulkSave godoc
// @Summary Save attendance for many students
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body []service.AttendanceEntry true "Attendance entries"
// @Success 200 {object} response.Envelope
// @Router /attendance [put]
func (h *AttendanceHandler) BulkSave(c *gin.Context) {
	var entries []service.AttendanceEntry
	if err := c.ShouldBindJSON(&entries); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result := h.attendance.BulkSave(c.Request.Context(), entries)
	response.JSON(c, http.StatusOK, result)
}
