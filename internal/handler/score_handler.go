package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-exam-api/internal/middleware"
	"github.com/noah-isme/school-exam-api/internal/models"
	"github.com/noah-isme/school-exam-api/internal/service"
	appErrors "github.com/noah-isme/school-exam-api/pkg/errors"
	"github.com/noah-isme/school-exam-api/pkg/response"
)

// ScoreHandler exposes score endpoints including the export surfaces.
type ScoreHandler struct {
	scores  *service.ScoreService
	reports *service.ReportService
}

// NewScoreHandler constructs ScoreHandler.
func NewScoreHandler(scores *service.ScoreService, reports *service.ReportService) *ScoreHandler {
	return &ScoreHandler{scores: scores, reports: reports}
}

// List godoc
// @Summary List scores
// @Tags Scores
// @Produce json
// @Param studentId query string false "Filter by student"
// @Param term query string false "Filter by term"
// @Param year query string false "Filter by year"
// @Success 200 {object} response.Envelope
// @Router /scores [get]
func (h *ScoreHandler) List(c *gin.Context) {
	studentID := c.Query("studentId")
	term := c.Query("term")
	year := c.Query("year")

	var (
		scores []models.Score
		err    error
	)
	if studentID != "" {
		scores, err = h.scores.ListByStudent(c.Request.Context(), studentID, term, year)
	} else {
		scores, err = h.scores.List(c.Request.Context())
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, scores)
}

// ListByStudent godoc
// @Summary List one student's scores
// @Tags Scores
// @Produce json
// @Param studentId path string true "Student ID"
// @Param term query string false "Filter by term"
// @Param year query string false "Filter by year"
// @Success 200 {object} response.Envelope
// @Router /scores/student/{studentId} [get]
func (h *ScoreHandler) ListByStudent(c *gin.Context) {
	scores, err := h.scores.ListByStudent(c.Request.Context(), c.Param("studentId"), c.Query("term"), c.Query("year"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, scores)
}

// Get godoc
// @Summary Get score detail
// @Tags Scores
// @Produce json
// @Param id path string true "Score ID"
// @Success 200 {object} response.Envelope
// @Router /scores/{id} [get]
func (h *ScoreHandler) Get(c *gin.Context) {
	score, err := h.scores.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, score)
}

// Record godoc
// @Summary Record a score
// @Description Creates or merges the score for the (studentId, subjectId, term, year) tuple.
// @Tags Scores
// @Accept json
// @Produce json
// @Param payload body service.RecordScoreRequest true "Score payload"
// @Success 201 {object} response.Envelope
// @Router /scores [post]
func (h *ScoreHandler) Record(c *gin.Context) {
	var req service.RecordScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	score, err := h.scores.Record(c.Request.Context(), actorRole(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, score)
}

// Update godoc
// @Summary Update a score
// @Tags Scores
// @Accept json
// @Produce json
// @Param id path string true "Score ID"
// @Param payload body service.UpdateScoreRequest true "Fields to merge"
// @Success 200 {object} response.Envelope
// @Router /scores/{id} [put]
func (h *ScoreHandler) Update(c *gin.Context) {
	var req service.UpdateScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	score, err := h.scores.Update(c.Request.Context(), actorRole(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, score)
}

// Delete godoc
// @Summary Delete a score
// @Tags Scores
// @Produce json
// @Param id path string true "Score ID"
// @Success 200 {object} response.Envelope
// @Router /scores/{id} [delete]
func (h *ScoreHandler) Delete(c *gin.Context) {
	score, err := h.scores.Delete(c.Request.Context(), actorRole(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, score)
}

// Export godoc
// @Summary Export scores as a CSV mark sheet
// @Tags Scores
// @Produce text/csv
// @Param term query string false "Filter by term"
// @Param year query string false "Filter by year"
// @Success 200 {string} string "CSV payload"
// @Router /scores/export [get]
func (h *ScoreHandler) Export(c *gin.Context) {
	data, err := h.reports.ExportCSV(c.Request.Context(), c.Query("term"), c.Query("year"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="mark-sheet.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// ReportCard godoc
// @Summary Render a student's report card PDF
// @Tags Scores
// @Produce application/pdf
// @Param studentId path string true "Student ID"
// @Param term query string false "Term"
// @Param year query string false "Year"
// @Success 200 {string} string "PDF payload"
// @Router /scores/report/{studentId} [get]
func (h *ScoreHandler) ReportCard(c *gin.Context) {
	studentID := c.Param("studentId")
	data, err := h.reports.ReportCard(c.Request.Context(), studentID, c.Query("term"), c.Query("year"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="report-%s.pdf"`, studentID))
	c.Data(http.StatusOK, "application/pdf", data)
}

// actorRole resolves the caller's role from the request claims. An empty
// role fails every gate downstream.
func actorRole(c *gin.Context) models.UserRole {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		return ""
	}
	return claims.Role
}
