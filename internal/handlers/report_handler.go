package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/highburybarber/booking-api/internal/calendar"
	"github.com/highburybarber/booking-api/internal/httperr"
	"github.com/highburybarber/booking-api/internal/httpresp"
	"github.com/highburybarber/booking-api/internal/usecase/report"
)

type ReportHandler struct {
	reports *report.GetReport
}

func NewReportHandler(reports *report.GetReport) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) Daily(c *gin.Context) {
	date, err := calendar.ParseDate(c.Query("fecha"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida, use el formato YYYY-MM-DD")
		return
	}

	summary, err := h.reports.ForDay(c.Request.Context(), date)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, summary)
}

func (h *ReportHandler) Range(c *gin.Context) {
	summary, ok := h.rangeSummary(c)
	if !ok {
		return
	}

	httpresp.OK(c, summary)
}

// Export streams the range report as a spreadsheet download.
func (h *ReportHandler) Export(c *gin.Context) {
	summary, ok := h.rangeSummary(c)
	if !ok {
		return
	}

	f, err := report.ToExcel(summary)
	if err != nil {
		writeError(c, err)
		return
	}

	filename := fmt.Sprintf("ventas_%s_%s.xlsx",
		summary.From.Format(calendar.DateLayout),
		summary.To.Format(calendar.DateLayout))

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
}

func (h *ReportHandler) rangeSummary(c *gin.Context) (*report.Summary, bool) {
	from, err := calendar.ParseDate(c.Query("desde"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Parámetro desde inválido, use YYYY-MM-DD")
		return nil, false
	}
	to, err := calendar.ParseDate(c.Query("hasta"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Parámetro hasta inválido, use YYYY-MM-DD")
		return nil, false
	}

	summary, err := h.reports.ForRange(c.Request.Context(), from, to)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return summary, true
}
