package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/highburybarber/booking-api/internal/calendar"
	"github.com/highburybarber/booking-api/internal/models"
)

type WorkingHoursHandler struct {
	db *gorm.DB
}

func NewWorkingHoursHandler(db *gorm.DB) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db}
}

// --------- Requests ---------

type UpsertWorkingHoursRequest struct {
	EmployeeID uint   `json:"empleado_id" binding:"required"`
	Weekday    string `json:"dia_semana" binding:"required"`
	StartTime  string `json:"hora_inicio" binding:"required"`
	EndTime    string `json:"hora_fin" binding:"required"`
	Active     *bool  `json:"activo,omitempty"`
}

// --------- Handlers ---------

func (h *WorkingHoursHandler) List(c *gin.Context) {
	q := h.db
	if raw := c.Query("empleado_id"); raw != "" {
		q = q.Where("employee_id = ?", raw)
	}

	var hours []models.WorkingHours
	if err := q.Order("employee_id ASC, id ASC").Find(&hours).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_working_hours"})
		return
	}

	c.JSON(http.StatusOK, hours)
}

// Upsert writes the week schedule one day at a time: each (employee,
// weekday) pair has at most one record, updated in place when it exists.
func (h *WorkingHoursHandler) Upsert(c *gin.Context) {
	var req UpsertWorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	weekday := strings.ToLower(strings.TrimSpace(req.Weekday))
	if !calendar.IsValidWeekday(weekday) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_weekday"})
		return
	}

	start, err := calendar.ParseSlot(req.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_start_time"})
		return
	}
	end, err := calendar.ParseSlot(req.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_end_time"})
		return
	}
	if !start.Before(end) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_after_end"})
		return
	}

	var emp models.Employee
	if err := h.db.First(&emp, req.EmployeeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee_not_found"})
		return
	}

	wh := models.WorkingHours{
		EmployeeID: req.EmployeeID,
		Weekday:    weekday,
	}

	err = h.db.Where("employee_id = ? AND weekday = ?", req.EmployeeID, weekday).
		First(&wh).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_working_hours"})
		return
	}

	wh.StartTime = req.StartTime
	wh.EndTime = req.EndTime
	wh.Active = true
	if req.Active != nil {
		wh.Active = *req.Active
	}

	if err := h.db.Save(&wh).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_working_hours"})
		return
	}

	c.JSON(http.StatusOK, wh)
}

func (h *WorkingHoursHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	res := h.db.Delete(&models.WorkingHours{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_working_hours"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "working_hours_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"mensaje": "Horario eliminado"})
}
