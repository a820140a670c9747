package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/highburybarber/booking-api/internal/calendar"
	"github.com/highburybarber/booking-api/internal/models"
)

type BlackoutHandler struct {
	db  *gorm.DB
	loc *time.Location
}

func NewBlackoutHandler(db *gorm.DB, loc *time.Location) *BlackoutHandler {
	return &BlackoutHandler{db: db, loc: loc}
}

// --------- Requests ---------

type CreateBlackoutRequest struct {
	EmployeeID  uint   `json:"empleado_id" binding:"required"`
	StartDate   string `json:"fecha_inicio" binding:"required"`
	EndDate     string `json:"fecha_fin" binding:"required"`
	Reason      string `json:"motivo"`
	Description string `json:"descripcion"`
}

// --------- Handlers ---------

func (h *BlackoutHandler) List(c *gin.Context) {
	q := h.db
	if raw := c.Query("empleado_id"); raw != "" {
		q = q.Where("employee_id = ?", raw)
	}

	var blackouts []models.Blackout
	if err := q.Order("start_date ASC").Find(&blackouts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_blackouts"})
		return
	}

	c.JSON(http.StatusOK, blackouts)
}

func (h *BlackoutHandler) Create(c *gin.Context) {
	var req CreateBlackoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	start, err := calendar.ParseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_start_date"})
		return
	}
	end, err := calendar.ParseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_end_date"})
		return
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_before_start"})
		return
	}

	var emp models.Employee
	if err := h.db.First(&emp, req.EmployeeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee_not_found"})
		return
	}

	blackout := models.Blackout{
		EmployeeID:  req.EmployeeID,
		StartDate:   start,
		EndDate:     end,
		Reason:      req.Reason,
		Description: req.Description,
	}

	if err := h.db.Create(&blackout).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_blackout"})
		return
	}

	c.JSON(http.StatusCreated, blackout)
}

func (h *BlackoutHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	res := h.db.Delete(&models.Blackout{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_blackout"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "blackout_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"mensaje": "Bloqueo eliminado"})
}

// DeleteExpired prunes blackouts that ended before today.
func (h *BlackoutHandler) DeleteExpired(c *gin.Context) {
	today := calendar.DateOnly(time.Now().In(h.loc))

	res := h.db.Where("end_date < ?", today).Delete(&models.Blackout{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_blackouts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"eliminados": res.RowsAffected})
}
