package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/highburybarber/booking-api/internal/calendar"
	"github.com/highburybarber/booking-api/internal/models"
)

type HolidayHandler struct {
	db *gorm.DB
}

func NewHolidayHandler(db *gorm.DB) *HolidayHandler {
	return &HolidayHandler{db: db}
}

// --------- Requests ---------

type CreateHolidayRequest struct {
	Date        string `json:"fecha" binding:"required"`
	Description string `json:"descripcion"`
}

// --------- Handlers ---------

func (h *HolidayHandler) List(c *gin.Context) {
	var holidays []models.Holiday
	if err := h.db.Order("date ASC").Find(&holidays).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_holidays"})
		return
	}

	c.JSON(http.StatusOK, holidays)
}

func (h *HolidayHandler) Create(c *gin.Context) {
	var req CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date"})
		return
	}

	var count int64
	h.db.Model(&models.Holiday{}).Where("date = ?", date).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "holiday_already_exists"})
		return
	}

	holiday := models.Holiday{
		Date:        date,
		Description: req.Description,
	}

	if err := h.db.Create(&holiday).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_holiday"})
		return
	}

	c.JSON(http.StatusCreated, holiday)
}

func (h *HolidayHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	res := h.db.Delete(&models.Holiday{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_holiday"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "holiday_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"mensaje": "Día festivo eliminado"})
}
