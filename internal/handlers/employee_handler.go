package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/highburybarber/booking-api/internal/httpresp"
	"github.com/highburybarber/booking-api/internal/models"
	"github.com/highburybarber/booking-api/internal/storage"
)

type EmployeeHandler struct {
	db     *gorm.DB
	photos *storage.PhotoStore
}

func NewEmployeeHandler(db *gorm.DB, photos *storage.PhotoStore) *EmployeeHandler {
	return &EmployeeHandler{db: db, photos: photos}
}

// --------- Requests ---------

type CreateEmployeeRequest struct {
	Name       string `json:"nombre" binding:"required"`
	DocumentID string `json:"cedula"`
}

type UpdateEmployeeRequest struct {
	Name       *string `json:"nombre,omitempty"`
	DocumentID *string `json:"cedula,omitempty"`
	Active     *bool   `json:"activo,omitempty"`
}

// --------- Handlers ---------

// ListPublic is the barber picker on the booking page: active only.
func (h *EmployeeHandler) ListPublic(c *gin.Context) {
	var employees []models.Employee
	if err := h.db.Where("active = ?", true).Order("name ASC").Find(&employees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_employees"})
		return
	}

	c.JSON(http.StatusOK, employees)
}

func (h *EmployeeHandler) List(c *gin.Context) {
	q := h.db
	if c.Query("activo") == "true" {
		q = q.Where("active = ?", true)
	}

	var employees []models.Employee
	if err := q.Order("name ASC").Find(&employees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_employees"})
		return
	}

	c.JSON(http.StatusOK, employees)
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	emp := models.Employee{
		Name:       req.Name,
		DocumentID: req.DocumentID,
		Active:     true,
	}

	if err := h.db.Create(&emp).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_employee"})
		return
	}

	httpresp.Created(c, emp)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var emp models.Employee
	if err := h.db.First(&emp, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "employee_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_employee"})
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		emp.Name = *req.Name
	}
	if req.DocumentID != nil {
		emp.DocumentID = *req.DocumentID
	}
	if req.Active != nil {
		emp.Active = *req.Active
	}

	if err := h.db.Save(&emp).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_employee"})
		return
	}

	c.JSON(http.StatusOK, emp)
}

// Delete deactivates: past appointments keep pointing at the barber.
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	res := h.db.Model(&models.Employee{}).Where("id = ?", id).Update("active", false)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_employee"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee_not_found"})
		return
	}

	httpresp.Message(c, "Empleado desactivado")
}

// UploadPhoto stores the barber's profile photo and saves its URL.
func (h *EmployeeHandler) UploadPhoto(c *gin.Context) {
	if !h.photos.IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "photo_storage_not_configured"})
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	var emp models.Employee
	if err := h.db.First(&emp, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "employee_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_employee"})
		return
	}

	file, _, err := c.Request.FormFile("foto")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_photo_file"})
		return
	}
	defer file.Close()

	url, err := h.photos.UploadEmployeePhoto(c.Request.Context(), file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_upload_photo"})
		return
	}

	emp.PhotoURL = url
	if err := h.db.Save(&emp).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_employee"})
		return
	}

	c.JSON(http.StatusOK, emp)
}
