package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/jobboard-api/internal/domain/entity"
	"github.com/yourusername/jobboard-api/internal/handler/dto"
	apperrors "github.com/yourusername/jobboard-api/internal/pkg/errors"
	"github.com/yourusername/jobboard-api/internal/service"
)

// JobHandler обрабатывает вакансии и категории
type JobHandler struct {
	jobService *service.JobService
}

// NewJobHandler создает новый обработчик вакансий
func NewJobHandler(jobService *service.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// CreateJob создает вакансию от имени рекрутера.
// POST /api/jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	recruiterID := c.MustGet("user_id").(uint)

	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job := &entity.Job{
		Title:       req.Title,
		Description: req.Description,
		CompanyName: req.CompanyName,
		Location:    req.Location,
		CategoryID:  req.CategoryID,
		RecruiterID: recruiterID,
	}
	if err := h.jobService.CreateJob(job); err != nil {
		h.handleJobError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewJobResponse(job))
}

// GetJob возвращает вакансию по ID.
// GET /api/jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID := c.MustGet("jobID").(uint)

	job, err := h.jobService.GetJob(jobID)
	if err != nil {
		h.handleJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewJobResponse(job))
}

// CreateCategory создает категорию вакансий.
// POST /api/admin/categories
func (h *JobHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := &entity.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.jobService.CreateCategory(category); err != nil {
		h.handleJobError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewCategoryResponse(category))
}

// GetCategories возвращает все категории.
// GET /api/categories
func (h *JobHandler) GetCategories(c *gin.Context) {
	categories, err := h.jobService.GetCategories()
	if err != nil {
		h.handleJobError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCategoryListResponse(categories))
}

func (h *JobHandler) handleJobError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in JobHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
