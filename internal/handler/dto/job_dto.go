package dto

import (
	"time"

	"github.com/yourusername/jobboard-api/internal/domain/entity"
)

// CreateJobRequest представляет запрос на создание вакансии
type CreateJobRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=150"`
	Description string `json:"description" binding:"omitempty,max=5000"`
	CompanyName string `json:"company_name" binding:"required,min=2,max=150"`
	Location    string `json:"location" binding:"omitempty,max=150"`
	CategoryID  uint   `json:"category_id" binding:"required"`
}

// JobResponse представляет вакансию в формате для клиента
type JobResponse struct {
	ID                uint      `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description,omitempty"`
	CompanyName       string    `json:"company_name"`
	Location          string    `json:"location,omitempty"`
	CategoryID        uint      `json:"category_id"`
	RecruiterID       uint      `json:"recruiter_id"`
	ApplicationsCount int       `json:"applications_count"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
}

// NewJobResponse создает DTO вакансии
func NewJobResponse(job *entity.Job) *JobResponse {
	return &JobResponse{
		ID:                job.ID,
		Title:             job.Title,
		Description:       job.Description,
		CompanyName:       job.CompanyName,
		Location:          job.Location,
		CategoryID:        job.CategoryID,
		RecruiterID:       job.RecruiterID,
		ApplicationsCount: job.ApplicationsCount,
		IsActive:          job.IsActive,
		CreatedAt:         job.CreatedAt,
	}
}

// CreateCategoryRequest представляет запрос на создание категории
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

// CategoryResponse представляет категорию в формате для клиента
type CategoryResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// NewCategoryResponse создает DTO категории
func NewCategoryResponse(category *entity.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
	}
}

// NewCategoryListResponse создает список DTO категорий
func NewCategoryListResponse(categories []entity.Category) []*CategoryResponse {
	out := make([]*CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, NewCategoryResponse(&categories[i]))
	}
	return out
}
