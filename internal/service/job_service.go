package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yourusername/jobboard-api/internal/domain/entity"
	"github.com/yourusername/jobboard-api/internal/domain/repository"
	apperrors "github.com/yourusername/jobboard-api/internal/pkg/errors"
)

// JobService управляет вакансиями и категориями
type JobService struct {
	jobRepo      repository.JobRepository
	categoryRepo repository.CategoryRepository
}

// NewJobService создает новый сервис вакансий
func NewJobService(jobRepo repository.JobRepository, categoryRepo repository.CategoryRepository) *JobService {
	return &JobService{
		jobRepo:      jobRepo,
		categoryRepo: categoryRepo,
	}
}

// CreateJob создает вакансию от имени рекрутера
func (s *JobService) CreateJob(job *entity.Job) error {
	if strings.TrimSpace(job.Title) == "" {
		return fmt.Errorf("job title is required: %w", apperrors.ErrValidation)
	}
	if _, err := s.categoryRepo.GetByID(job.CategoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("category %d not found: %w", job.CategoryID, apperrors.ErrNotFound)
		}
		return err
	}
	job.IsActive = true
	return s.jobRepo.Create(job)
}

// GetJob возвращает вакансию по ID
func (s *JobService) GetJob(id uint) (*entity.Job, error) {
	return s.jobRepo.GetByID(id)
}

// CreateCategory создает категорию вакансий
func (s *JobService) CreateCategory(category *entity.Category) error {
	if strings.TrimSpace(category.Name) == "" {
		return fmt.Errorf("category name is required: %w", apperrors.ErrValidation)
	}
	return s.categoryRepo.Create(category)
}

// GetCategories возвращает все категории
func (s *JobService) GetCategories() ([]entity.Category, error) {
	return s.categoryRepo.GetAll()
}
