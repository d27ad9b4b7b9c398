package repository

import (
	"github.com/yourusername/jobboard-api/internal/domain/entity"
)

// ApplicationRepository определяет методы для работы с откликами на вакансии
type ApplicationRepository interface {
	// Create атомарно сохраняет отклик и увеличивает счетчик откликов вакансии.
	// Нарушение уникальности (job_id, applicant_id) возвращается как ErrAlreadyApplied.
	Create(application *entity.Application) error
	ExistsByJobAndApplicant(jobID, applicantID uint) (bool, error)
	GetByID(id uint) (*entity.Application, error)
	GetByJobID(jobID uint) ([]entity.Application, error)
	GetByApplicantID(applicantID uint) ([]entity.Application, error)
	UpdateStatus(id uint, status string) error
}
