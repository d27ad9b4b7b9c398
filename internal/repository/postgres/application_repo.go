package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/jobboard-api/internal/domain/entity"
	apperrors "github.com/yourusername/jobboard-api/internal/pkg/errors"
)

// ApplicationRepo реализует repository.ApplicationRepository
type ApplicationRepo struct {
	db *gorm.DB
}

// NewApplicationRepo создает новый репозиторий откликов
func NewApplicationRepo(db *gorm.DB) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

// Create атомарно сохраняет отклик и увеличивает счетчик откликов вакансии.
// Уникальный индекс (job_id, applicant_id) закрывает гонку "проверили - создали":
// из двух параллельных откликов одной пары выживает только один, второй
// получает ErrAlreadyApplied.
func (r *ApplicationRepo) Create(application *entity.Application) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(application).Error; err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("application for job %d already exists: %w",
					application.JobID, apperrors.ErrAlreadyApplied)
			}
			return err
		}

		// Атомарное увеличение счетчика без перетирания других полей вакансии
		return tx.Model(&entity.Job{}).
			Where("id = ?", application.JobID).
			UpdateColumn("applications_count", gorm.Expr("applications_count + ?", 1)).Error
	})
}

// ExistsByJobAndApplicant проверяет наличие отклика для пары (вакансия, соискатель)
func (r *ApplicationRepo) ExistsByJobAndApplicant(jobID, applicantID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entity.Application{}).
		Where("job_id = ? AND applicant_id = ?", jobID, applicantID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetByID возвращает отклик по ID
func (r *ApplicationRepo) GetByID(id uint) (*entity.Application, error) {
	var application entity.Application
	err := r.db.First(&application, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &application, nil
}

// GetByJobID возвращает все отклики на вакансию
func (r *ApplicationRepo) GetByJobID(jobID uint) ([]entity.Application, error) {
	var applications []entity.Application
	err := r.db.Where("job_id = ?", jobID).Order("created_at DESC").Find(&applications).Error
	if err != nil {
		return nil, err
	}
	return applications, nil
}

// GetByApplicantID возвращает все отклики соискателя
func (r *ApplicationRepo) GetByApplicantID(applicantID uint) ([]entity.Application, error) {
	var applications []entity.Application
	err := r.db.Where("applicant_id = ?", applicantID).Order("created_at DESC").Find(&applications).Error
	if err != nil {
		return nil, err
	}
	return applications, nil
}

// UpdateStatus меняет статус отклика. Поля квиза write-once и не трогаются.
func (r *ApplicationRepo) UpdateStatus(id uint, status string) error {
	result := r.db.Model(&entity.Application{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
