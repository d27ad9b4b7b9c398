package repository

import (
	"github.com/yourusername/jobboard-api/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с вопросами квиза
type QuestionRepository interface {
	Create(question *entity.Question) error
	CreateBatch(questions []*entity.Question) error
	GetByID(id uint) (*entity.Question, error)
	// GetByIDs возвращает вопросы по списку ID; отсутствующие ID молча пропускаются,
	// несовпадение количества проверяет вызывающая сторона
	GetByIDs(ids []uint) ([]entity.Question, error)
	GetByCategoryID(categoryID uint) ([]entity.Question, error)
	CountByCategory(categoryID uint) (int64, error)
	Update(question *entity.Question) error
	Delete(id uint) error
}
