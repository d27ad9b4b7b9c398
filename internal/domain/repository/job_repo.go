package repository

import (
	"github.com/yourusername/jobboard-api/internal/domain/entity"
)

// JobRepository определяет методы для работы с вакансиями
type JobRepository interface {
	Create(job *entity.Job) error
	GetByID(id uint) (*entity.Job, error)
}

// CategoryRepository определяет методы для работы с категориями
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id uint) (*entity.Category, error)
	GetAll() ([]entity.Category, error)
}

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByIDs(ids []uint) ([]entity.User, error)
	GetByEmail(email string) (*entity.User, error)
}
