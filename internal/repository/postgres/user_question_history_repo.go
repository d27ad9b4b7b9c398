package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/jobboard-api/internal/domain/entity"
)

// UserQuestionHistoryRepo реализует repository.UserQuestionHistoryRepository
type UserQuestionHistoryRepo struct {
	db *gorm.DB
}

// NewUserQuestionHistoryRepo создает новый репозиторий журнала показов
func NewUserQuestionHistoryRepo(db *gorm.DB) *UserQuestionHistoryRepo {
	return &UserQuestionHistoryRepo{db: db}
}

// GetOrCreate возвращает журнал для пары (пользователь, категория),
// лениво создавая пустую запись при первом обращении. Гонка двух
// параллельных созданий разрешается уникальным индексом: проигравший
// Create перечитывает запись победителя.
func (r *UserQuestionHistoryRepo) GetOrCreate(userID, categoryID uint) (*entity.UserQuestionHistory, error) {
	var history entity.UserQuestionHistory
	err := r.db.Where("user_id = ? AND category_id = ?", userID, categoryID).First(&history).Error
	if err == nil {
		return &history, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	history = entity.UserQuestionHistory{
		UserID:         userID,
		CategoryID:     categoryID,
		AskedQuestions: entity.AskedQuestionList{},
	}
	if createErr := r.db.Create(&history).Error; createErr != nil {
		if isUniqueViolation(createErr) {
			// Запись успела создать параллельная операция - читаем её
			if readErr := r.db.Where("user_id = ? AND category_id = ?", userID, categoryID).
				First(&history).Error; readErr != nil {
				return nil, readErr
			}
			return &history, nil
		}
		return nil, createErr
	}
	return &history, nil
}

// Save сохраняет обновленный журнал
func (r *UserQuestionHistoryRepo) Save(history *entity.UserQuestionHistory) error {
	return r.db.Save(history).Error
}
