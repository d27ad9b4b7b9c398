package repository

import (
	"github.com/yourusername/jobboard-api/internal/domain/entity"
)

// UserQuestionHistoryRepository определяет методы для работы с журналом
// показанных вопросов. Запись создается лениво при первом запросе квиза
// для пары (пользователь, категория) и никогда не удаляется автоматически.
type UserQuestionHistoryRepository interface {
	GetOrCreate(userID, categoryID uint) (*entity.UserQuestionHistory, error)
	Save(history *entity.UserQuestionHistory) error
}
