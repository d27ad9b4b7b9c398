package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// AskedQuestion хранит факт показа вопроса пользователю
type AskedQuestion struct {
	QuestionID uint      `json:"question_id"`
	AskedAt    time.Time `json:"asked_at"`
}

// AskedQuestionList - пользовательский тип для хранения журнала показов в JSONB
type AskedQuestionList []AskedQuestion

// Scan реализует интерфейс sql.Scanner для AskedQuestionList
func (l *AskedQuestionList) Scan(value interface{}) error {
	if value == nil {
		*l = AskedQuestionList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*l = AskedQuestionList{}
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// Value реализует интерфейс driver.Valuer для AskedQuestionList
func (l AskedQuestionList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// UserQuestionHistory - журнал показанных вопросов для пары (пользователь, категория).
// Это журнал ротации, а не справочник вопросов: записи о показах не удаляются
// вместе с вопросами, счетчик попыток переживает сброс набора.
type UserQuestionHistory struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	UserID         uint              `gorm:"not null;uniqueIndex:idx_history_user_category" json:"user_id"`
	CategoryID     uint              `gorm:"not null;uniqueIndex:idx_history_user_category;index" json:"category_id"`
	AskedQuestions AskedQuestionList `gorm:"type:jsonb;not null" json:"asked_questions"`
	TotalAttempts  int               `gorm:"not null;default:0" json:"total_attempts"`
	LastResetAt    *time.Time        `json:"last_reset_at,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// TableName задает имя таблицы для GORM
func (UserQuestionHistory) TableName() string {
	return "user_question_histories"
}

// HasAsked проверяет, показывался ли вопрос пользователю в текущем цикле ротации
func (h *UserQuestionHistory) HasAsked(questionID uint) bool {
	for _, a := range h.AskedQuestions {
		if a.QuestionID == questionID {
			return true
		}
	}
	return false
}

// LastAskedAt возвращает время последнего показа вопроса.
// Второе значение false, если вопрос еще не показывался.
func (h *UserQuestionHistory) LastAskedAt(questionID uint) (time.Time, bool) {
	var last time.Time
	found := false
	for _, a := range h.AskedQuestions {
		if a.QuestionID == questionID && a.AskedAt.After(last) {
			last = a.AskedAt
			found = true
		}
	}
	return last, found
}

// AppendAsked добавляет показанные вопросы в журнал.
// Вопросы, уже присутствующие в наборе, пропускаются - защита от дублей
// при параллельных запросах.
func (h *UserQuestionHistory) AppendAsked(questionIDs []uint, askedAt time.Time) {
	for _, id := range questionIDs {
		if h.HasAsked(id) {
			continue
		}
		h.AskedQuestions = append(h.AskedQuestions, AskedQuestion{
			QuestionID: id,
			AskedAt:    askedAt,
		})
	}
}

// Reset начинает новый цикл ротации: очищает набор показанных вопросов
// и продвигает метку сброса. Счетчик попыток НЕ сбрасывается.
func (h *UserQuestionHistory) Reset(resetAt time.Time) {
	h.AskedQuestions = AskedQuestionList{}
	h.LastResetAt = &resetAt
}
