package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Статусы отклика на вакансию.
// "pending" означает и "ожидает квиз" (для категорий без вопросов квиза нет),
// и "ожидает рекрутера" - рекрутер видит только прошедшие квиз отклики.
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

// QuizResultEntry хранит результат ответа на один вопрос квиза
type QuizResultEntry struct {
	QuestionID     uint `json:"question_id"`
	SelectedAnswer int  `json:"selected_answer"`
	IsCorrect      bool `json:"is_correct"`
}

// QuizResultList - пользовательский тип для хранения результатов квиза в JSONB
type QuizResultList []QuizResultEntry

// Scan реализует интерфейс sql.Scanner для QuizResultList
func (l *QuizResultList) Scan(value interface{}) error {
	if value == nil {
		*l = QuizResultList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*l = QuizResultList{}
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// Value реализует интерфейс driver.Valuer для QuizResultList
func (l QuizResultList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Application представляет отклик соискателя на вакансию.
// Поля квиза записываются один раз при создании; статус позже
// меняется рекрутером.
type Application struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	JobID       uint           `gorm:"not null;uniqueIndex:idx_application_job_applicant" json:"job_id"`
	ApplicantID uint           `gorm:"not null;uniqueIndex:idx_application_job_applicant;index" json:"applicant_id"`
	Status      string         `gorm:"size:20;not null;default:'pending';index" json:"status"`
	QuizScore   *int           `json:"quiz_score"`  // nil, когда у категории нет квиза
	QuizPassed  *bool          `json:"quiz_passed"` // nil, когда у категории нет квиза
	QuizResults QuizResultList `gorm:"type:jsonb;not null" json:"quiz_results"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Application) TableName() string {
	return "applications"
}

// HasQuiz возвращает true, если отклик сопровождался квизом
func (a *Application) HasQuiz() bool {
	return a.QuizScore != nil
}

// QuizFieldsConsistent проверяет инвариант: quiz_score и quiz_passed
// либо оба nil, либо оба заполнены
func (a *Application) QuizFieldsConsistent() bool {
	return (a.QuizScore == nil) == (a.QuizPassed == nil)
}

// CorrectCount возвращает число правильных ответов в результатах квиза
func (a *Application) CorrectCount() int {
	count := 0
	for _, r := range a.QuizResults {
		if r.IsCorrect {
			count++
		}
	}
	return count
}

// IsValidApplicationStatus проверяет корректность статуса отклика
func IsValidApplicationStatus(status string) bool {
	switch status {
	case ApplicationStatusPending, ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}
