package dto

import (
	"time"

	"github.com/yourusername/jobboard-api/internal/domain/entity"
	"github.com/yourusername/jobboard-api/internal/service"
)

// QuizResultEntryDTO - результат одного вопроса в составе отклика
type QuizResultEntryDTO struct {
	QuestionID     uint `json:"question_id" binding:"required"`
	SelectedAnswer int  `json:"selected_answer" binding:"min=-1"`
	IsCorrect      bool `json:"is_correct"`
}

// ApplyRequest представляет запрос отклика на вакансию
type ApplyRequest struct {
	QuizScore   *int                 `json:"quiz_score" binding:"omitempty,min=0,max=100"`
	QuizResults []QuizResultEntryDTO `json:"quiz_results" binding:"omitempty,dive"`
}

// Entries конвертирует результаты запроса в доменные записи
func (r *ApplyRequest) Entries() []entity.QuizResultEntry {
	entries := make([]entity.QuizResultEntry, 0, len(r.QuizResults))
	for _, e := range r.QuizResults {
		entries = append(entries, entity.QuizResultEntry{
			QuestionID:     e.QuestionID,
			SelectedAnswer: e.SelectedAnswer,
			IsCorrect:      e.IsCorrect,
		})
	}
	return entries
}

// ApplicationResponse представляет отклик в формате для клиента
type ApplicationResponse struct {
	ID          uint                     `json:"id"`
	JobID       uint                     `json:"job_id"`
	ApplicantID uint                     `json:"applicant_id"`
	Status      string                   `json:"status"`
	QuizScore   *int                     `json:"quiz_score,omitempty"`
	QuizPassed  *bool                    `json:"quiz_passed,omitempty"`
	QuizResults []entity.QuizResultEntry `json:"quiz_results,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// NewApplicationResponse создает DTO отклика
func NewApplicationResponse(a *entity.Application) *ApplicationResponse {
	return &ApplicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		ApplicantID: a.ApplicantID,
		Status:      a.Status,
		QuizScore:   a.QuizScore,
		QuizPassed:  a.QuizPassed,
		QuizResults: []entity.QuizResultEntry(a.QuizResults),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// ApplyResponse - исход отклика с сообщением для соискателя
type ApplyResponse struct {
	Application  *ApplicationResponse `json:"application"`
	Message      string               `json:"message"`
	CorrectCount *int                 `json:"correct_count,omitempty"`
}

// NewApplyResponse создает DTO исхода отклика
func NewApplyResponse(outcome *service.ApplyOutcome) *ApplyResponse {
	return &ApplyResponse{
		Application:  NewApplicationResponse(outcome.Application),
		Message:      outcome.Message,
		CorrectCount: outcome.CorrectCount,
	}
}

// UpdateStatusRequest - решение рекрутера по отклику
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending accepted rejected"`
}
