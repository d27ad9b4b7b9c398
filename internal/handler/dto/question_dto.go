package dto

import (
	"github.com/yourusername/jobboard-api/internal/domain/entity"
)

// CreateQuestionRequest представляет запрос на создание вопроса.
// Админский DTO: содержит ключ правильного ответа.
type CreateQuestionRequest struct {
	Text          string   `json:"text" binding:"required,min=3,max=500"`
	Options       []string `json:"options" binding:"required,min=2,max=10,dive,required,max=200"`
	CorrectOption int      `json:"correct_option" binding:"min=0"`
	Difficulty    string   `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}

// ToEntity конвертирует запрос в доменную сущность
func (r *CreateQuestionRequest) ToEntity(categoryID uint) *entity.Question {
	return &entity.Question{
		CategoryID:    categoryID,
		Text:          r.Text,
		Options:       entity.StringArray(r.Options),
		CorrectOption: r.CorrectOption,
		Difficulty:    r.Difficulty,
	}
}

// BatchCreateQuestionsRequest - пачка вопросов для одной категории
type BatchCreateQuestionsRequest struct {
	Questions []CreateQuestionRequest `json:"questions" binding:"required,min=1,dive"`
}

// AdminQuestionResponse представляет вопрос для админки, с ключом ответа
type AdminQuestionResponse struct {
	ID            uint     `json:"id"`
	CategoryID    uint     `json:"category_id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
	Difficulty    string   `json:"difficulty"`
}

// NewAdminQuestionResponse создает админский DTO вопроса
func NewAdminQuestionResponse(q *entity.Question) *AdminQuestionResponse {
	return &AdminQuestionResponse{
		ID:            q.ID,
		CategoryID:    q.CategoryID,
		Text:          q.Text,
		Options:       []string(q.Options),
		CorrectOption: q.CorrectOption,
		Difficulty:    q.Difficulty,
	}
}

// NewAdminQuestionListResponse создает список админских DTO вопросов
func NewAdminQuestionListResponse(questions []entity.Question) []*AdminQuestionResponse {
	out := make([]*AdminQuestionResponse, 0, len(questions))
	for i := range questions {
		out = append(out, NewAdminQuestionResponse(&questions[i]))
	}
	return out
}
