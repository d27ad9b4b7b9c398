package dto

import (
	"github.com/yourusername/jobboard-api/internal/service/quizengine"
)

// QuizQuestionResponse представляет вопрос квиза без ключа ответа
type QuizQuestionResponse struct {
	ID         uint     `json:"id"`
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Difficulty string   `json:"difficulty"`
}

// QuizResponse представляет подборку квиза для клиента
type QuizResponse struct {
	Questions      []QuizQuestionResponse `json:"questions"`
	TotalAvailable int                    `json:"total_available"`
}

// NewQuizResponse создает DTO подборки квиза
func NewQuizResponse(selection *quizengine.Selection) *QuizResponse {
	questions := make([]QuizQuestionResponse, 0, len(selection.Questions))
	for _, q := range selection.Questions {
		questions = append(questions, QuizQuestionResponse{
			ID:         q.ID,
			Question:   q.Question,
			Options:    q.Options,
			Difficulty: q.Difficulty,
		})
	}
	return &QuizResponse{
		Questions:      questions,
		TotalAvailable: selection.TotalAvailable,
	}
}

// SubmitQuizRequest представляет ответы пользователя на квиз.
// SelectedAnswer равный -1 означает истекшее время на вопрос.
type SubmitQuizRequest struct {
	Answers []SubmittedAnswer `json:"answers" binding:"required,min=1,dive"`
}

// SubmittedAnswer - один ответ на вопрос
type SubmittedAnswer struct {
	QuestionID     uint `json:"question_id" binding:"required"`
	SelectedAnswer int  `json:"selected_answer" binding:"min=-1"`
}

// QuestionResultResponse - разбор одного вопроса после проверки
type QuestionResultResponse struct {
	QuestionID     uint   `json:"question_id"`
	Question       string `json:"question"`
	SelectedAnswer int    `json:"selected_answer"`
	CorrectAnswer  int    `json:"correct_answer"`
	IsCorrect      bool   `json:"is_correct"`
	TimedOut       bool   `json:"timed_out"`
}

// ScoreResponse - итог проверки квиза
type ScoreResponse struct {
	Score          int                      `json:"score"`
	CorrectCount   int                      `json:"correct_count"`
	TotalQuestions int                      `json:"total_questions"`
	Passed         bool                     `json:"passed"`
	Results        []QuestionResultResponse `json:"results"`
}

// NewScoreResponse создает DTO итога проверки
func NewScoreResponse(result *quizengine.ScoreResult) *ScoreResponse {
	results := make([]QuestionResultResponse, 0, len(result.Results))
	for _, r := range result.Results {
		results = append(results, QuestionResultResponse{
			QuestionID:     r.QuestionID,
			Question:       r.Question,
			SelectedAnswer: r.SelectedAnswer,
			CorrectAnswer:  r.CorrectAnswer,
			IsCorrect:      r.IsCorrect,
			TimedOut:       r.TimedOut,
		})
	}
	return &ScoreResponse{
		Score:          result.Score,
		CorrectCount:   result.CorrectCount,
		TotalQuestions: result.TotalQuestions,
		Passed:         result.Passed,
		Results:        results,
	}
}
