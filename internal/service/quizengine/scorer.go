package quizengine

import (
	"context"
	"fmt"
	"log"
	"math"

	apperrors "github.com/yourusername/jobboard-api/internal/pkg/errors"
)

// Scorer проверяет ответы квиза по авторитетному ключу из хранилища
type Scorer struct {
	config *Config
	deps   *Dependencies
}

// NewScorer создает новый движок проверки
func NewScorer(config *Config, deps *Dependencies) *Scorer {
	return &Scorer{
		config: config,
		deps:   deps,
	}
}

// ScoreSubmission проверяет отправленные ответы. Операция идемпотентна:
// повторная проверка того же списка дает тот же результат.
//
// Каждый question_id обязан разрешиться в существующий вопрос; несовпадение
// количеств - защита от протухших или подделанных ID. selected_answer == -1
// означает таймаут/пропуск и никогда не засчитывается как правильный.
func (s *Scorer) ScoreSubmission(ctx context.Context, answers []AnswerSubmission) (*ScoreResult, error) {
	if len(answers) == 0 {
		return nil, fmt.Errorf("no answers submitted: %w", apperrors.ErrValidation)
	}

	ids := make([]uint, 0, len(answers))
	for _, a := range answers {
		if a.SelectedAnswer < TimedOutAnswer {
			return nil, fmt.Errorf("invalid selected_answer %d for question %d: %w",
				a.SelectedAnswer, a.QuestionID, apperrors.ErrValidation)
		}
		ids = append(ids, a.QuestionID)
	}

	questions, err := s.deps.QuestionRepo.GetByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	if len(questions) != len(answers) {
		return nil, fmt.Errorf("some questions not found: %w", apperrors.ErrValidation)
	}

	byID := make(map[uint]int, len(questions))
	for i := range questions {
		byID[questions[i].ID] = i
	}

	results := make([]QuestionResult, 0, len(answers))
	correctCount := 0
	for _, a := range answers {
		q := &questions[byID[a.QuestionID]]
		timedOut := a.SelectedAnswer == TimedOutAnswer
		isCorrect := !timedOut && q.IsCorrect(a.SelectedAnswer)
		if isCorrect {
			correctCount++
		}
		results = append(results, QuestionResult{
			QuestionID:     q.ID,
			Question:       q.Text,
			SelectedAnswer: a.SelectedAnswer,
			CorrectAnswer:  q.CorrectOption,
			IsCorrect:      isCorrect,
			TimedOut:       timedOut,
		})
	}

	total := len(answers)
	score := int(math.Round(100 * float64(correctCount) / float64(total)))

	s.recordStats(results)

	return &ScoreResult{
		Score:          score,
		CorrectCount:   correctCount,
		TotalQuestions: total,
		Passed:         correctCount >= s.config.PassThreshold,
		Results:        results,
	}, nil
}

// recordStats инкрементирует счетчики статистики по вопросам в Redis.
// Best-effort: ошибки кеша логируются и не влияют на результат проверки.
func (s *Scorer) recordStats(results []QuestionResult) {
	if s.deps.CacheRepo == nil {
		return
	}
	for _, r := range results {
		if _, err := s.deps.CacheRepo.Increment(fmt.Sprintf("question:%d:answered", r.QuestionID)); err != nil {
			log.Printf("[Scorer] Error incrementing answered counter for question %d: %v", r.QuestionID, err)
			continue
		}
		if r.IsCorrect {
			if _, err := s.deps.CacheRepo.Increment(fmt.Sprintf("question:%d:correct", r.QuestionID)); err != nil {
				log.Printf("[Scorer] Error incrementing correct counter for question %d: %v", r.QuestionID, err)
			}
		}
	}
}
