package service

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/yourusername/jobboard-api/internal/domain/entity"
	"github.com/yourusername/jobboard-api/internal/domain/repository"
	apperrors "github.com/yourusername/jobboard-api/internal/pkg/errors"
)

// QuestionService предоставляет админский CRUD по вопросам квиза
// и доступ к счетчикам ответов в Redis
type QuestionService struct {
	questionRepo repository.QuestionRepository
	categoryRepo repository.CategoryRepository
	cacheRepo    repository.CacheRepository
}

// NewQuestionService создает новый сервис вопросов
func NewQuestionService(
	questionRepo repository.QuestionRepository,
	categoryRepo repository.CategoryRepository,
	cacheRepo repository.CacheRepository,
) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		categoryRepo: categoryRepo,
		cacheRepo:    cacheRepo,
	}
}

// QuestionStats - агрегированная статистика ответов на вопрос
type QuestionStats struct {
	QuestionID    uint    `json:"question_id"`
	AnsweredCount int64   `json:"answered_count"`
	CorrectCount  int64   `json:"correct_count"`
	CorrectRate   float64 `json:"correct_rate"`
}

// CreateQuestion создает вопрос в категории
func (s *QuestionService) CreateQuestion(question *entity.Question) error {
	if err := question.Validate(); err != nil {
		return fmt.Errorf("%v: %w", err, apperrors.ErrValidation)
	}
	if _, err := s.categoryRepo.GetByID(question.CategoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("category %d not found: %w", question.CategoryID, apperrors.ErrNotFound)
		}
		return err
	}
	return s.questionRepo.Create(question)
}

// CreateQuestions создает пачку вопросов одной категории атомарно.
// Валидация идет до записи: либо вся пачка валидна, либо ничего не пишем.
func (s *QuestionService) CreateQuestions(categoryID uint, questions []*entity.Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("question batch is empty: %w", apperrors.ErrValidation)
	}
	if _, err := s.categoryRepo.GetByID(categoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("category %d not found: %w", categoryID, apperrors.ErrNotFound)
		}
		return err
	}
	for i, q := range questions {
		q.CategoryID = categoryID
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d in batch: %v: %w", i+1, err, apperrors.ErrValidation)
		}
	}
	return s.questionRepo.CreateBatch(questions)
}

// GetQuestionsByCategory возвращает все вопросы категории, включая ключи
// ответов. Только для админских ручек!
func (s *QuestionService) GetQuestionsByCategory(categoryID uint) ([]entity.Question, error) {
	if _, err := s.categoryRepo.GetByID(categoryID); err != nil {
		return nil, err
	}
	return s.questionRepo.GetByCategoryID(categoryID)
}

// UpdateQuestion обновляет текст, варианты и сложность вопроса
func (s *QuestionService) UpdateQuestion(id uint, text string, options []string, correctOption int, difficulty string) (*entity.Question, error) {
	question, err := s.questionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	question.Text = text
	question.Options = entity.StringArray(options)
	question.CorrectOption = correctOption
	question.Difficulty = difficulty
	if err := question.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, apperrors.ErrValidation)
	}

	if err := s.questionRepo.Update(question); err != nil {
		return nil, err
	}
	return question, nil
}

// DeleteQuestion удаляет вопрос. Записи истории пользователей, ссылающиеся
// на него, не чистятся - ротация игнорирует неизвестные ID.
func (s *QuestionService) DeleteQuestion(id uint) error {
	if err := s.questionRepo.Delete(id); err != nil {
		return err
	}
	s.resetStats(id)
	return nil
}

// GetQuestionStats читает счетчики ответов вопроса из Redis.
// Отсутствующие счетчики считаются нулями.
func (s *QuestionService) GetQuestionStats(id uint) (*QuestionStats, error) {
	if _, err := s.questionRepo.GetByID(id); err != nil {
		return nil, err
	}

	stats := &QuestionStats{QuestionID: id}
	stats.AnsweredCount = s.readCounter(fmt.Sprintf("question:%d:answered", id))
	stats.CorrectCount = s.readCounter(fmt.Sprintf("question:%d:correct", id))
	if stats.AnsweredCount > 0 {
		stats.CorrectRate = float64(stats.CorrectCount) / float64(stats.AnsweredCount)
	}
	return stats, nil
}

func (s *QuestionService) readCounter(key string) int64 {
	if s.cacheRepo == nil {
		return 0
	}
	raw, err := s.cacheRepo.Get(key)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[QuestionService] Ошибка чтения счетчика %s: %v", key, err)
		}
		return 0
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Printf("[QuestionService] Счетчик %s содержит не число %q: %v", key, raw, err)
		return 0
	}
	return value
}

// resetStats удаляет счетчики вопроса; ошибки только логируются
func (s *QuestionService) resetStats(id uint) {
	if s.cacheRepo == nil {
		return
	}
	for _, key := range []string{
		fmt.Sprintf("question:%d:answered", id),
		fmt.Sprintf("question:%d:correct", id),
	} {
		if err := s.cacheRepo.Delete(key); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[QuestionService] Ошибка удаления счетчика %s: %v", key, err)
		}
	}
}
