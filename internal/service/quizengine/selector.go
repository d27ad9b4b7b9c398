package quizengine

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/yourusername/jobboard-api/internal/domain/entity"
	apperrors "github.com/yourusername/jobboard-api/internal/pkg/errors"
)

// QuestionSelector подбирает вопросы квиза с учетом истории показов.
// Политика ротации: сначала никогда не показанные, затем давно не
// показанные, при исчерпании - полный сброс цикла.
type QuestionSelector struct {
	config *Config
	deps   *Dependencies
}

// NewQuestionSelector создает новый селектор вопросов
func NewQuestionSelector(config *Config, deps *Dependencies) *QuestionSelector {
	return &QuestionSelector{
		config: config,
		deps:   deps,
	}
}

// seenQuestion - показанный ранее вопрос с меткой последнего показа
type seenQuestion struct {
	question  entity.Question
	lastAsked time.Time
}

// SelectQuestions подбирает count вопросов категории для пользователя.
// userID == nil означает анонимный запрос: равномерная выборка без
// отслеживания истории. count <= 0 заменяется размером квиза из конфигурации.
//
// Запись в журнал показов - часть операции: если журнал не сохранился,
// весь подбор завершается ошибкой и вопросы не выдаются. Иначе пользователь
// мог бы бесплатно "подсматривать" свежие вопросы.
func (s *QuestionSelector) SelectQuestions(ctx context.Context, categoryID uint, userID *uint, count int) (*Selection, error) {
	if count <= 0 {
		count = s.config.QuestionsPerQuiz
	}

	if _, err := s.deps.CategoryRepo.GetByID(categoryID); err != nil {
		return nil, fmt.Errorf("category %d: %w", categoryID, err)
	}

	questions, err := s.deps.QuestionRepo.GetByCategoryID(categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions for category %d: %w", categoryID, err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("no questions available for category %d, contact admin: %w",
			categoryID, apperrors.ErrNotFound)
	}
	total := len(questions)

	// Анонимный путь: равномерная выборка, журнал не трогаем
	if userID == nil {
		picked := s.sample(questions, minInt(count, total))
		return &Selection{Questions: stripAnswerKey(picked), TotalAvailable: total}, nil
	}

	// Аутентифицированный путь: подбор для одной пары (пользователь, категория)
	// сериализуется блокировкой, иначе два параллельных запроса прочитают
	// один и тот же "свежий" пул и дважды посчитают попытку
	unlock, err := s.acquireSelectionLock(*userID, categoryID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	history, err := s.deps.HistoryRepo.GetOrCreate(*userID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load question history: %w", err)
	}

	now := time.Now()
	picked := s.pickByRotation(questions, history, count, now)

	ids := make([]uint, len(picked))
	for i, q := range picked {
		ids[i] = q.ID
	}
	history.AppendAsked(ids, now)
	history.TotalAttempts++

	if err := s.deps.HistoryRepo.Save(history); err != nil {
		return nil, fmt.Errorf("failed to persist question history: %w", err)
	}

	return &Selection{Questions: stripAnswerKey(picked), TotalAvailable: total}, nil
}

// pickByRotation применяет политику ротации к вопросам категории
func (s *QuestionSelector) pickByRotation(questions []entity.Question, history *entity.UserQuestionHistory, count int, now time.Time) []entity.Question {
	var fresh []entity.Question
	var seen []seenQuestion
	for _, q := range questions {
		if at, ok := history.LastAskedAt(q.ID); ok {
			seen = append(seen, seenQuestion{question: q, lastAsked: at})
		} else {
			fresh = append(fresh, q)
		}
	}

	switch {
	case len(fresh) >= count:
		// Свежих хватает: пользователь не видит повторов, пока они есть
		return s.sample(fresh, count)

	case len(fresh) > 0:
		// Свежие кончаются: добираем давно не показанными и перемешиваем,
		// чтобы порядок не выдавал, из какой корзины вопрос
		picked := make([]entity.Question, 0, count)
		picked = append(picked, fresh...)

		sort.Slice(seen, func(i, j int) bool {
			return seen[i].lastAsked.Before(seen[j].lastAsked)
		})
		need := minInt(count-len(fresh), len(seen))
		for i := 0; i < need; i++ {
			picked = append(picked, seen[i].question)
		}

		s.deps.Sampler.Shuffle(len(picked), func(i, j int) {
			picked[i], picked[j] = picked[j], picked[i]
		})
		return picked

	default:
		// Все вопросы показаны: начинаем новый цикл ротации
		log.Printf("[QuestionSelector] История пользователя %d по категории %d исчерпана, сброс цикла",
			history.UserID, history.CategoryID)
		history.Reset(now)
		return s.sample(questions, minInt(count, len(questions)))
	}
}

// sample возвращает n случайных вопросов из src, не изменяя src
func (s *QuestionSelector) sample(src []entity.Question, n int) []entity.Question {
	pool := make([]entity.Question, len(src))
	copy(pool, src)
	s.deps.Sampler.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if n > len(pool) {
		n = len(pool)
	}
	return pool[:n]
}

// acquireSelectionLock захватывает блокировку подбора для пары
// (пользователь, категория). Если блокировка занята после всех попыток,
// возвращается ErrConflict. Если Redis недоступен, подбор продолжается
// без блокировки - доступность важнее строгой сериализации.
func (s *QuestionSelector) acquireSelectionLock(userID, categoryID uint) (func(), error) {
	key := fmt.Sprintf("quiz:select:%d:%d", userID, categoryID)

	for attempt := 0; attempt <= s.config.SelectionLockRetries; attempt++ {
		ok, err := s.deps.CacheRepo.SetNX(key, 1, s.config.SelectionLockTTL)
		if err != nil {
			log.Printf("[QuestionSelector] WARNING: Redis недоступен при захвате блокировки %s: %v. Подбор без блокировки.", key, err)
			return func() {}, nil
		}
		if ok {
			return func() {
				if delErr := s.deps.CacheRepo.Delete(key); delErr != nil {
					log.Printf("[QuestionSelector] Ошибка снятия блокировки %s: %v", key, delErr)
				}
			}, nil
		}
		time.Sleep(s.config.SelectionLockRetryDelay)
	}

	return nil, fmt.Errorf("question selection already in progress for user %d, category %d: %w",
		userID, categoryID, apperrors.ErrConflict)
}

// stripAnswerKey отрезает индекс правильного ответа перед выдачей наружу
func stripAnswerKey(questions []entity.Question) []QuizQuestion {
	out := make([]QuizQuestion, len(questions))
	for i, q := range questions {
		out[i] = QuizQuestion{
			ID:         q.ID,
			Question:   q.Text,
			Options:    q.Options,
			Difficulty: q.Difficulty,
		}
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
