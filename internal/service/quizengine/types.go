package quizengine

import (
	"time"

	"github.com/yourusername/jobboard-api/internal/domain/repository"
)

// Значения по умолчанию
const (
	// DefaultQuestionsPerQuiz - стандартный размер квиза
	DefaultQuestionsPerQuiz = 20

	// DefaultPassThreshold - минимум правильных ответов для прохождения.
	// Порог абсолютный и не зависит от количества заданных вопросов:
	// категория с числом вопросов меньше порога делает прохождение недостижимым,
	// это осознанное поведение, а не ошибка округления.
	DefaultPassThreshold = 16

	// TimedOutAnswer - сентинел "не ответил" (таймаут или пропуск вопроса)
	TimedOutAnswer = -1
)

// Config содержит настройки движка квизов
type Config struct {
	// QuestionsPerQuiz - количество вопросов в одном квизе
	QuestionsPerQuiz int

	// PassThreshold - минимум правильных ответов для прохождения квиза
	PassThreshold int

	// Настройки блокировки подбора: одна пара (пользователь, категория)
	// обслуживается строго последовательно
	SelectionLockTTL        time.Duration
	SelectionLockRetries    int
	SelectionLockRetryDelay time.Duration
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *Config {
	return &Config{
		QuestionsPerQuiz:        DefaultQuestionsPerQuiz,
		PassThreshold:           DefaultPassThreshold,
		SelectionLockTTL:        5 * time.Second,
		SelectionLockRetries:    5,
		SelectionLockRetryDelay: 100 * time.Millisecond,
	}
}

// Dependencies группирует зависимости компонентов движка
type Dependencies struct {
	QuestionRepo repository.QuestionRepository
	CategoryRepo repository.CategoryRepository
	HistoryRepo  repository.UserQuestionHistoryRepository
	CacheRepo    repository.CacheRepository
	Sampler      Sampler
}

// QuizQuestion - вопрос в форме, безопасной для выдачи клиенту.
// Индекс правильного ответа отрезается внутри движка и не покидает его
// границу доверия при подборе.
type QuizQuestion struct {
	ID         uint     `json:"id"`
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Difficulty string   `json:"difficulty"`
}

// Selection - результат подбора вопросов для квиза
type Selection struct {
	Questions      []QuizQuestion `json:"questions"`
	TotalAvailable int            `json:"total_available"`
}

// AnswerSubmission - ответ пользователя на один вопрос
type AnswerSubmission struct {
	QuestionID     uint `json:"question_id"`
	SelectedAnswer int  `json:"selected_answer"`
}

// QuestionResult - результат проверки одного ответа.
// Текст вопроса и правильный вариант включаются для разбора на клиенте.
type QuestionResult struct {
	QuestionID     uint   `json:"question_id"`
	Question       string `json:"question"`
	SelectedAnswer int    `json:"selected_answer"`
	CorrectAnswer  int    `json:"correct_answer"`
	IsCorrect      bool   `json:"is_correct"`
	TimedOut       bool   `json:"timed_out"`
}

// ScoreResult - итог проверки квиза
type ScoreResult struct {
	Score          int              `json:"score"`
	CorrectCount   int              `json:"correct_count"`
	TotalQuestions int              `json:"total_questions"`
	Passed         bool             `json:"passed"`
	Results        []QuestionResult `json:"results"`
}
