package quizengine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/jobboard-api/internal/domain/entity"
	apperrors "github.com/yourusername/jobboard-api/internal/pkg/errors"
)

// newScorer собирает Scorer без кеша: статистика в этих тестах не важна
func newScorer(passThreshold int) (*Scorer, *MockQuestionRepo) {
	questionRepo := new(MockQuestionRepo)
	cfg := testConfig(DefaultQuestionsPerQuiz)
	cfg.PassThreshold = passThreshold
	scorer := NewScorer(cfg, &Dependencies{QuestionRepo: questionRepo})
	return scorer, questionRepo
}

func makeAnswers(questions []entity.Question, correct int) []AnswerSubmission {
	answers := make([]AnswerSubmission, len(questions))
	for i, q := range questions {
		if i < correct {
			answers[i] = AnswerSubmission{QuestionID: q.ID, SelectedAnswer: q.CorrectOption}
		} else {
			answers[i] = AnswerSubmission{QuestionID: q.ID, SelectedAnswer: q.CorrectOption + 1}
		}
	}
	return answers
}

func TestScoreSubmissionAllCorrect(t *testing.T) {
	scorer, questionRepo := newScorer(16)

	questions := makeQuestions(1, 20)
	answers := makeAnswers(questions, 20)
	questionRepo.On("GetByIDs", questionIDs(questions)).Return(questions, nil)

	result, err := scorer.ScoreSubmission(context.Background(), answers)
	require.NoError(t, err)

	assert.Equal(t, 100, result.Score)
	assert.Equal(t, 20, result.CorrectCount)
	assert.Equal(t, 20, result.TotalQuestions)
	assert.True(t, result.Passed)
	require.Len(t, result.Results, 20)
	for _, r := range result.Results {
		assert.True(t, r.IsCorrect)
		assert.False(t, r.TimedOut)
	}
}

func questionIDs(questions []entity.Question) []uint {
	ids := make([]uint, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	return ids
}

func TestScoreSubmissionPassThresholdBoundary(t *testing.T) {
	tests := []struct {
		name       string
		correct    int
		wantPassed bool
		wantScore  int
	}{
		{name: "16 of 20 passes", correct: 16, wantPassed: true, wantScore: 80},
		{name: "15 of 20 fails", correct: 15, wantPassed: false, wantScore: 75},
		{name: "0 of 20 fails", correct: 0, wantPassed: false, wantScore: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scorer, questionRepo := newScorer(16)
			questions := makeQuestions(1, 20)
			questionRepo.On("GetByIDs", questionIDs(questions)).Return(questions, nil)

			result, err := scorer.ScoreSubmission(context.Background(), makeAnswers(questions, tt.correct))
			require.NoError(t, err)
			assert.Equal(t, tt.wantPassed, result.Passed)
			assert.Equal(t, tt.wantScore, result.Score)
		})
	}
}

func TestScoreSubmissionThresholdUnreachableOnShortQuiz(t *testing.T) {
	// Порог абсолютный: квиз из 5 вопросов не пройти при пороге 16,
	// даже ответив на все правильно
	scorer, questionRepo := newScorer(16)
	questions := makeQuestions(1, 5)
	questionRepo.On("GetByIDs", questionIDs(questions)).Return(questions, nil)

	result, err := scorer.ScoreSubmission(context.Background(), makeAnswers(questions, 5))
	require.NoError(t, err)
	assert.Equal(t, 100, result.Score)
	assert.False(t, result.Passed)
}

func TestScoreSubmissionTimedOutNeverCorrect(t *testing.T) {
	scorer, questionRepo := newScorer(2)

	questions := makeQuestions(1, 2)
	questionRepo.On("GetByIDs", []uint{1, 2}).Return(questions, nil)

	answers := []AnswerSubmission{
		{QuestionID: 1, SelectedAnswer: TimedOutAnswer},
		{QuestionID: 2, SelectedAnswer: questions[1].CorrectOption},
	}

	result, err := scorer.ScoreSubmission(context.Background(), answers)
	require.NoError(t, err)

	assert.Equal(t, 1, result.CorrectCount)
	assert.Equal(t, 50, result.Score)
	assert.True(t, result.Results[0].TimedOut)
	assert.False(t, result.Results[0].IsCorrect)
	assert.False(t, result.Results[1].TimedOut)
	assert.True(t, result.Results[1].IsCorrect)
}

func TestScoreSubmissionRounding(t *testing.T) {
	// 1 из 3 = 33.33 -> 33, 2 из 3 = 66.67 -> 67
	scorer, questionRepo := newScorer(1)
	questions := makeQuestions(1, 3)
	questionRepo.On("GetByIDs", questionIDs(questions)).Return(questions, nil)

	result, err := scorer.ScoreSubmission(context.Background(), makeAnswers(questions, 1))
	require.NoError(t, err)
	assert.Equal(t, 33, result.Score)

	questionRepo2 := new(MockQuestionRepo)
	scorer2 := NewScorer(testConfig(20), &Dependencies{QuestionRepo: questionRepo2})
	questionRepo2.On("GetByIDs", questionIDs(questions)).Return(questions, nil)

	result, err = scorer2.ScoreSubmission(context.Background(), makeAnswers(questions, 2))
	require.NoError(t, err)
	assert.Equal(t, 67, result.Score)
}

func TestScoreSubmissionIdempotent(t *testing.T) {
	scorer, questionRepo := newScorer(2)
	questions := makeQuestions(1, 3)
	questionRepo.On("GetByIDs", questionIDs(questions)).Return(questions, nil)

	answers := makeAnswers(questions, 2)

	first, err := scorer.ScoreSubmission(context.Background(), answers)
	require.NoError(t, err)
	second, err := scorer.ScoreSubmission(context.Background(), answers)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestScoreSubmissionValidation(t *testing.T) {
	scorer, questionRepo := newScorer(16)

	// Пустой список ответов
	_, err := scorer.ScoreSubmission(context.Background(), nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// Ответ меньше сентинела таймаута
	_, err = scorer.ScoreSubmission(context.Background(), []AnswerSubmission{
		{QuestionID: 1, SelectedAnswer: -2},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// Несуществующий вопрос: репозиторий вернул меньше, чем спрошено
	questionRepo.On("GetByIDs", []uint{1, 999}).Return(makeQuestions(1, 1), nil)
	_, err = scorer.ScoreSubmission(context.Background(), []AnswerSubmission{
		{QuestionID: 1, SelectedAnswer: 0},
		{QuestionID: 999, SelectedAnswer: 0},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestScoreSubmissionRepoError(t *testing.T) {
	scorer, questionRepo := newScorer(16)
	questionRepo.On("GetByIDs", []uint{1}).Return(nil, errors.New("db down"))

	_, err := scorer.ScoreSubmission(context.Background(), []AnswerSubmission{
		{QuestionID: 1, SelectedAnswer: 0},
	})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrValidation)
}

func TestScoreSubmissionRecordsStats(t *testing.T) {
	questionRepo := new(MockQuestionRepo)
	cacheRepo := new(MockCacheRepo)
	scorer := NewScorer(testConfig(20), &Dependencies{QuestionRepo: questionRepo, CacheRepo: cacheRepo})

	questions := makeQuestions(1, 2)
	questionRepo.On("GetByIDs", []uint{1, 2}).Return(questions, nil)

	cacheRepo.On("Increment", "question:1:answered").Return(int64(1), nil).Once()
	cacheRepo.On("Increment", "question:1:correct").Return(int64(1), nil).Once()
	cacheRepo.On("Increment", "question:2:answered").Return(int64(1), nil).Once()
	// Вопрос 2 отвечен неверно - счетчик correct не трогается

	answers := []AnswerSubmission{
		{QuestionID: 1, SelectedAnswer: questions[0].CorrectOption},
		{QuestionID: 2, SelectedAnswer: questions[1].CorrectOption + 1},
	}
	_, err := scorer.ScoreSubmission(context.Background(), answers)
	require.NoError(t, err)

	cacheRepo.AssertExpectations(t)
	cacheRepo.AssertNotCalled(t, "Increment", "question:2:correct")
}
