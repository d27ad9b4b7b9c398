package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/jobboard-api/internal/domain/entity"
	apperrors "github.com/yourusername/jobboard-api/internal/pkg/errors"
	"github.com/yourusername/jobboard-api/internal/service/quizengine"
)

func intPtr(v int) *int { return &v }

type applicationServiceMocks struct {
	applicationRepo *MockApplicationRepo
	jobRepo         *MockJobRepo
	questionRepo    *MockQuestionRepo
	userRepo        *MockUserRepo
	emailService    *MockEmailService
}

func newApplicationService() (*ApplicationService, *applicationServiceMocks) {
	m := &applicationServiceMocks{
		applicationRepo: new(MockApplicationRepo),
		jobRepo:         new(MockJobRepo),
		questionRepo:    new(MockQuestionRepo),
		userRepo:        new(MockUserRepo),
		emailService:    new(MockEmailService),
	}
	svc := NewApplicationService(
		m.applicationRepo, m.jobRepo, m.questionRepo, m.userRepo, m.emailService,
		quizengine.DefaultConfig(),
	)
	return svc, m
}

func quizResults(correct, wrong int) []entity.QuizResultEntry {
	results := make([]entity.QuizResultEntry, 0, correct+wrong)
	id := uint(1)
	for i := 0; i < correct; i++ {
		results = append(results, entity.QuizResultEntry{QuestionID: id, SelectedAnswer: 0, IsCorrect: true})
		id++
	}
	for i := 0; i < wrong; i++ {
		results = append(results, entity.QuizResultEntry{QuestionID: id, SelectedAnswer: 1, IsCorrect: false})
		id++
	}
	return results
}

// expectNotification настраивает best-effort уведомление после создания отклика
func expectNotification(m *applicationServiceMocks, applicantID uint) {
	m.userRepo.On("GetByID", applicantID).
		Return(&entity.User{ID: applicantID, Email: "applicant@test.com", Username: "applicant"}, nil)
	m.emailService.On("SendApplicationOutcome", mock.Anything, "applicant@test.com", mock.Anything, mock.Anything, mock.Anything).
		Return(nil)
}

func TestApplyToJobNoQuizCategory(t *testing.T) {
	svc, m := newApplicationService()

	m.applicationRepo.On("ExistsByJobAndApplicant", uint(10), uint(1)).Return(false, nil)
	m.jobRepo.On("GetByID", uint(10)).Return(&entity.Job{ID: 10, Title: "Designer", CategoryID: 3}, nil)
	m.questionRepo.On("CountByCategory", uint(3)).Return(int64(0), nil)
	m.applicationRepo.On("Create", mock.AnythingOfType("*entity.Application")).Return(nil)
	expectNotification(m, 1)

	outcome, err := svc.ApplyToJob(context.Background(), 1, 10, nil, nil)
	require.NoError(t, err)

	app := outcome.Application
	assert.Equal(t, entity.ApplicationStatusPending, app.Status)
	assert.Nil(t, app.QuizScore)
	assert.Nil(t, app.QuizPassed)
	assert.Empty(t, app.QuizResults)
	assert.True(t, app.QuizFieldsConsistent())
	assert.Nil(t, outcome.CorrectCount)
	assert.NotEmpty(t, outcome.Message)
}

func TestApplyToJobQuizPassed(t *testing.T) {
	svc, m := newApplicationService()

	m.applicationRepo.On("ExistsByJobAndApplicant", uint(10), uint(1)).Return(false, nil)
	m.jobRepo.On("GetByID", uint(10)).Return(&entity.Job{ID: 10, Title: "Go Developer", CategoryID: 3}, nil)
	m.questionRepo.On("CountByCategory", uint(3)).Return(int64(25), nil)
	m.applicationRepo.On("Create", mock.AnythingOfType("*entity.Application")).Return(nil)
	expectNotification(m, 1)

	// 16 из 20 - ровно на пороге прохождения
	outcome, err := svc.ApplyToJob(context.Background(), 1, 10, intPtr(80), quizResults(16, 4))
	require.NoError(t, err)

	app := outcome.Application
	assert.Equal(t, entity.ApplicationStatusPending, app.Status)
	require.NotNil(t, app.QuizScore)
	assert.Equal(t, 80, *app.QuizScore)
	require.NotNil(t, app.QuizPassed)
	assert.True(t, *app.QuizPassed)
	require.NotNil(t, outcome.CorrectCount)
	assert.Equal(t, 16, *outcome.CorrectCount)
}

func TestApplyToJobQuizFailed(t *testing.T) {
	svc, m := newApplicationService()

	m.applicationRepo.On("ExistsByJobAndApplicant", uint(10), uint(1)).Return(false, nil)
	m.jobRepo.On("GetByID", uint(10)).Return(&entity.Job{ID: 10, Title: "Go Developer", CategoryID: 3}, nil)
	m.questionRepo.On("CountByCategory", uint(3)).Return(int64(25), nil)
	m.applicationRepo.On("Create", mock.AnythingOfType("*entity.Application")).Return(nil)
	expectNotification(m, 1)

	// Провал квиза - не ошибка: отклик создается со статусом rejected
	outcome, err := svc.ApplyToJob(context.Background(), 1, 10, intPtr(50), quizResults(10, 10))
	require.NoError(t, err)

	app := outcome.Application
	assert.Equal(t, entity.ApplicationStatusRejected, app.Status)
	require.NotNil(t, app.QuizPassed)
	assert.False(t, *app.QuizPassed)
	require.NotNil(t, outcome.CorrectCount)
	assert.Equal(t, 10, *outcome.CorrectCount)
}

func TestApplyToJobDuplicate(t *testing.T) {
	svc, m := newApplicationService()

	m.applicationRepo.On("ExistsByJobAndApplicant", uint(10), uint(1)).Return(true, nil)

	_, err := svc.ApplyToJob(context.Background(), 1, 10, nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)
	m.applicationRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestApplyToJobJobNotFound(t *testing.T) {
	svc, m := newApplicationService()

	m.applicationRepo.On("ExistsByJobAndApplicant", uint(99), uint(1)).Return(false, nil)
	m.jobRepo.On("GetByID", uint(99)).Return(nil, apperrors.ErrNotFound)

	_, err := svc.ApplyToJob(context.Background(), 1, 99, nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestApplyToJobQuizRequired(t *testing.T) {
	svc, m := newApplicationService()

	m.applicationRepo.On("ExistsByJobAndApplicant", uint(10), uint(1)).Return(false, nil)
	m.jobRepo.On("GetByID", uint(10)).Return(&entity.Job{ID: 10, CategoryID: 3}, nil)
	m.questionRepo.On("CountByCategory", uint(3)).Return(int64(25), nil)

	tests := []struct {
		name    string
		score   *int
		results []entity.QuizResultEntry
	}{
		{name: "no quiz data at all", score: nil, results: nil},
		{name: "score without results", score: intPtr(80), results: nil},
		{name: "results without score", score: nil, results: quizResults(16, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ApplyToJob(context.Background(), 1, 10, tt.score, tt.results)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
	m.applicationRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestApplyToJobScoreOutOfRange(t *testing.T) {
	svc, m := newApplicationService()

	m.applicationRepo.On("ExistsByJobAndApplicant", uint(10), uint(1)).Return(false, nil)
	m.jobRepo.On("GetByID", uint(10)).Return(&entity.Job{ID: 10, CategoryID: 3}, nil)
	m.questionRepo.On("CountByCategory", uint(3)).Return(int64(25), nil)

	_, err := svc.ApplyToJob(context.Background(), 1, 10, intPtr(101), quizResults(16, 4))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestApplyToJobCreateRace(t *testing.T) {
	svc, m := newApplicationService()

	// Проверка дубликата прошла, но параллельный отклик успел первым:
	// уникальный индекс возвращает ErrAlreadyApplied из репозитория
	m.applicationRepo.On("ExistsByJobAndApplicant", uint(10), uint(1)).Return(false, nil)
	m.jobRepo.On("GetByID", uint(10)).Return(&entity.Job{ID: 10, CategoryID: 3}, nil)
	m.questionRepo.On("CountByCategory", uint(3)).Return(int64(0), nil)
	m.applicationRepo.On("Create", mock.AnythingOfType("*entity.Application")).
		Return(apperrors.ErrAlreadyApplied)

	_, err := svc.ApplyToJob(context.Background(), 1, 10, nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)
}

func TestApplyToJobEmailFailureDoesNotFail(t *testing.T) {
	svc, m := newApplicationService()

	m.applicationRepo.On("ExistsByJobAndApplicant", uint(10), uint(1)).Return(false, nil)
	m.jobRepo.On("GetByID", uint(10)).Return(&entity.Job{ID: 10, Title: "Designer", CategoryID: 3}, nil)
	m.questionRepo.On("CountByCategory", uint(3)).Return(int64(0), nil)
	m.applicationRepo.On("Create", mock.AnythingOfType("*entity.Application")).Return(nil)
	m.userRepo.On("GetByID", uint(1)).Return(&entity.User{ID: 1, Email: "a@test.com"}, nil)
	m.emailService.On("SendApplicationOutcome", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp down"))

	_, err := svc.ApplyToJob(context.Background(), 1, 10, nil, nil)
	assert.NoError(t, err)
}

func TestGetJobApplicationsForbiddenForOtherRecruiter(t *testing.T) {
	svc, m := newApplicationService()

	m.jobRepo.On("GetByID", uint(10)).Return(&entity.Job{ID: 10, RecruiterID: 5}, nil)

	_, err := svc.GetJobApplications(10, 6)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	m.applicationRepo.AssertNotCalled(t, "GetByJobID", mock.Anything)
}

func TestGetJobApplicationsOwner(t *testing.T) {
	svc, m := newApplicationService()

	m.jobRepo.On("GetByID", uint(10)).Return(&entity.Job{ID: 10, RecruiterID: 5}, nil)
	m.applicationRepo.On("GetByJobID", uint(10)).Return([]entity.Application{{ID: 1, JobID: 10}}, nil)

	apps, err := svc.GetJobApplications(10, 5)
	require.NoError(t, err)
	assert.Len(t, apps, 1)
}

func TestUpdateApplicationStatus(t *testing.T) {
	svc, m := newApplicationService()

	m.applicationRepo.On("GetByID", uint(7)).
		Return(&entity.Application{ID: 7, JobID: 10, ApplicantID: 1, Status: entity.ApplicationStatusPending}, nil)
	m.jobRepo.On("GetByID", uint(10)).Return(&entity.Job{ID: 10, Title: "Go Developer", RecruiterID: 5}, nil)
	m.applicationRepo.On("UpdateStatus", uint(7), entity.ApplicationStatusAccepted).Return(nil)
	expectNotification(m, 1)

	app, err := svc.UpdateApplicationStatus(context.Background(), 7, 5, entity.ApplicationStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationStatusAccepted, app.Status)
}

func TestUpdateApplicationStatusInvalid(t *testing.T) {
	svc, m := newApplicationService()

	_, err := svc.UpdateApplicationStatus(context.Background(), 7, 5, "withdrawn")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	m.applicationRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}

func TestUpdateApplicationStatusForbidden(t *testing.T) {
	svc, m := newApplicationService()

	m.applicationRepo.On("GetByID", uint(7)).
		Return(&entity.Application{ID: 7, JobID: 10, Status: entity.ApplicationStatusPending}, nil)
	m.jobRepo.On("GetByID", uint(10)).Return(&entity.Job{ID: 10, RecruiterID: 5}, nil)

	_, err := svc.UpdateApplicationStatus(context.Background(), 7, 6, entity.ApplicationStatusAccepted)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestApplicantNames(t *testing.T) {
	svc, m := newApplicationService()

	applications := []entity.Application{
		{ID: 1, ApplicantID: 1},
		{ID: 2, ApplicantID: 2},
		{ID: 3, ApplicantID: 1}, // дубликат ID запрашивается один раз
	}
	m.userRepo.On("GetByIDs", []uint{1, 2}).Return([]entity.User{
		{ID: 1, Username: "first"},
		{ID: 2, Username: "second"},
	}, nil)

	byID, err := svc.ApplicantNames(applications)
	require.NoError(t, err)
	require.Len(t, byID, 2)
	assert.Equal(t, "first", byID[1].Username)
	assert.Equal(t, "second", byID[2].Username)
}
