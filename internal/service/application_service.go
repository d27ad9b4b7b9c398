package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/yourusername/jobboard-api/internal/domain/entity"
	"github.com/yourusername/jobboard-api/internal/domain/repository"
	apperrors "github.com/yourusername/jobboard-api/internal/pkg/errors"
	"github.com/yourusername/jobboard-api/internal/service/quizengine"
)

// ApplicationService реализует workflow отклика на вакансию с квиз-гейтингом.
// Сервис не перепроверяет ответы квиза - подсчет правильных делается по
// доверенным quiz_results, посчитанным движком проверки до этого вызова.
type ApplicationService struct {
	applicationRepo repository.ApplicationRepository
	jobRepo         repository.JobRepository
	questionRepo    repository.QuestionRepository
	userRepo        repository.UserRepository
	emailService    EmailService
	quizConfig      *quizengine.Config
}

// NewApplicationService создает новый сервис откликов
func NewApplicationService(
	applicationRepo repository.ApplicationRepository,
	jobRepo repository.JobRepository,
	questionRepo repository.QuestionRepository,
	userRepo repository.UserRepository,
	emailService EmailService,
	quizConfig *quizengine.Config,
) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		questionRepo:    questionRepo,
		userRepo:        userRepo,
		emailService:    emailService,
		quizConfig:      quizConfig,
	}
}

// ApplyOutcome описывает исход отклика для клиента
type ApplyOutcome struct {
	Application  *entity.Application
	Message      string
	CorrectCount *int // nil, когда квиза не было
}

// ApplyToJob создает отклик на вакансию. Порядок шагов строгий:
// дубликат -> вакансия -> наличие квиза -> валидация результатов -> статус.
// Провал квиза - не ошибка запроса, а успешный отклик со статусом rejected.
func (s *ApplicationService) ApplyToJob(ctx context.Context, applicantID, jobID uint, quizScore *int, quizResults []entity.QuizResultEntry) (*ApplyOutcome, error) {
	// 1. Дубликаты запрещены. Проверка здесь - быстрый дружелюбный путь,
	// саму гонку закрывает уникальный индекс при создании.
	exists, err := s.applicationRepo.ExistsByJobAndApplicant(jobID, applicantID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing application: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("you have already applied to this job: %w", apperrors.ErrAlreadyApplied)
	}

	// 2. Вакансия должна существовать
	job, err := s.jobRepo.GetByID(jobID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("job %d not found: %w", jobID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load job %d: %w", jobID, err)
	}

	// 3. Есть ли у категории вакансии вопросы квиза
	questionCount, err := s.questionRepo.CountByCategory(job.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to count questions for category %d: %w", job.CategoryID, err)
	}
	questionsExist := questionCount > 0

	application := &entity.Application{
		JobID:       jobID,
		ApplicantID: applicantID,
		QuizResults: entity.QuizResultList{},
	}
	var message string
	var correctCount *int

	if questionsExist {
		// 4. Категория с квизом: результаты обязательны
		if quizScore == nil || len(quizResults) == 0 {
			return nil, fmt.Errorf("quiz results required: %w", apperrors.ErrValidation)
		}
		if *quizScore < 0 || *quizScore > 100 {
			return nil, fmt.Errorf("quiz score %d is out of range [0, 100]: %w", *quizScore, apperrors.ErrValidation)
		}

		correct := 0
		for _, r := range quizResults {
			if r.IsCorrect {
				correct++
			}
		}
		passed := correct >= s.quizConfig.PassThreshold

		application.QuizScore = quizScore
		application.QuizPassed = &passed
		application.QuizResults = entity.QuizResultList(quizResults)
		correctCount = &correct

		if passed {
			application.Status = entity.ApplicationStatusPending
			message = fmt.Sprintf("Quiz passed (%d correct). Application forwarded to the recruiter.", correct)
		} else {
			application.Status = entity.ApplicationStatusRejected
			message = fmt.Sprintf("Quiz failed (%d of %d correct). Application rejected.", correct, len(quizResults))
		}
	} else {
		// 5. Без квиза: отклик сразу уходит рекрутеру
		application.Status = entity.ApplicationStatusPending
		message = "Application submitted and is awaiting recruiter review."
	}

	// 6. Атомарное сохранение отклика и счетчика вакансии (транзакция в репозитории)
	if err := s.applicationRepo.Create(application); err != nil {
		return nil, err
	}

	// 7. Уведомление соискателя - best-effort, исход отклика уже зафиксирован
	s.notifyOutcome(ctx, application, job)

	return &ApplyOutcome{
		Application:  application,
		Message:      message,
		CorrectCount: correctCount,
	}, nil
}

// GetMyApplications возвращает отклики соискателя
func (s *ApplicationService) GetMyApplications(applicantID uint) ([]entity.Application, error) {
	return s.applicationRepo.GetByApplicantID(applicantID)
}

// GetJobApplications возвращает отклики на вакансию для её рекрутера
func (s *ApplicationService) GetJobApplications(jobID, recruiterID uint) ([]entity.Application, error) {
	job, err := s.jobRepo.GetByID(jobID)
	if err != nil {
		return nil, err
	}
	if job.RecruiterID != recruiterID {
		return nil, fmt.Errorf("job %d belongs to another recruiter: %w", jobID, apperrors.ErrForbidden)
	}
	return s.applicationRepo.GetByJobID(jobID)
}

// UpdateApplicationStatus меняет статус отклика решением рекрутера
// и уведомляет соискателя
func (s *ApplicationService) UpdateApplicationStatus(ctx context.Context, applicationID, recruiterID uint, status string) (*entity.Application, error) {
	if !entity.IsValidApplicationStatus(status) {
		return nil, fmt.Errorf("invalid application status %q: %w", status, apperrors.ErrValidation)
	}

	application, err := s.applicationRepo.GetByID(applicationID)
	if err != nil {
		return nil, err
	}

	job, err := s.jobRepo.GetByID(application.JobID)
	if err != nil {
		return nil, err
	}
	if job.RecruiterID != recruiterID {
		return nil, fmt.Errorf("application %d belongs to another recruiter's job: %w",
			applicationID, apperrors.ErrForbidden)
	}

	if err := s.applicationRepo.UpdateStatus(applicationID, status); err != nil {
		return nil, err
	}
	application.Status = status

	s.notifyOutcome(ctx, application, job)

	return application, nil
}

// ApplicantNames возвращает отображаемые имена и email соискателей по откликам
func (s *ApplicationService) ApplicantNames(applications []entity.Application) (map[uint]*entity.User, error) {
	ids := make([]uint, 0, len(applications))
	seen := make(map[uint]bool, len(applications))
	for _, a := range applications {
		if !seen[a.ApplicantID] {
			seen[a.ApplicantID] = true
			ids = append(ids, a.ApplicantID)
		}
	}

	users, err := s.userRepo.GetByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load applicants: %w", err)
	}

	byID := make(map[uint]*entity.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	return byID, nil
}

// notifyOutcome отправляет соискателю письмо об исходе отклика.
// Ошибки отправки логируются и не влияют на результат операции.
func (s *ApplicationService) notifyOutcome(ctx context.Context, application *entity.Application, job *entity.Job) {
	if s.emailService == nil {
		return
	}

	applicant, err := s.userRepo.GetByID(application.ApplicantID)
	if err != nil {
		log.Printf("[ApplicationService] Не удалось загрузить соискателя %d для уведомления: %v",
			application.ApplicantID, err)
		return
	}

	var correctCount *int
	if application.HasQuiz() {
		c := application.CorrectCount()
		correctCount = &c
	}

	if err := s.emailService.SendApplicationOutcome(ctx, applicant.Email, job.Title, application.Status, correctCount); err != nil {
		log.Printf("[ApplicationService] Ошибка отправки уведомления по отклику %d: %v", application.ID, err)
	}
}
