package main

import (
	"errors"
	"log"
	"os"

	"github.com/yourusername/jobboard-api/internal/config"
	"github.com/yourusername/jobboard-api/internal/domain/entity"
	apperrors "github.com/yourusername/jobboard-api/internal/pkg/errors"
	pgRepo "github.com/yourusername/jobboard-api/internal/repository/postgres"
	"github.com/yourusername/jobboard-api/pkg/database"
)

// Сидер наполняет базу демо-данными: пользователи всех ролей,
// категории, вакансии и вопросы квиза. Повторный запуск безопасен.
func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	userRepo := pgRepo.NewUserRepo(db)
	categoryRepo := pgRepo.NewCategoryRepo(db)
	jobRepo := pgRepo.NewJobRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)

	// Пользователи. Пароли хешируются bcrypt-хуком сущности.
	users := []*entity.User{
		{Username: "admin", Email: "admin@example.com", Password: "admin-password-1", Role: entity.RoleAdmin, FirstName: "Админ"},
		{Username: "recruiter", Email: "recruiter@example.com", Password: "recruiter-password-1", Role: entity.RoleRecruiter, FirstName: "Рина", LastName: "Рекрутер"},
		{Username: "applicant", Email: "applicant@example.com", Password: "applicant-password-1", Role: entity.RoleApplicant, FirstName: "Арман", LastName: "Соискатель"},
	}
	var recruiter *entity.User
	recruiterCreated := false
	for _, u := range users {
		existing, err := userRepo.GetByEmail(u.Email)
		if err == nil {
			log.Printf("[Seed] Пользователь %s уже существует, пропускаем", u.Email)
			if existing.Role == entity.RoleRecruiter {
				recruiter = existing
			}
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[Seed] Ошибка проверки пользователя %s: %v", u.Email, err)
			os.Exit(1)
		}
		if err := userRepo.Create(u); err != nil {
			log.Printf("[Seed] Ошибка создания пользователя %s: %v", u.Email, err)
			os.Exit(1)
		}
		log.Printf("[Seed] Создан пользователь %s (%s)", u.Username, u.Role)
		if u.Role == entity.RoleRecruiter {
			recruiter = u
			recruiterCreated = true
		}
	}

	// Категории: одна с квизом, одна без
	categories, err := categoryRepo.GetAll()
	if err != nil {
		log.Printf("[Seed] Ошибка чтения категорий: %v", err)
		os.Exit(1)
	}
	byName := make(map[string]*entity.Category)
	for i := range categories {
		byName[categories[i].Name] = &categories[i]
	}
	for _, c := range []*entity.Category{
		{Name: "Backend Development", Description: "Серверная разработка: Go, базы данных, API"},
		{Name: "Design", Description: "Продуктовый и графический дизайн"},
	} {
		if existing, ok := byName[c.Name]; ok {
			byName[c.Name] = existing
			continue
		}
		if err := categoryRepo.Create(c); err != nil {
			log.Printf("[Seed] Ошибка создания категории %s: %v", c.Name, err)
			os.Exit(1)
		}
		byName[c.Name] = c
		log.Printf("[Seed] Создана категория %s", c.Name)
	}

	backend := byName["Backend Development"]
	design := byName["Design"]

	// Вакансии создаются только вместе с рекрутером, иначе
	// повторный запуск плодил бы дубликаты
	if recruiter != nil && recruiterCreated {
		for _, j := range []*entity.Job{
			{Title: "Go Developer", Description: "Разработка backend-сервисов", CompanyName: "Acme Cloud", Location: "Алматы", CategoryID: backend.ID, RecruiterID: recruiter.ID, IsActive: true},
			{Title: "Product Designer", Description: "Дизайн продуктовых интерфейсов", CompanyName: "Acme Cloud", Location: "Remote", CategoryID: design.ID, RecruiterID: recruiter.ID, IsActive: true},
		} {
			if err := jobRepo.Create(j); err != nil {
				log.Printf("[Seed] Ошибка создания вакансии %s: %v", j.Title, err)
				os.Exit(1)
			}
			log.Printf("[Seed] Создана вакансия %s", j.Title)
		}
	}

	// Вопросы квиза для категории Backend Development
	existingCount, err := questionRepo.CountByCategory(backend.ID)
	if err != nil {
		log.Printf("[Seed] Ошибка подсчета вопросов: %v", err)
		os.Exit(1)
	}
	if existingCount > 0 {
		log.Printf("[Seed] В категории %s уже %d вопросов, пропускаем", backend.Name, existingCount)
		log.Println("[Seed] Готово")
		return
	}

	questions := []*entity.Question{
		{CategoryID: backend.ID, Text: "Какой тип в Go используется для строк?", Options: entity.StringArray{"string", "str", "text", "char[]"}, CorrectOption: 0, Difficulty: entity.DifficultyEasy},
		{CategoryID: backend.ID, Text: "Что возвращает len(nil) для слайса?", Options: entity.StringArray{"panic", "0", "-1", "ошибку компиляции"}, CorrectOption: 1, Difficulty: entity.DifficultyMedium},
		{CategoryID: backend.ID, Text: "Какая команда SQL удаляет все строки таблицы без удаления самой таблицы?", Options: entity.StringArray{"DROP TABLE", "DELETE", "TRUNCATE", "REMOVE"}, CorrectOption: 2, Difficulty: entity.DifficultyMedium},
		{CategoryID: backend.ID, Text: "Какой HTTP-код означает Created?", Options: entity.StringArray{"200", "201", "204", "301"}, CorrectOption: 1, Difficulty: entity.DifficultyEasy},
		{CategoryID: backend.ID, Text: "Что делает defer в Go?", Options: entity.StringArray{"Откладывает вызов до выхода из функции", "Запускает горутину", "Останавливает программу", "Освобождает память"}, CorrectOption: 0, Difficulty: entity.DifficultyEasy},
	}
	if err := questionRepo.CreateBatch(questions); err != nil {
		log.Printf("[Seed] Ошибка создания вопросов: %v", err)
		os.Exit(1)
	}
	log.Printf("[Seed] Создано %d вопросов в категории %s", len(questions), backend.Name)

	log.Println("[Seed] Готово")
}
