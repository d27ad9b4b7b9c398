package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния
	// (например, параллельный подбор вопросов для одной пары пользователь/категория).
	ErrConflict = errors.New("resource state conflict")

	// ErrAlreadyApplied используется, когда отклик на вакансию уже существует.
	// Это пользовательский конфликт, а не внутренняя ошибка.
	ErrAlreadyApplied = errors.New("application already exists")

	// ErrUnauthorized используется для ошибок авторизации (неверный токен, нет прав).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда у пользователя недостаточно прав для действия.
	ErrForbidden = errors.New("forbidden")
)
