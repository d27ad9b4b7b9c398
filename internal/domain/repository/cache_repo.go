package repository

import "time"

// CacheRepository определяет методы для работы с кешем (Redis).
// Используется движком квизов для блокировок подбора вопросов
// и счетчиков статистики по вопросам.
type CacheRepository interface {
	Get(key string) (string, error)
	Delete(key string) error
	Increment(key string) (int64, error)
	// SetNX устанавливает значение ключа, только если ключ не существует.
	// Возвращает true, если ключ был установлен, false - если ключ уже существовал.
	SetNX(key string, value interface{}, expiration time.Duration) (bool, error)
}
