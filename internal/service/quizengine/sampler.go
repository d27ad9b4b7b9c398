package quizengine

import (
	"math/rand"
	"sync"
	"time"
)

// Sampler изолирует источник случайности подбора вопросов,
// чтобы в тестах его можно было заменить детерминированной реализацией.
type Sampler interface {
	// Shuffle перемешивает n элементов через функцию обмена,
	// по контракту math/rand.Shuffle
	Shuffle(n int, swap func(i, j int))
}

// randSampler - реализация Sampler на math/rand.
// Собственный *rand.Rand под мьютексом: движок вызывается из
// параллельных HTTP-запросов.
type randSampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler создает Sampler со случайным зерном
func NewSampler() Sampler {
	return &randSampler{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededSampler создает детерминированный Sampler для тестов
func NewSeededSampler(seed int64) Sampler {
	return &randSampler{rng: rand.New(rand.NewSource(seed))}
}

func (s *randSampler) Shuffle(n int, swap func(i, j int)) {
	if n < 2 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(n, swap)
}
