package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryAppendAsked(t *testing.T) {
	h := UserQuestionHistory{UserID: 1, CategoryID: 2}
	now := time.Now()

	h.AppendAsked([]uint{10, 11}, now)
	assert.Len(t, h.AskedQuestions, 2)
	assert.True(t, h.HasAsked(10))
	assert.True(t, h.HasAsked(11))
	assert.False(t, h.HasAsked(12))

	// Повторное добавление того же вопроса не создает дубль
	h.AppendAsked([]uint{10, 12}, now.Add(time.Minute))
	assert.Len(t, h.AskedQuestions, 3)

	at, ok := h.LastAskedAt(10)
	require.True(t, ok)
	assert.Equal(t, now.Unix(), at.Unix())
}

func TestHistoryLastAskedAtMissing(t *testing.T) {
	h := UserQuestionHistory{}

	_, ok := h.LastAskedAt(99)
	assert.False(t, ok)
}

func TestHistoryReset(t *testing.T) {
	h := UserQuestionHistory{TotalAttempts: 7}
	h.AppendAsked([]uint{1, 2, 3}, time.Now())

	resetAt := time.Now()
	h.Reset(resetAt)

	assert.Empty(t, h.AskedQuestions)
	require.NotNil(t, h.LastResetAt)
	assert.Equal(t, resetAt, *h.LastResetAt)
	// Счетчик попыток переживает сброс цикла
	assert.Equal(t, 7, h.TotalAttempts)
	assert.False(t, h.HasAsked(1))
}

func TestAskedQuestionListScanValue(t *testing.T) {
	asked := AskedQuestionList{{QuestionID: 5, AskedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}}

	v, err := asked.Value()
	require.NoError(t, err)

	var decoded AskedQuestionList
	require.NoError(t, decoded.Scan(v))
	require.Len(t, decoded, 1)
	assert.Equal(t, uint(5), decoded[0].QuestionID)
	assert.True(t, decoded[0].AskedAt.Equal(asked[0].AskedAt))

	var empty AskedQuestionList
	require.NoError(t, empty.Scan(nil))
	assert.Empty(t, empty)
}
