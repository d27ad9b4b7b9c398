package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestApplicationQuizFieldsConsistent(t *testing.T) {
	tests := []struct {
		name string
		app  Application
		want bool
	}{
		{
			name: "both nil",
			app:  Application{},
			want: true,
		},
		{
			name: "both set",
			app:  Application{QuizScore: intPtr(80), QuizPassed: boolPtr(true)},
			want: true,
		},
		{
			name: "score without passed",
			app:  Application{QuizScore: intPtr(80)},
			want: false,
		},
		{
			name: "passed without score",
			app:  Application{QuizPassed: boolPtr(false)},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.app.QuizFieldsConsistent())
		})
	}
}

func TestApplicationHasQuiz(t *testing.T) {
	assert.False(t, (&Application{}).HasQuiz())
	assert.True(t, (&Application{QuizScore: intPtr(0), QuizPassed: boolPtr(false)}).HasQuiz())
}

func TestApplicationCorrectCount(t *testing.T) {
	app := Application{
		QuizResults: QuizResultList{
			{QuestionID: 1, SelectedAnswer: 0, IsCorrect: true},
			{QuestionID: 2, SelectedAnswer: -1, IsCorrect: false},
			{QuestionID: 3, SelectedAnswer: 2, IsCorrect: true},
		},
	}
	assert.Equal(t, 2, app.CorrectCount())
	assert.Equal(t, 0, (&Application{}).CorrectCount())
}

func TestIsValidApplicationStatus(t *testing.T) {
	assert.True(t, IsValidApplicationStatus(ApplicationStatusPending))
	assert.True(t, IsValidApplicationStatus(ApplicationStatusAccepted))
	assert.True(t, IsValidApplicationStatus(ApplicationStatusRejected))
	assert.False(t, IsValidApplicationStatus("withdrawn"))
	assert.False(t, IsValidApplicationStatus(""))
}
