package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/jobboard-api/internal/handler/dto"
	apperrors "github.com/yourusername/jobboard-api/internal/pkg/errors"
	"github.com/yourusername/jobboard-api/internal/service/quizengine"
)

// QuizHandler обрабатывает выдачу и проверку квизов
type QuizHandler struct {
	selector *quizengine.QuestionSelector
	scorer   *quizengine.Scorer
}

// NewQuizHandler создает новый обработчик квизов
func NewQuizHandler(selector *quizengine.QuestionSelector, scorer *quizengine.Scorer) *QuizHandler {
	return &QuizHandler{
		selector: selector,
		scorer:   scorer,
	}
}

// GetQuizQuestions выдает подборку вопросов категории.
// GET /api/categories/:id/quiz?count=N
// Анонимы получают случайную выборку; для аутентифицированных действует
// ротация с историей. Ключи ответов в выдачу не попадают.
func (h *QuizHandler) GetQuizQuestions(c *gin.Context) {
	categoryID := c.MustGet("categoryID").(uint)

	count := 0
	if raw := c.Query("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid count parameter"})
			return
		}
		count = parsed
	}

	var userID *uint
	if id, exists := c.Get("user_id"); exists {
		uid := id.(uint)
		userID = &uid
	}

	selection, err := h.selector.SelectQuestions(c.Request.Context(), categoryID, userID, count)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizResponse(selection))
}

// SubmitQuiz проверяет ответы пользователя и возвращает итог с разбором.
// POST /api/quiz/submit
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	var req dto.SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answers := make([]quizengine.AnswerSubmission, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, quizengine.AnswerSubmission{
			QuestionID:     a.QuestionID,
			SelectedAnswer: a.SelectedAnswer,
		})
	}

	result, err := h.scorer.ScoreSubmission(c.Request.Context(), answers)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewScoreResponse(result))
}

func (h *QuizHandler) handleQuizError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in QuizHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
