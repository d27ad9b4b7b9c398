package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/jobboard-api/internal/domain/entity"
	"github.com/yourusername/jobboard-api/internal/handler/dto"
	apperrors "github.com/yourusername/jobboard-api/internal/pkg/errors"
	"github.com/yourusername/jobboard-api/internal/service"
)

// QuestionHandler обрабатывает админские операции над вопросами квиза
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler создает новый обработчик вопросов
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// CreateQuestion создает вопрос в категории.
// POST /api/admin/categories/:id/questions
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	categoryID := c.MustGet("categoryID").(uint)

	var req dto.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question := req.ToEntity(categoryID)
	if err := h.questionService.CreateQuestion(question); err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAdminQuestionResponse(question))
}

// CreateQuestions создает пачку вопросов категории атомарно.
// POST /api/admin/categories/:id/questions/batch
func (h *QuestionHandler) CreateQuestions(c *gin.Context) {
	categoryID := c.MustGet("categoryID").(uint)

	var req dto.BatchCreateQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	questions := make([]*entity.Question, 0, len(req.Questions))
	for i := range req.Questions {
		questions = append(questions, req.Questions[i].ToEntity(categoryID))
	}

	if err := h.questionService.CreateQuestions(categoryID, questions); err != nil {
		h.handleQuestionError(c, err)
		return
	}

	created := make([]entity.Question, 0, len(questions))
	for _, q := range questions {
		created = append(created, *q)
	}
	c.JSON(http.StatusCreated, gin.H{
		"created":   len(created),
		"questions": dto.NewAdminQuestionListResponse(created),
	})
}

// GetCategoryQuestions возвращает все вопросы категории с ключами ответов.
// GET /api/admin/categories/:id/questions
func (h *QuestionHandler) GetCategoryQuestions(c *gin.Context) {
	categoryID := c.MustGet("categoryID").(uint)

	questions, err := h.questionService.GetQuestionsByCategory(categoryID)
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAdminQuestionListResponse(questions))
}

// UpdateQuestion обновляет вопрос.
// PUT /api/admin/questions/:id
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)

	var req dto.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.questionService.UpdateQuestion(questionID, req.Text, req.Options, req.CorrectOption, req.Difficulty)
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAdminQuestionResponse(question))
}

// DeleteQuestion удаляет вопрос.
// DELETE /api/admin/questions/:id
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)

	if err := h.questionService.DeleteQuestion(questionID); err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Question deleted"})
}

// GetQuestionStats возвращает счетчики ответов вопроса.
// GET /api/admin/questions/:id/stats
func (h *QuestionHandler) GetQuestionStats(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)

	stats, err := h.questionService.GetQuestionStats(questionID)
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *QuestionHandler) handleQuestionError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in QuestionHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
