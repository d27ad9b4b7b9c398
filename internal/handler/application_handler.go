package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/jobboard-api/internal/domain/entity"
	"github.com/yourusername/jobboard-api/internal/handler/dto"
	apperrors "github.com/yourusername/jobboard-api/internal/pkg/errors"
	"github.com/yourusername/jobboard-api/internal/service"
)

// ApplicationHandler обрабатывает отклики на вакансии
type ApplicationHandler struct {
	applicationService *service.ApplicationService
}

// NewApplicationHandler создает новый обработчик откликов
func NewApplicationHandler(applicationService *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

// Apply создает отклик на вакансию.
// POST /api/jobs/:id/apply
// Для категорий с квизом обязательны quiz_score и quiz_results.
// Провал квиза возвращает 201 со статусом rejected - отклик создан.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	jobID := c.MustGet("jobID").(uint)
	applicantID := c.MustGet("user_id").(uint)

	var req dto.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.applicationService.ApplyToJob(c.Request.Context(), applicantID, jobID, req.QuizScore, req.Entries())
	if err != nil {
		h.handleApplicationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewApplyResponse(outcome))
}

// ListMyApplications возвращает отклики текущего соискателя.
// GET /api/applications/my
func (h *ApplicationHandler) ListMyApplications(c *gin.Context) {
	applicantID := c.MustGet("user_id").(uint)

	applications, err := h.applicationService.GetMyApplications(applicantID)
	if err != nil {
		h.handleApplicationError(c, err)
		return
	}

	out := make([]*dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		out = append(out, dto.NewApplicationResponse(&applications[i]))
	}
	c.JSON(http.StatusOK, gin.H{"applications": out, "total": len(out)})
}

// ListJobApplications возвращает отклики на вакансию её рекрутеру.
// GET /api/jobs/:id/applications
func (h *ApplicationHandler) ListJobApplications(c *gin.Context) {
	jobID := c.MustGet("jobID").(uint)
	recruiterID := c.MustGet("user_id").(uint)

	applications, err := h.applicationService.GetJobApplications(jobID, recruiterID)
	if err != nil {
		h.handleApplicationError(c, err)
		return
	}

	out := make([]*dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		out = append(out, dto.NewApplicationResponse(&applications[i]))
	}
	c.JSON(http.StatusOK, gin.H{"applications": out, "total": len(out)})
}

// UpdateStatus меняет статус отклика решением рекрутера.
// PUT /api/applications/:id/status
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	applicationID := c.MustGet("applicationID").(uint)
	recruiterID := c.MustGet("user_id").(uint)

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	application, err := h.applicationService.UpdateApplicationStatus(c.Request.Context(), applicationID, recruiterID, req.Status)
	if err != nil {
		h.handleApplicationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewApplicationResponse(application))
}

// ExportApplications экспортирует отклики на вакансию в CSV или Excel.
// GET /api/jobs/:id/applications/export?format=csv|xlsx
func (h *ApplicationHandler) ExportApplications(c *gin.Context) {
	jobID := c.MustGet("jobID").(uint)
	recruiterID := c.MustGet("user_id").(uint)
	format := c.DefaultQuery("format", "csv")

	applications, err := h.applicationService.GetJobApplications(jobID, recruiterID)
	if err != nil {
		h.handleApplicationError(c, err)
		return
	}

	applicants, err := h.applicationService.ApplicantNames(applications)
	if err != nil {
		h.handleApplicationError(c, err)
		return
	}

	filename := fmt.Sprintf("job_%d_applications_%s", jobID, time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, applications, applicants, filename)
	default:
		h.exportCSV(c, applications, applicants, filename)
	}
}

// exportCSV экспортирует отклики в CSV с правильным экранированием спецсимволов
func (h *ApplicationHandler) exportCSV(c *gin.Context, applications []entity.Application, applicants map[uint]*entity.User, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"Соискатель", "Email", "Статус", "Балл квиза", "Квиз пройден", "Правильных", "Дата отклика"})

	for i := range applications {
		writer.Write(exportRowStrings(&applications[i], applicants))
	}
}

// exportXLSX экспортирует отклики в Excel с использованием StreamWriter
func (h *ApplicationHandler) exportXLSX(c *gin.Context, applications []entity.Application, applicants map[uint]*entity.User, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Отклики"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[ApplicationHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := []interface{}{"Соискатель", "Email", "Статус", "Балл квиза", "Квиз пройден", "Правильных", "Дата отклика"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[ApplicationHandler] Ошибка записи заголовков: %v", err)
	}

	for i := range applications {
		rowNum := i + 2 // Первая строка - заголовки
		cell := fmt.Sprintf("A%d", rowNum)

		strs := exportRowStrings(&applications[i], applicants)
		row := make([]interface{}, len(strs))
		for j, s := range strs {
			row[j] = s
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[ApplicationHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[ApplicationHandler] Ошибка при Flush: %v", err)
	}

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[ApplicationHandler] Ошибка записи Excel в response: %v", err)
	}
}

// exportRowStrings собирает строку экспорта по отклику
func exportRowStrings(a *entity.Application, applicants map[uint]*entity.User) []string {
	name := fmt.Sprintf("user#%d", a.ApplicantID)
	email := ""
	if u, ok := applicants[a.ApplicantID]; ok {
		name = u.FullName()
		email = u.Email
	}

	score := ""
	if a.QuizScore != nil {
		score = strconv.Itoa(*a.QuizScore)
	}
	passed := ""
	if a.QuizPassed != nil {
		passed = "Нет"
		if *a.QuizPassed {
			passed = "Да"
		}
	}
	correct := ""
	if a.HasQuiz() {
		correct = strconv.Itoa(a.CorrectCount())
	}

	return []string{
		sanitizeForExcel(name),
		sanitizeForExcel(email),
		a.Status,
		score,
		passed,
		correct,
		a.CreatedAt.Format("2006-01-02 15:04"),
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}

func (h *ApplicationHandler) handleApplicationError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrAlreadyApplied) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in ApplicationHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
