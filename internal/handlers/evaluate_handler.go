package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/virajhegde24/Code4Edtech-Project/internal/models"
	"github.com/virajhegde24/Code4Edtech-Project/internal/repositories"
	"github.com/virajhegde24/Code4Edtech-Project/internal/services"
)

type EvaluationHandler struct {
	evaluator      services.EvaluatorService
	jobRepo        repositories.JobRepository
	worker         services.Worker
	storageService services.StorageService
	textExtractor  services.TextExtractorService
	maxFileSize    int64
}

func NewEvaluationHandler(
	evaluator services.EvaluatorService,
	jobRepo repositories.JobRepository,
	worker services.Worker,
	storageService services.StorageService,
	textExtractor services.TextExtractorService,
	maxFileSize int64,
) *EvaluationHandler {
	return &EvaluationHandler{
		evaluator:      evaluator,
		jobRepo:        jobRepo,
		worker:         worker,
		storageService: storageService,
		textExtractor:  textExtractor,
		maxFileSize:    maxFileSize,
	}
}

// HandleEvaluate handles POST /evaluate. Accepts a multipart form with
// student_id, job_id and a resume file, or a JSON body with resume_text.
// Evaluation is synchronous; the persisted result row comes back in the
// response. An unknown job_id yields 404 and writes nothing.
func (h *EvaluationHandler) HandleEvaluate(c *fiber.Ctx) error {
	studentID, jobID, resumeText, status, err := h.evaluationInput(c, true)
	if err != nil {
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	result, err := h.evaluator.Evaluate(c.UserContext(), studentID, jobID, resumeText)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.NewResultResponse(result))
}

// HandleEvaluateBatch handles POST /evaluate/batch. Evaluates one resume
// against every stored job through the worker pool. Each evaluation appends
// its own result row; poll GET /results for the outcome.
func (h *EvaluationHandler) HandleEvaluateBatch(c *fiber.Ctx) error {
	studentID, _, resumeText, status, err := h.evaluationInput(c, false)
	if err != nil {
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	jobIDs, err := h.jobRepo.ListIDs(c.UserContext())
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": "failed to list jobs",
		})
	}
	if len(jobIDs) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no job descriptions stored",
		})
	}

	enqueued := make([]string, 0, len(jobIDs))
	for _, jobID := range jobIDs {
		if h.worker.Enqueue(services.BatchRequest{
			StudentID:  studentID,
			JobID:      jobID,
			ResumeText: resumeText,
		}) {
			enqueued = append(enqueued, jobID)
		}
	}

	return c.Status(fiber.StatusAccepted).JSON(models.BatchEvaluateResponse{
		StudentID: studentID,
		Enqueued:  len(enqueued),
		JobIDs:    enqueued,
	})
}

// evaluationInput pulls student_id, job_id (when required) and the resume
// text out of the request, saving and extracting an uploaded file when one
// is present.
func (h *EvaluationHandler) evaluationInput(c *fiber.Ctx, requireJobID bool) (studentID, jobID, resumeText string, status int, err error) {
	if file, ferr := c.FormFile("file"); ferr == nil {
		studentID = strings.TrimSpace(c.FormValue("student_id"))
		jobID = strings.TrimSpace(c.FormValue("job_id"))

		if studentID == "" {
			return "", "", "", fiber.StatusBadRequest, fmt.Errorf("student_id is required")
		}
		if requireJobID && jobID == "" {
			return "", "", "", fiber.StatusBadRequest, fmt.Errorf("job_id is required")
		}
		if file.Size > h.maxFileSize {
			return "", "", "", fiber.StatusBadRequest, fmt.Errorf("resume file too large. Max size: %d bytes", h.maxFileSize)
		}

		filename, filePath, serr := h.storageService.SaveFile(file, "resume")
		if serr != nil {
			return "", "", "", fiber.StatusBadRequest, fmt.Errorf("failed to save resume: %v", serr)
		}

		text, xerr := h.textExtractor.ExtractText(filePath)
		if xerr != nil {
			h.storageService.DeleteFile(filename)
			return "", "", "", fiber.StatusUnprocessableEntity, fmt.Errorf("failed to extract resume text: %v", xerr)
		}
		return studentID, jobID, text, 0, nil
	}

	var req models.EvaluateRequest
	if err := c.BodyParser(&req); err != nil {
		return "", "", "", fiber.StatusBadRequest, fmt.Errorf("invalid request payload")
	}
	req.StudentID = strings.TrimSpace(req.StudentID)
	req.JobID = strings.TrimSpace(req.JobID)

	if req.StudentID == "" {
		return "", "", "", fiber.StatusBadRequest, fmt.Errorf("student_id is required")
	}
	if requireJobID && req.JobID == "" {
		return "", "", "", fiber.StatusBadRequest, fmt.Errorf("job_id is required")
	}
	return req.StudentID, req.JobID, req.ResumeText, 0, nil
}

// statusForError maps store and input errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, repositories.ErrJobNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrInputDecoding):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, repositories.ErrIntegrityViolation):
		return fiber.StatusConflict
	case errors.Is(err, repositories.ErrStoreUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
