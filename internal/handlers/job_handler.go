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

type JobHandler struct {
	jobRepo        repositories.JobRepository
	storageService services.StorageService
	textExtractor  services.TextExtractorService
	evaluator      services.EvaluatorService
	maxFileSize    int64
}

func NewJobHandler(
	jobRepo repositories.JobRepository,
	storageService services.StorageService,
	textExtractor services.TextExtractorService,
	evaluator services.EvaluatorService,
	maxFileSize int64,
) *JobHandler {
	return &JobHandler{
		jobRepo:        jobRepo,
		storageService: storageService,
		textExtractor:  textExtractor,
		evaluator:      evaluator,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpsertJob handles POST /jobs. Accepts either a multipart form with
// job_id and a PDF/TXT file, or a JSON body with job_id and jd_text.
// Re-submitting a job_id overwrites the stored description and drops any
// cached requirement set for it.
func (h *JobHandler) HandleUpsertJob(c *fiber.Ctx) error {
	jobID, jdText, status, err := h.jobFromRequest(c)
	if err != nil {
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	job := &models.JobDescription{
		JobID:  jobID,
		JDText: jdText,
	}
	if err := h.jobRepo.Put(c.UserContext(), job); err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": "failed to store job description",
		})
	}

	// The description may have changed; cached requirements are stale now.
	h.evaluator.InvalidateJob(jobID)

	return c.Status(fiber.StatusCreated).JSON(models.UpsertJobResponse{
		JobID:   jobID,
		Message: "job description stored",
	})
}

// HandleGetJob handles GET /jobs/:job_id.
func (h *JobHandler) HandleGetJob(c *fiber.Ctx) error {
	jobID := c.Params("job_id")

	job, err := h.jobRepo.Get(c.UserContext(), jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "job not found",
			})
		}
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": "failed to fetch job description",
		})
	}

	return c.JSON(fiber.Map{
		"job_id":  job.JobID,
		"jd_text": job.JDText,
	})
}

// HandleListJobs handles GET /jobs.
func (h *JobHandler) HandleListJobs(c *fiber.Ctx) error {
	ids, err := h.jobRepo.ListIDs(c.UserContext())
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": "failed to list jobs",
		})
	}
	if ids == nil {
		ids = []string{}
	}

	return c.JSON(fiber.Map{
		"job_ids": ids,
	})
}

func (h *JobHandler) jobFromRequest(c *fiber.Ctx) (jobID, jdText string, status int, err error) {
	if file, ferr := c.FormFile("file"); ferr == nil {
		jobID = strings.TrimSpace(c.FormValue("job_id"))
		if jobID == "" {
			return "", "", fiber.StatusBadRequest, fmt.Errorf("job_id is required")
		}
		if file.Size > h.maxFileSize {
			return "", "", fiber.StatusBadRequest, fmt.Errorf("file too large. Max size: %d bytes", h.maxFileSize)
		}

		filename, filePath, serr := h.storageService.SaveFile(file, "jd")
		if serr != nil {
			return "", "", fiber.StatusBadRequest, fmt.Errorf("failed to save file: %v", serr)
		}

		text, xerr := h.textExtractor.ExtractText(filePath)
		if xerr != nil {
			h.storageService.DeleteFile(filename)
			return "", "", fiber.StatusUnprocessableEntity, fmt.Errorf("failed to extract text: %v", xerr)
		}
		return jobID, text, 0, nil
	}

	var req models.UpsertJobRequest
	if err := c.BodyParser(&req); err != nil {
		return "", "", fiber.StatusBadRequest, fmt.Errorf("invalid request payload")
	}
	req.JobID = strings.TrimSpace(req.JobID)
	if req.JobID == "" {
		return "", "", fiber.StatusBadRequest, fmt.Errorf("job_id is required")
	}
	if strings.TrimSpace(req.JDText) == "" {
		return "", "", fiber.StatusBadRequest, fmt.Errorf("jd_text is required")
	}
	return req.JobID, req.JDText, 0, nil
}
