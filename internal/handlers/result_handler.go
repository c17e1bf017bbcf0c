package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/virajhegde24/Code4Edtech-Project/internal/models"
	"github.com/virajhegde24/Code4Edtech-Project/internal/repositories"
)

type ResultHandler struct {
	resultRepo repositories.ResultRepository
}

func NewResultHandler(resultRepo repositories.ResultRepository) *ResultHandler {
	return &ResultHandler{
		resultRepo: resultRepo,
	}
}

// HandleListResults handles GET /results. Filters by student_id and/or
// job_id, newest first. With sort=score the rows come back best score first,
// which ranks candidates when combined with a job_id filter. With latest=true
// and both ids set, returns only the most recent row for the pair.
func (h *ResultHandler) HandleListResults(c *fiber.Ctx) error {
	studentID := c.Query("student_id")
	jobID := c.Query("job_id")

	sort := c.Query("sort")
	if sort != "" && sort != "score" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unsupported sort value, only 'score' is accepted",
		})
	}

	if c.QueryBool("latest") {
		if studentID == "" || jobID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "latest=true requires both student_id and job_id",
			})
		}

		result, err := h.resultRepo.Latest(c.UserContext(), studentID, jobID)
		if err != nil {
			if errors.Is(err, repositories.ErrNoResults) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "no results for this student and job",
				})
			}
			return c.Status(statusForError(err)).JSON(fiber.Map{
				"error": "failed to query results",
			})
		}

		return c.JSON(models.NewResultResponse(result))
	}

	results, err := h.resultRepo.Query(c.UserContext(), repositories.ResultFilter{
		StudentID:   studentID,
		JobID:       jobID,
		Limit:       c.QueryInt("limit"),
		RankByScore: sort == "score",
	})
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": "failed to query results",
		})
	}

	responses := make([]models.ResultResponse, 0, len(results))
	for i := range results {
		responses = append(responses, models.NewResultResponse(&results[i]))
	}

	return c.JSON(fiber.Map{
		"results": responses,
		"count":   len(responses),
	})
}
