package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/virajhegde24/Code4Edtech-Project/internal/models"
	"github.com/virajhegde24/Code4Edtech-Project/internal/repositories"
)

type fakeResultRepo struct {
	rows []models.Result
}

func (f *fakeResultRepo) Append(_ context.Context, result *models.Result) error {
	result.ID = int64(len(f.rows) + 1)
	f.rows = append(f.rows, *result)
	return nil
}

func (f *fakeResultRepo) Query(_ context.Context, filter repositories.ResultFilter) ([]models.Result, error) {
	var out []models.Result
	for i := len(f.rows) - 1; i >= 0; i-- {
		row := f.rows[i]
		if filter.StudentID != "" && row.StudentID != filter.StudentID {
			continue
		}
		if filter.JobID != "" && row.JobID != filter.JobID {
			continue
		}
		out = append(out, row)
	}
	if filter.RankByScore {
		sort.SliceStable(out, func(i, j int) bool {
			si, sj := out[i].Score, out[j].Score
			if si == nil {
				return false
			}
			if sj == nil {
				return true
			}
			return *si > *sj
		})
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (f *fakeResultRepo) Latest(ctx context.Context, studentID, jobID string) (*models.Result, error) {
	rows, err := f.Query(ctx, repositories.ResultFilter{StudentID: studentID, JobID: jobID, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, repositories.ErrNoResults
	}
	return &rows[0], nil
}

func newResultApp(repo repositories.ResultRepository) *fiber.App {
	app := fiber.New()
	app.Get("/results", NewResultHandler(repo).HandleListResults)
	return app
}

func seededResultRepo() *fakeResultRepo {
	repo := &fakeResultRepo{}
	score1, score2 := 40, 80
	repo.rows = []models.Result{
		{ID: 1, StudentID: "s1", JobID: "j1", Score: &score1, Verdict: models.VerdictPartialMatch, MissingSkills: `["sql"]`, Timestamp: time.Now().Add(-time.Hour)},
		{ID: 2, StudentID: "s1", JobID: "j1", Score: &score2, Verdict: models.VerdictStrongMatch, MissingSkills: `[]`, Timestamp: time.Now()},
		{ID: 3, StudentID: "s2", JobID: "j1", Score: &score1, Verdict: models.VerdictPartialMatch, MissingSkills: `["docker"]`, Timestamp: time.Now()},
	}
	return repo
}

func TestHandleListResults(t *testing.T) {
	t.Parallel()

	t.Run("filters by student", func(t *testing.T) {
		t.Parallel()

		app := newResultApp(seededResultRepo())
		resp, err := app.Test(httptest.NewRequest("GET", "/results?student_id=s1", nil))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}

		var body struct {
			Results []models.ResultResponse `json:"results"`
			Count   int                     `json:"count"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Count != 2 {
			t.Fatalf("expected 2 results, got %d", body.Count)
		}
		// Newest first.
		if body.Results[0].ID != 2 || body.Results[1].ID != 1 {
			t.Fatalf("expected ids [2 1], got [%d %d]", body.Results[0].ID, body.Results[1].ID)
		}
	})

	t.Run("sort=score ranks candidates for a job", func(t *testing.T) {
		t.Parallel()

		app := newResultApp(seededResultRepo())
		resp, err := app.Test(httptest.NewRequest("GET", "/results?job_id=j1&sort=score", nil))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}

		var body struct {
			Results []models.ResultResponse `json:"results"`
			Count   int                     `json:"count"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Count != 3 {
			t.Fatalf("expected 3 results, got %d", body.Count)
		}
		// Best score first, newest first among ties.
		if body.Results[0].ID != 2 || body.Results[1].ID != 3 || body.Results[2].ID != 1 {
			t.Fatalf("expected ids [2 3 1], got [%d %d %d]",
				body.Results[0].ID, body.Results[1].ID, body.Results[2].ID)
		}
	})

	t.Run("unknown sort value is rejected", func(t *testing.T) {
		t.Parallel()

		app := newResultApp(seededResultRepo())
		resp, err := app.Test(httptest.NewRequest("GET", "/results?job_id=j1&sort=verdict", nil))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != fiber.StatusBadRequest {
			t.Fatalf("expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("latest returns single newest row", func(t *testing.T) {
		t.Parallel()

		app := newResultApp(seededResultRepo())
		resp, err := app.Test(httptest.NewRequest("GET", "/results?student_id=s1&job_id=j1&latest=true", nil))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}

		var body models.ResultResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.ID != 2 {
			t.Fatalf("expected latest id 2, got %d", body.ID)
		}
	})

	t.Run("latest requires both ids", func(t *testing.T) {
		t.Parallel()

		app := newResultApp(seededResultRepo())
		resp, err := app.Test(httptest.NewRequest("GET", "/results?student_id=s1&latest=true", nil))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != fiber.StatusBadRequest {
			t.Fatalf("expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("latest with no history is 404", func(t *testing.T) {
		t.Parallel()

		app := newResultApp(seededResultRepo())
		resp, err := app.Test(httptest.NewRequest("GET", "/results?student_id=ghost&job_id=j1&latest=true", nil))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != fiber.StatusNotFound {
			t.Fatalf("expected 404, got %d", resp.StatusCode)
		}
	})
}
