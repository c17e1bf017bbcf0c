package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/virajhegde24/Code4Edtech-Project/internal/models"
)

type recordingJobRepo struct {
	fakeJobRepo
	put []models.JobDescription
}

func (r *recordingJobRepo) Put(_ context.Context, job *models.JobDescription) error {
	r.put = append(r.put, *job)
	return nil
}

type recordingEvaluator struct {
	fakeEvaluator
	invalidated []string
}

func (r *recordingEvaluator) InvalidateJob(jobID string) {
	r.invalidated = append(r.invalidated, jobID)
}

func newJobApp(repo *recordingJobRepo, evaluator *recordingEvaluator) *fiber.App {
	h := NewJobHandler(repo, nil, nil, evaluator, 1<<20)
	app := fiber.New()
	app.Post("/jobs", h.HandleUpsertJob)
	app.Get("/jobs", h.HandleListJobs)
	app.Get("/jobs/:job_id", h.HandleGetJob)
	return app
}

func TestHandleUpsertJob(t *testing.T) {
	t.Parallel()

	t.Run("stores job and invalidates cache", func(t *testing.T) {
		t.Parallel()

		repo := &recordingJobRepo{}
		evaluator := &recordingEvaluator{}
		app := newJobApp(repo, evaluator)

		req := httptest.NewRequest("POST", "/jobs",
			strings.NewReader(`{"job_id":"j1","jd_text":"Python, SQL, Docker"}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != fiber.StatusCreated {
			t.Fatalf("expected 201, got %d", resp.StatusCode)
		}
		if len(repo.put) != 1 || repo.put[0].JobID != "j1" {
			t.Fatalf("expected one stored job j1, got %+v", repo.put)
		}
		if len(evaluator.invalidated) != 1 || evaluator.invalidated[0] != "j1" {
			t.Fatalf("expected cache invalidation for j1, got %v", evaluator.invalidated)
		}
	})

	t.Run("missing job_id", func(t *testing.T) {
		t.Parallel()

		app := newJobApp(&recordingJobRepo{}, &recordingEvaluator{})

		req := httptest.NewRequest("POST", "/jobs",
			strings.NewReader(`{"jd_text":"Python"}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != fiber.StatusBadRequest {
			t.Fatalf("expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("missing jd_text", func(t *testing.T) {
		t.Parallel()

		app := newJobApp(&recordingJobRepo{}, &recordingEvaluator{})

		req := httptest.NewRequest("POST", "/jobs",
			strings.NewReader(`{"job_id":"j1"}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != fiber.StatusBadRequest {
			t.Fatalf("expected 400, got %d", resp.StatusCode)
		}
	})
}

func TestHandleGetJob(t *testing.T) {
	t.Parallel()

	t.Run("returns stored description", func(t *testing.T) {
		t.Parallel()

		repo := &recordingJobRepo{fakeJobRepo: fakeJobRepo{ids: []string{"j1"}}}
		app := newJobApp(repo, &recordingEvaluator{})

		resp, err := app.Test(httptest.NewRequest("GET", "/jobs/j1", nil))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}

		var body struct {
			JobID  string `json:"job_id"`
			JDText string `json:"jd_text"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.JobID != "j1" {
			t.Fatalf("expected job_id j1, got %q", body.JobID)
		}
		if body.JDText == "" {
			t.Fatal("expected jd_text to be populated")
		}
	})

	t.Run("unknown job is 404", func(t *testing.T) {
		t.Parallel()

		app := newJobApp(&recordingJobRepo{}, &recordingEvaluator{})

		resp, err := app.Test(httptest.NewRequest("GET", "/jobs/ghost", nil))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != fiber.StatusNotFound {
			t.Fatalf("expected 404, got %d", resp.StatusCode)
		}
	})
}

func TestHandleListJobs(t *testing.T) {
	t.Parallel()

	repo := &recordingJobRepo{fakeJobRepo: fakeJobRepo{ids: []string{"j1", "j2"}}}
	app := newJobApp(repo, &recordingEvaluator{})

	resp, err := app.Test(httptest.NewRequest("GET", "/jobs", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		JobIDs []string `json:"job_ids"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.JobIDs) != 2 {
		t.Fatalf("expected 2 job ids, got %v", body.JobIDs)
	}
}
