package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/virajhegde24/Code4Edtech-Project/internal/models"
	"github.com/virajhegde24/Code4Edtech-Project/internal/repositories"
)

// EvaluatorService orchestrates one evaluation: load job, extract
// requirements, profile the resume, match, compose feedback, append exactly
// one history row. Every successful call appends a new row; nothing is ever
// updated in place, and a failed call persists nothing.
type EvaluatorService interface {
	Evaluate(ctx context.Context, studentID, jobID, resumeText string) (*models.Result, error)
	// InvalidateJob drops the cached requirement set for a job. Must be
	// called whenever a job description is overwritten.
	InvalidateJob(jobID string)
}

type evaluatorService struct {
	jobRepo    repositories.JobRepository
	resultRepo repositories.ResultRepository
	extractor  SkillExtractor
	profiler   CandidateProfiler
	matcher    Matcher
	composer   FeedbackComposer
	logger     *zap.Logger

	mu       sync.Mutex
	reqCache map[string]RequirementSet
}

func NewEvaluatorService(
	jobRepo repositories.JobRepository,
	resultRepo repositories.ResultRepository,
	extractor SkillExtractor,
	profiler CandidateProfiler,
	matcher Matcher,
	composer FeedbackComposer,
	logger *zap.Logger,
) EvaluatorService {
	return &evaluatorService{
		jobRepo:    jobRepo,
		resultRepo: resultRepo,
		extractor:  extractor,
		profiler:   profiler,
		matcher:    matcher,
		composer:   composer,
		logger:     logger,
		reqCache:   make(map[string]RequirementSet),
	}
}

// Evaluate implements EvaluatorService.
func (e *evaluatorService) Evaluate(ctx context.Context, studentID, jobID, resumeText string) (*models.Result, error) {
	job, err := e.jobRepo.Get(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("evaluate (%s, %s): %w", studentID, jobID, err)
	}

	requirements, err := e.requirementsFor(job)
	if err != nil {
		return nil, fmt.Errorf("evaluate (%s, %s): %w", studentID, jobID, err)
	}

	profile, err := e.profiler.Profile(resumeText)
	if err != nil {
		return nil, fmt.Errorf("evaluate (%s, %s): %w", studentID, jobID, err)
	}

	match := e.matcher.Match(requirements, profile)
	feedback := e.composer.Compose(match, profile)

	// The append below is the commit point; honor cancellation up to it.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("evaluate (%s, %s): %w", studentID, jobID, err)
	}

	score := match.Score
	result := &models.Result{
		StudentID: studentID,
		JobID:     jobID,
		Score:     &score,
		Verdict:   match.Verdict,
		Feedback:  feedback,
		Timestamp: time.Now().UTC(),
	}
	if err := result.SetMissingSkills(match.Missing); err != nil {
		return nil, fmt.Errorf("evaluate (%s, %s): encode missing skills: %w", studentID, jobID, err)
	}

	if err := e.resultRepo.Append(ctx, result); err != nil {
		return nil, fmt.Errorf("evaluate (%s, %s): %w", studentID, jobID, err)
	}

	e.logger.Info("evaluation completed",
		zap.String("student_id", studentID),
		zap.String("job_id", jobID),
		zap.Int64("result_id", result.ID),
		zap.Int("score", match.Score),
		zap.String("verdict", string(match.Verdict)),
		zap.Int("missing", len(match.Missing)),
	)

	return result, nil
}

// InvalidateJob implements EvaluatorService.
func (e *evaluatorService) InvalidateJob(jobID string) {
	e.mu.Lock()
	delete(e.reqCache, jobID)
	e.mu.Unlock()
}

// requirementsFor returns the cached requirement set for a job, extracting
// and caching it on first use. Safe because jd_text only changes through an
// overwrite, which invalidates the entry.
func (e *evaluatorService) requirementsFor(job *models.JobDescription) (RequirementSet, error) {
	e.mu.Lock()
	cached, ok := e.reqCache[job.JobID]
	e.mu.Unlock()
	if ok {
		return cached, nil
	}

	requirements, err := e.extractor.Extract(job.JDText)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.reqCache[job.JobID] = requirements
	e.mu.Unlock()

	return requirements, nil
}
