package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/virajhegde24/Code4Edtech-Project/internal/models"
)

type JobRepository interface {
	Put(ctx context.Context, job *models.JobDescription) error
	Get(ctx context.Context, jobID string) (*models.JobDescription, error)
	ListIDs(ctx context.Context) ([]string, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// Put implements JobRepository. Re-submitting an existing job_id overwrites
// its jd_text; callers must drop any cached requirement set for that job.
func (r *jobRepository) Put(ctx context.Context, job *models.JobDescription) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "job_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"jd_text"}),
		}).
		Create(job).Error
	if err != nil {
		return mapStoreError("put job", err)
	}
	return nil
}

// Get implements JobRepository.
func (r *jobRepository) Get(ctx context.Context, jobID string) (*models.JobDescription, error) {
	var job models.JobDescription
	err := r.db.WithContext(ctx).Where("job_id = ?", jobID).First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("get job %q: %w", jobID, ErrJobNotFound)
		}
		return nil, mapStoreError("get job", err)
	}
	return &job, nil
}

// ListIDs implements JobRepository.
func (r *jobRepository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.JobDescription{}).
		Order("job_id ASC").
		Pluck("job_id", &ids).Error
	if err != nil {
		return nil, mapStoreError("list jobs", err)
	}
	return ids, nil
}
