package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/virajhegde24/Code4Edtech-Project/internal/models"
)

type ResultFilter struct {
	StudentID string
	JobID     string
	Limit     int
	// RankByScore orders rows best score first instead of newest first,
	// for ranking candidates against a job. Rows with no score sort last.
	RankByScore bool
}

type ResultRepository interface {
	// Append inserts one new history row and fills in the assigned id and
	// timestamp. Existing rows are never touched.
	Append(ctx context.Context, result *models.Result) error
	// Query returns matching rows newest first (timestamp, then id,
	// descending), or best score first when the filter asks for ranking.
	Query(ctx context.Context, filter ResultFilter) ([]models.Result, error)
	// Latest returns the most recent row for a (student_id, job_id) pair.
	Latest(ctx context.Context, studentID, jobID string) (*models.Result, error)
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

// Append implements ResultRepository.
func (r *resultRepository) Append(ctx context.Context, result *models.Result) error {
	if err := r.db.WithContext(ctx).Create(result).Error; err != nil {
		return mapStoreError("append result", err)
	}
	return nil
}

// Query implements ResultRepository.
func (r *resultRepository) Query(ctx context.Context, filter ResultFilter) ([]models.Result, error) {
	q := r.db.WithContext(ctx).Model(&models.Result{})

	if filter.StudentID != "" {
		q = q.Where("student_id = ?", filter.StudentID)
	}
	if filter.JobID != "" {
		q = q.Where("job_id = ?", filter.JobID)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	order := "timestamp DESC, id DESC"
	if filter.RankByScore {
		order = "score DESC NULLS LAST, timestamp DESC, id DESC"
	}

	var results []models.Result
	if err := q.Order(order).Find(&results).Error; err != nil {
		return nil, mapStoreError("query results", err)
	}
	return results, nil
}

// Latest implements ResultRepository.
func (r *resultRepository) Latest(ctx context.Context, studentID, jobID string) (*models.Result, error) {
	var result models.Result
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND job_id = ?", studentID, jobID).
		Order("timestamp DESC, id DESC").
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("latest result for (%s, %s): %w", studentID, jobID, ErrNoResults)
		}
		return nil, mapStoreError("latest result", err)
	}
	return &result, nil
}
