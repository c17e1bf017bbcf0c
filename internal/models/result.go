package models

import (
	"encoding/json"
	"time"
)

type Verdict string

const (
	VerdictStrongMatch  Verdict = "strong_match"
	VerdictPartialMatch Verdict = "partial_match"
	VerdictWeakMatch    Verdict = "weak_match"
)

// Result is one row of the results table. Rows are append-only: the service
// never updates or deletes a result once written, and a (student_id, job_id)
// pair may accumulate any number of rows over time.
type Result struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID string `gorm:"type:text;not null" json:"student_id"`
	JobID     string `gorm:"type:text;not null" json:"job_id"`
	// Score is a pointer because pre-existing rows may carry NULL scores.
	// A successful evaluation always sets it.
	Score         *int      `json:"score"`
	Verdict       Verdict   `gorm:"type:text" json:"verdict"`
	MissingSkills string    `gorm:"type:text" json:"missing_skills"`
	Feedback      string    `gorm:"type:text" json:"feedback"`
	Timestamp     time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"timestamp"`

	// Relations
	Job JobDescription `gorm:"foreignKey:JobID;references:JobID" json:"-"`
}

func (Result) TableName() string {
	return "results"
}

// SetMissingSkills stores the ordered missing list as JSON text, the encoding
// the results.missing_skills column uses.
func (r *Result) SetMissingSkills(skills []string) error {
	if skills == nil {
		skills = []string{}
	}
	data, err := json.Marshal(skills)
	if err != nil {
		return err
	}
	r.MissingSkills = string(data)
	return nil
}

// MissingSkillsList decodes the serialized missing list. Rows written by
// other tools may hold malformed text; those decode to an empty list.
func (r *Result) MissingSkillsList() []string {
	if r.MissingSkills == "" {
		return []string{}
	}
	var skills []string
	if err := json.Unmarshal([]byte(r.MissingSkills), &skills); err != nil {
		return []string{}
	}
	if skills == nil {
		return []string{}
	}
	return skills
}
