package models

import "time"

type UpsertJobRequest struct {
	JobID  string `json:"job_id"`
	JDText string `json:"jd_text"`
}

type UpsertJobResponse struct {
	JobID   string `json:"job_id"`
	Message string `json:"message"`
}

type EvaluateRequest struct {
	StudentID  string `json:"student_id"`
	JobID      string `json:"job_id"`
	ResumeText string `json:"resume_text"`
}

type ResultResponse struct {
	ID            int64     `json:"id"`
	StudentID     string    `json:"student_id"`
	JobID         string    `json:"job_id"`
	Score         *int      `json:"score"`
	Verdict       string    `json:"verdict"`
	MissingSkills []string  `json:"missing_skills"`
	Feedback      string    `json:"feedback"`
	Timestamp     time.Time `json:"timestamp"`
}

type BatchEvaluateResponse struct {
	StudentID string   `json:"student_id"`
	Enqueued  int      `json:"enqueued"`
	JobIDs    []string `json:"job_ids"`
}

// NewResultResponse maps a stored row to its API shape, decoding the
// serialized missing list.
func NewResultResponse(r *Result) ResultResponse {
	return ResultResponse{
		ID:            r.ID,
		StudentID:     r.StudentID,
		JobID:         r.JobID,
		Score:         r.Score,
		Verdict:       string(r.Verdict),
		MissingSkills: r.MissingSkillsList(),
		Feedback:      r.Feedback,
		Timestamp:     r.Timestamp,
	}
}
