package models

// JobDescription is one row of the job_descriptions table. The job_id is
// assigned externally and never changes; re-submitting the same job_id
// overwrites jd_text.
type JobDescription struct {
	JobID  string `gorm:"column:job_id;type:text;primaryKey" json:"job_id"`
	JDText string `gorm:"column:jd_text;type:text;not null" json:"jd_text"`
}

func (JobDescription) TableName() string {
	return "job_descriptions"
}
