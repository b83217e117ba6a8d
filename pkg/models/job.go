package models

// Job is the structured record extracted from a single job detail page.
type Job struct {
	JobID       string `json:"job_id"`
	JobURL      string `json:"job_url"`
	Title       string `json:"title"`
	CompanyName string `json:"company_name"`
	Location    string `json:"location"`
}
