package analytics

import "time"

// Window is a reporting period anchored at "now".
type Window string

const (
	WindowToday Window = "today"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
	WindowYear  Window = "year"
)

// DayBucket is one point on the daily revenue/volume chart.
type DayBucket struct {
	Date     string  `json:"date"` // YYYY-MM-DD
	Revenue  float64 `json:"revenue"`
	JobCount int     `json:"job_count"`
}

// Summary is the dashboard payload for one window.
type Summary struct {
	Window        Window         `json:"window"`
	From          time.Time      `json:"from"`
	To            time.Time      `json:"to"`
	Revenue       float64        `json:"revenue"`
	TotalJobs     int            `json:"total_jobs"`
	JobsByStatus  map[string]int `json:"jobs_by_status"`
	CompletedJobs int            `json:"completed_jobs"`
	PendingJobs   int            `json:"pending_jobs"`
	Customers     int            `json:"customers"`
	Daily         []DayBucket    `json:"daily"`
}
