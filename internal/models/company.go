package models

import "time"

type Company struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	AdminID   string    `db:"admin_id"`
	CreatedAt time.Time `db:"created_at"`
}

type JobPosting struct {
	ID        string    `db:"id"`
	CompanyID string    `db:"company_id"`
	Title     string    `db:"title"`
	SalaryMin *float64  `db:"salary_min"`
	SalaryMax *float64  `db:"salary_max"`
	CreatedAt time.Time `db:"created_at"`
}

type JobPostingSummary struct {
	ID        string   `db:"id"`
	Title     string   `db:"title"`
	SalaryMin *float64 `db:"salary_min"`
	SalaryMax *float64 `db:"salary_max"`
}

func (j JobPosting) Summary() JobPostingSummary {
	return JobPostingSummary{ID: j.ID, Title: j.Title, SalaryMin: j.SalaryMin, SalaryMax: j.SalaryMax}
}
