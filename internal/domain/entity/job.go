package entity

import "time"

// Job представляет вакансию, размещенную рекрутером
type Job struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Title             string    `gorm:"size:150;not null" json:"title"`
	Description       string    `gorm:"not null;default:''" json:"description"`
	CompanyName       string    `gorm:"size:150;not null" json:"company_name"`
	Location          string    `gorm:"size:150;not null;default:''" json:"location"`
	CategoryID        uint      `gorm:"not null;index" json:"category_id"`
	RecruiterID       uint      `gorm:"not null;index" json:"recruiter_id"`
	ApplicationsCount int       `gorm:"not null;default:0" json:"applications_count"`
	IsActive          bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Job) TableName() string {
	return "jobs"
}
