package model

import "time"

// PYQ represents a previous-year question paper for a subject.
type PYQ struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title" gorm:"size:100;not null"`
	TradeID      uint      `json:"trade_id" gorm:"not null;index"`
	Trade        Trade     `json:"trade"`
	SubjectID    uint      `json:"subject_id" gorm:"not null;index"`
	Subject      Subject   `json:"subject"`
	Semester     int       `json:"semester" gorm:"not null;index"`
	Year         int       `json:"year" gorm:"index"`
	FileURL      string    `json:"fileUrl" gorm:"size:512;not null"`
	FileKey      string    `json:"-" gorm:"size:512;not null"`
	FileType     string    `json:"fileType" gorm:"size:10;not null"`
	UploadedByID uint      `json:"uploaded_by" gorm:"not null;index"`
	UploadedBy   User      `json:"-"`
	CreatedAt    time.Time `json:"uploadedAt"`
	UpdatedAt    time.Time `json:"-"`
}
