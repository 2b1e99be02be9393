package model

import "time"

// Subject represents a course offered to one or more trades in a semester.
type Subject struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Code      string    `json:"code" gorm:"size:20;not null;index"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Semester  int       `json:"semester" gorm:"not null;index"`
	Trades    []Trade   `json:"trades,omitempty" gorm:"many2many:subject_trades;"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
