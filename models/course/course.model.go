package course

import "gorm.io/gorm"

// Course represents a learning course. Course content, enrollment and
// progress tracking are owned by the course service; certificates only
// reference the course id.
type Course struct {
	gorm.Model
	Title       string `json:"title"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Status      string `json:"status" gorm:"default:'DRAFT'"` // DRAFT, ACTIVE, INACTIVE
	IsDeleted   bool   `gorm:"default:false"`
}
