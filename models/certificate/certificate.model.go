package certificate

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Certificate represents a reusable certificate template: one design image
// plus the lifecycle/publish state. At most one certificate per course may be
// published at a time (see the publish handler).
type Certificate struct {
	gorm.Model
	OwnerID          uint           `json:"owner_id" gorm:"index;not null"`
	CourseID         *uint          `json:"course_id" gorm:"index"`
	Title            string         `json:"title" gorm:"not null"`
	Description      string         `json:"description"`
	Metadata         datatypes.JSON `json:"metadata"`
	UniqueIdentifier string         `json:"unique_identifier" gorm:"unique;not null"`
	CertificateData  string         `json:"certificate_data"` // template image URL, immutable after create
	IsPublished      bool           `json:"is_published" gorm:"default:false"`
	ExpirationDate   *time.Time     `json:"expiration_date"`
	IsRevocable      bool           `json:"is_revocable" gorm:"default:true"`
	IsDeleted        bool           `json:"-" gorm:"default:false"`
}
