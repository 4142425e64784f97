package certificate

import (
	"time"

	"gorm.io/gorm"
)

// Issuance records one act of granting a certificate to a recipient. Rows are
// never deleted; revocation and expiration are flag flips. The same
// certificate may be issued to the same recipient more than once (re-issuance
// after revocation is a supported flow).
type Issuance struct {
	gorm.Model
	CertificateID            uint      `json:"certificate_id" gorm:"index;not null"`
	IssuedTo                 uint      `json:"issued_to" gorm:"index;not null"`
	IssuedBy                 uint      `json:"issued_by" gorm:"not null"`
	IssuanceUniqueIdentifier string    `json:"issuance_unique_identifier" gorm:"unique;not null"`
	Description              string    `json:"description"`
	IsRevoked                bool      `json:"is_revoked" gorm:"default:false"`
	IsExpired                bool      `json:"is_expired" gorm:"default:false"`
	IssuedAt                 time.Time `json:"issued_at"`
}
