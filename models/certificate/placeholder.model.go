package certificate

import "gorm.io/gorm"

// Placeholder is a named, positioned text field overlaid on a certificate's
// template image. Key is unique within a certificate; batch writes upsert on
// (certificate_id, key). X and Y are percentage-of-image coordinates (0-100);
// conversion to pixels happens at the rendering boundary.
type Placeholder struct {
	gorm.Model
	CertificateID uint        `json:"certificate_id" gorm:"index;not null;uniqueIndex:idx_certificate_key"`
	Certificate   Certificate `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Key           string      `json:"key" gorm:"not null;uniqueIndex:idx_certificate_key"`
	Label         string      `json:"label"`
	Value         string      `json:"value"`
	X             float64     `json:"x" gorm:"default:0"`
	Y             float64     `json:"y" gorm:"default:0"`
	FontSize      uint        `json:"font_size" gorm:"default:14"`
	Color         string      `json:"color" gorm:"default:'#000000'"`
	IsVisible     bool        `json:"is_visible" gorm:"default:true"`
	Discount      float64     `json:"discount" gorm:"default:0"`
}
