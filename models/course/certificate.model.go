package course

import (
	"time"

	"gorm.io/gorm"
)

// Certificate tracks a completion certificate through its request and
// approval lifecycle.
type Certificate struct {
	gorm.Model
	UserID            uint       `json:"user_id" gorm:"index;not null"`
	CourseID          uint       `json:"course_id" gorm:"index;not null"`
	Status            string     `json:"status" gorm:"default:'PENDING'"` // PENDING, APPROVED, REJECTED
	CertificateNumber string     `json:"certificate_number"`
	RequestedAt       time.Time  `json:"requested_at"`
	ApprovedAt        *time.Time `json:"approved_at"`
	ApprovedBy        *uint      `json:"approved_by"`
	RejectionReason   string     `json:"rejection_reason"`
	IsDeleted         bool       `gorm:"default:false"`
}
