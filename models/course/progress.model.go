package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CourseProgress is the remote store row for a learner's progress in a
// course. ModuleProgress holds the serialized per-module record payload;
// one row per (user, course).
type CourseProgress struct {
	gorm.Model
	UserID             uint           `json:"user_id" gorm:"index:idx_user_course,unique;not null"`
	CourseID           uint           `json:"course_id" gorm:"index:idx_user_course,unique;not null"`
	ModuleProgress     datatypes.JSON `json:"module_progress"`
	CurrentModuleIndex int            `json:"current_module_index" gorm:"default:0"`
	SyncedAt           time.Time      `json:"synced_at"`
	IsDeleted          bool           `gorm:"default:false"`
}
