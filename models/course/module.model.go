package course

import "gorm.io/gorm"

// Module represents one unit of course content: a hosted video plus an
// optional quiz. OrderIndex defines the gating sequence.
type Module struct {
	gorm.Model
	CourseID        uint    `json:"course_id" gorm:"index;not null"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	OrderIndex      int     `json:"order_index" gorm:"default:0"` // Module order in course
	VideoPlaybackID string  `json:"video_playback_id"`            // Hosted video playback ID
	VideoDuration   float64 `json:"video_duration" gorm:"default:0"` // Seconds, from the video host; fractional
	IsDeleted       bool    `gorm:"default:false"`
}
