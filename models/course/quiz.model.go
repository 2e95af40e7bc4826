package course

import "gorm.io/gorm"

// Quiz belongs to exactly one module. PassingScore is a percentage (0-100).
type Quiz struct {
	gorm.Model
	ModuleID     uint   `json:"module_id" gorm:"uniqueIndex;not null"`
	Title        string `json:"title"`
	PassingScore int    `json:"passing_score" gorm:"default:70"`
	IsDeleted    bool   `gorm:"default:false"`
}

// Question is a single quiz question with 2+ options, exactly one correct
type Question struct {
	gorm.Model
	QuizID     uint   `json:"quiz_id" gorm:"index;not null"`
	Text       string `json:"text"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false"`
}

// QuestionOption represents an answer option for a question
type QuestionOption struct {
	gorm.Model
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	OptionText string `json:"option_text"`
	IsCorrect  bool   `json:"is_correct" gorm:"default:false"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false"`
}
