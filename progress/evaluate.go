package progress

import (
	"errors"
	"math"
)

// ModuleState is the gating state of one module for one learner.
type ModuleState string

const (
	StateLocked    ModuleState = "locked"
	StateAvailable ModuleState = "available"
	StateCompleted ModuleState = "completed"
)

// ModuleView is the slice of the course catalog the evaluator needs: the
// module's stable identifier and whether it carries a quiz.
type ModuleView struct {
	ID      string
	Title   string
	HasQuiz bool
}

// Summary aggregates course-level completion for display.
type Summary struct {
	CompletedModules int  `json:"completed_modules"`
	TotalModules     int  `json:"total_modules"`
	Percent          int  `json:"percent"`
	CourseComplete   bool `json:"course_complete"`
}

// ErrModuleNotFound is returned when a requested module is not in the
// course's module list. Callers redirect rather than crash.
var ErrModuleNotFound = errors.New("module not found in course")

// completed reports whether an entry satisfies the completion criterion:
// video watched and quiz passed. The auto-pass installed for quiz-less
// modules makes the check uniform.
func completed(mp *ModuleProgress) bool {
	return mp != nil && mp.VideoCompleted && mp.Quiz != nil && mp.Quiz.Passed
}

// Evaluate computes the gating state of every module in order. Pure: no
// I/O, no side effects. Module 0 is never locked; module i unlocks once
// module i-1 is completed, so every module before an unlocked one is
// completed.
func Evaluate(modules []ModuleView, rec Record) []ModuleState {
	states := make([]ModuleState, len(modules))
	for i, m := range modules {
		own := rec.Find(m.ID)
		if completed(own) {
			states[i] = StateCompleted
			continue
		}
		if i == 0 {
			states[i] = StateAvailable
			continue
		}
		if completed(rec.Find(modules[i-1].ID)) {
			states[i] = StateAvailable
		} else {
			states[i] = StateLocked
		}
	}
	return states
}

// Summarize computes overall completion across the course.
func Summarize(modules []ModuleView, rec Record) Summary {
	total := len(modules)
	done := 0
	for _, m := range modules {
		if completed(rec.Find(m.ID)) {
			done++
		}
	}
	s := Summary{CompletedModules: done, TotalModules: total}
	if total > 0 {
		s.Percent = int(math.Round(float64(done) / float64(total) * 100))
	}
	s.CourseComplete = total > 0 && done == total
	return s
}

// StateOf returns the gating state of a single module, or ErrModuleNotFound
// if the module is not part of the course.
func StateOf(modules []ModuleView, rec Record, moduleID string) (ModuleState, error) {
	states := Evaluate(modules, rec)
	for i, m := range modules {
		if m.ID == moduleID {
			return states[i], nil
		}
	}
	return "", ErrModuleNotFound
}

// ApplyVideoComplete records a finished video view for the module. The
// entry is created lazily; calling it twice is the same as calling it once.
// For a module without a quiz the auto-pass record is installed at the same
// moment, so videoCompleted alone completes the module.
func ApplyVideoComplete(rec *Record, m ModuleView) {
	mp := rec.Find(m.ID)
	if mp == nil {
		rec.ModuleProgress = append(rec.ModuleProgress, ModuleProgress{ModuleID: m.ID})
		mp = &rec.ModuleProgress[len(rec.ModuleProgress)-1]
	}
	mp.VideoCompleted = true
	if !m.HasQuiz && mp.Quiz == nil {
		mp.Quiz = &QuizProgress{Completed: true, Score: 100, Passed: true}
	}
}

// ApplyQuizResult records a finished quiz attempt for the module. Score is
// only meaningful alongside Completed, and Passed implies Completed. A pass
// is terminal: once stored it is never replaced by a later attempt, so a
// completed module cannot be re-locked by failing the quiz again.
func ApplyQuizResult(rec *Record, moduleID string, score int, passed bool) {
	mp := rec.Find(moduleID)
	if mp == nil {
		rec.ModuleProgress = append(rec.ModuleProgress, ModuleProgress{ModuleID: moduleID})
		mp = &rec.ModuleProgress[len(rec.ModuleProgress)-1]
	}
	if mp.Quiz != nil && mp.Quiz.Passed {
		return
	}
	mp.Quiz = &QuizProgress{Completed: true, Score: score, Passed: passed}
}
