package quiz

import "math"

// Phase is the session's position in the answer/feedback/results cycle.
type Phase string

const (
	PhaseAnswering Phase = "answering"
	PhaseFeedback  Phase = "feedback"
	PhaseResults   Phase = "results"
)

// Question is one quiz question as the session sees it: option texts plus
// the index of the single correct option.
type Question struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Correct int      `json:"-"`
}

// Definition is the immutable quiz a session runs against.
type Definition struct {
	ID           string
	ModuleID     string
	Title        string
	PassingScore int
	Questions    []Question
}

const noSelection = -1

// Session runs exactly one quiz attempt. State lives in memory for the
// duration of the attempt; nothing is persisted until Results fires the
// completion callback. Not safe for concurrent use; the Manager serializes
// access.
type Session struct {
	def           Definition
	phase         Phase
	questionIndex int
	selected      int
	answers       []int
	lastCorrect   bool
	score         int
	passed        bool
	reported      bool
	onComplete    func(score int, passed bool)
}

// NewSession starts an attempt at question 0 with nothing selected.
func NewSession(def Definition, onComplete func(score int, passed bool)) *Session {
	s := &Session{def: def, onComplete: onComplete}
	s.reset()
	return s
}

func (s *Session) reset() {
	s.phase = PhaseAnswering
	s.questionIndex = 0
	s.selected = noSelection
	s.answers = make([]int, len(s.def.Questions))
	for i := range s.answers {
		s.answers[i] = noSelection
	}
	s.lastCorrect = false
	s.score = 0
	s.passed = false
	s.reported = false
}

// Select records the learner's current choice. Legal only while answering;
// once feedback is showing the answer is immutable.
func (s *Session) Select(optionIndex int) bool {
	if s.phase != PhaseAnswering {
		return false
	}
	if optionIndex < 0 || optionIndex >= len(s.def.Questions[s.questionIndex].Options) {
		return false
	}
	s.selected = optionIndex
	return true
}

// Submit grades the current selection and moves to feedback. A no-op when
// nothing is selected or the session is not answering.
func (s *Session) Submit() bool {
	if s.phase != PhaseAnswering || s.selected == noSelection {
		return false
	}
	s.answers[s.questionIndex] = s.selected
	s.lastCorrect = s.selected == s.def.Questions[s.questionIndex].Correct
	s.phase = PhaseFeedback
	return true
}

// Advance moves past feedback: to the next question, or to results when the
// quiz is done. Entering results reports the outcome to the completion
// callback exactly once per attempt.
func (s *Session) Advance() bool {
	if s.phase != PhaseFeedback {
		return false
	}
	if s.questionIndex < len(s.def.Questions)-1 {
		s.questionIndex++
		s.selected = noSelection
		s.phase = PhaseAnswering
		return true
	}

	correct := 0
	for i, q := range s.def.Questions {
		if s.answers[i] == q.Correct {
			correct++
		}
	}
	s.score = int(math.Round(float64(correct) / float64(len(s.def.Questions)) * 100))
	s.passed = s.score >= s.def.PassingScore
	s.phase = PhaseResults

	if !s.reported {
		s.reported = true
		if s.onComplete != nil {
			s.onComplete(s.score, s.passed)
		}
	}
	return true
}

// Retry restarts a failed attempt from question 0 with all answers cleared.
// A passed quiz has no retry path.
func (s *Session) Retry() bool {
	if s.phase != PhaseResults || s.passed {
		return false
	}
	s.reset()
	return true
}

// State is the JSON snapshot handlers return to the UI. Feedback fields are
// only meaningful in their phase; the correct answer is never exposed while
// answering.
type State struct {
	Phase          Phase     `json:"phase"`
	QuestionIndex  int       `json:"question_index"`
	TotalQuestions int       `json:"total_questions"`
	Question       *Question `json:"question,omitempty"`
	Selected       *int      `json:"selected,omitempty"`
	IsCorrect      *bool     `json:"is_correct,omitempty"`
	Score          *int      `json:"score,omitempty"`
	Passed         *bool     `json:"passed,omitempty"`
	CanRetry       bool      `json:"can_retry"`
}

func (s *Session) State() State {
	st := State{
		Phase:          s.phase,
		QuestionIndex:  s.questionIndex,
		TotalQuestions: len(s.def.Questions),
	}
	switch s.phase {
	case PhaseAnswering:
		q := s.def.Questions[s.questionIndex]
		st.Question = &q
		if s.selected != noSelection {
			sel := s.selected
			st.Selected = &sel
		}
	case PhaseFeedback:
		q := s.def.Questions[s.questionIndex]
		st.Question = &q
		sel := s.answers[s.questionIndex]
		st.Selected = &sel
		correct := s.lastCorrect
		st.IsCorrect = &correct
	case PhaseResults:
		score, passed := s.score, s.passed
		st.Score = &score
		st.Passed = &passed
		st.CanRetry = !passed
	}
	return st
}
