package quiz

import "testing"

func threeQuestionQuiz() Definition {
	return Definition{
		ID:           "10",
		ModuleID:     "3",
		Title:        "Checkpoint",
		PassingScore: 70,
		Questions: []Question{
			{ID: "q1", Text: "First?", Options: []string{"a", "b", "c"}, Correct: 1},
			{ID: "q2", Text: "Second?", Options: []string{"a", "b"}, Correct: 0},
			{ID: "q3", Text: "Third?", Options: []string{"a", "b", "c", "d"}, Correct: 3},
		},
	}
}

// answer walks one question through select, submit, advance.
func answer(t *testing.T, s *Session, option int) {
	t.Helper()
	if !s.Select(option) {
		t.Fatalf("Select(%d) rejected", option)
	}
	if !s.Submit() {
		t.Fatal("Submit rejected")
	}
	if !s.Advance() {
		t.Fatal("Advance rejected")
	}
}

func TestSessionPassingRun(t *testing.T) {
	var gotScore int
	var gotPassed bool
	calls := 0
	s := NewSession(threeQuestionQuiz(), func(score int, passed bool) {
		gotScore, gotPassed = score, passed
		calls++
	})

	answer(t, s, 1)
	answer(t, s, 0)
	answer(t, s, 3)

	st := s.State()
	if st.Phase != PhaseResults {
		t.Fatalf("phase = %q, want results", st.Phase)
	}
	if *st.Score != 100 || !*st.Passed {
		t.Fatalf("score = %d passed = %v", *st.Score, *st.Passed)
	}
	if st.CanRetry {
		t.Fatal("retry offered on a pass")
	}
	if calls != 1 || gotScore != 100 || !gotPassed {
		t.Fatalf("callback calls = %d score = %d passed = %v", calls, gotScore, gotPassed)
	}
}

func TestSessionFailAndRetry(t *testing.T) {
	var scores []int
	s := NewSession(threeQuestionQuiz(), func(score int, passed bool) {
		scores = append(scores, score)
	})

	// One of three correct: 33, below the 70 bar
	answer(t, s, 1)
	answer(t, s, 1)
	answer(t, s, 0)

	st := s.State()
	if *st.Passed {
		t.Fatal("failing run reported as pass")
	}
	if *st.Score != 33 {
		t.Fatalf("score = %d, want 33", *st.Score)
	}
	if !st.CanRetry {
		t.Fatal("retry not offered on a fail")
	}

	if !s.Retry() {
		t.Fatal("Retry rejected")
	}
	st = s.State()
	if st.Phase != PhaseAnswering || st.QuestionIndex != 0 {
		t.Fatalf("after retry phase = %q index = %d", st.Phase, st.QuestionIndex)
	}
	if st.Selected != nil {
		t.Fatal("selection survived retry")
	}

	// Retried attempt reports its own result
	answer(t, s, 1)
	answer(t, s, 0)
	answer(t, s, 3)

	if len(scores) != 2 || scores[0] != 33 || scores[1] != 100 {
		t.Fatalf("reported scores = %v, want [33 100]", scores)
	}
}

func TestSessionScoreRounding(t *testing.T) {
	s := NewSession(threeQuestionQuiz(), nil)

	// Two of three correct: 66.67 rounds to 67
	answer(t, s, 1)
	answer(t, s, 0)
	answer(t, s, 0)

	if *s.State().Score != 67 {
		t.Fatalf("score = %d, want 67", *s.State().Score)
	}
}

func TestSessionInvalidTransitions(t *testing.T) {
	s := NewSession(threeQuestionQuiz(), nil)

	if s.Submit() {
		t.Fatal("Submit allowed with no selection")
	}
	if s.Advance() {
		t.Fatal("Advance allowed while answering")
	}
	if s.Retry() {
		t.Fatal("Retry allowed while answering")
	}
	if s.Select(5) {
		t.Fatal("out-of-range option accepted")
	}
	if s.Select(-1) {
		t.Fatal("negative option accepted")
	}

	if !s.Select(0) || !s.Submit() {
		t.Fatal("legal select/submit rejected")
	}
	if s.Select(1) {
		t.Fatal("Select allowed during feedback")
	}
	if s.Submit() {
		t.Fatal("double Submit allowed")
	}
}

func TestSessionRetryRejectedAfterPass(t *testing.T) {
	s := NewSession(threeQuestionQuiz(), nil)

	answer(t, s, 1)
	answer(t, s, 0)
	answer(t, s, 3)

	if s.Retry() {
		t.Fatal("Retry allowed after a pass")
	}
}

func TestSessionStateHidesCorrectAnswer(t *testing.T) {
	s := NewSession(threeQuestionQuiz(), nil)

	st := s.State()
	if st.Question == nil {
		t.Fatal("no question in answering state")
	}
	if st.IsCorrect != nil || st.Score != nil {
		t.Fatal("feedback fields leaked while answering")
	}

	s.Select(2)
	s.Submit()

	st = s.State()
	if st.IsCorrect == nil {
		t.Fatal("feedback missing correctness")
	}
	if *st.IsCorrect {
		t.Fatal("wrong answer graded correct")
	}
	if *st.Selected != 2 {
		t.Fatalf("selected = %d, want 2", *st.Selected)
	}
}

func TestSessionSelectionChangeBeforeSubmit(t *testing.T) {
	s := NewSession(threeQuestionQuiz(), nil)

	s.Select(0)
	s.Select(1)
	s.Submit()

	if !*s.State().IsCorrect {
		t.Fatal("last selection not the one graded")
	}
}
