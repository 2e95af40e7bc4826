package quiz

import "testing"

func TestManagerOwnership(t *testing.T) {
	m := NewManager()
	token, st := m.Start(1, threeQuestionQuiz(), nil)

	if st.Phase != PhaseAnswering {
		t.Fatalf("new session phase = %q", st.Phase)
	}

	if _, found, _ := m.Do(token, 2, func(s *Session) bool { return s.Select(0) }); found {
		t.Fatal("another user's token accepted")
	}
	if _, found := m.Get("no-such-token", 1); found {
		t.Fatal("unknown token accepted")
	}

	st, found, applied := m.Do(token, 1, func(s *Session) bool { return s.Select(0) })
	if !found || !applied {
		t.Fatalf("owner action found=%v applied=%v", found, applied)
	}
	if st.Selected == nil || *st.Selected != 0 {
		t.Fatal("selection not reflected in state")
	}
}

func TestManagerRestartReplacesSession(t *testing.T) {
	m := NewManager()
	def := threeQuestionQuiz()

	oldToken, _ := m.Start(1, def, nil)
	newToken, _ := m.Start(1, def, nil)

	if _, found := m.Get(oldToken, 1); found {
		t.Fatal("stale session still reachable")
	}
	if _, found := m.Get(newToken, 1); !found {
		t.Fatal("replacement session missing")
	}
}

// runThrough drives the whole quiz via the manager, answering each question
// with the given option picker.
func runThrough(t *testing.T, m *Manager, token string, userID uint, pick func(i int) int) State {
	t.Helper()
	var st State
	for i := 0; i < 3; i++ {
		option := pick(i)
		if _, found, applied := m.Do(token, userID, func(s *Session) bool { return s.Select(option) }); !found || !applied {
			t.Fatalf("select question %d failed", i)
		}
		if _, found, applied := m.Do(token, userID, func(s *Session) bool { return s.Submit() }); !found || !applied {
			t.Fatalf("submit question %d failed", i)
		}
		var found, applied bool
		if st, found, applied = m.Do(token, userID, func(s *Session) bool { return s.Advance() }); !found || !applied {
			t.Fatalf("advance question %d failed", i)
		}
	}
	return st
}

func TestManagerEvictsPassedSession(t *testing.T) {
	m := NewManager()
	token, _ := m.Start(1, threeQuestionQuiz(), nil)

	corrects := []int{1, 0, 3}
	st := runThrough(t, m, token, 1, func(i int) int { return corrects[i] })
	if st.Phase != PhaseResults || st.Passed == nil || !*st.Passed {
		t.Fatalf("final state = %+v, want passed results", st)
	}

	// The result was delivered; the token is gone.
	if _, found := m.Get(token, 1); found {
		t.Fatal("passed session still held by the manager")
	}
}

func TestManagerKeepsFailedSessionForRetry(t *testing.T) {
	m := NewManager()
	token, _ := m.Start(1, threeQuestionQuiz(), nil)

	wrongs := []int{0, 1, 0}
	st := runThrough(t, m, token, 1, func(i int) int { return wrongs[i] })
	if st.Phase != PhaseResults || st.Passed == nil || *st.Passed {
		t.Fatalf("final state = %+v, want failed results", st)
	}

	st, found, applied := m.Do(token, 1, func(s *Session) bool { return s.Retry() })
	if !found || !applied {
		t.Fatalf("retry on failed session found=%v applied=%v", found, applied)
	}
	if st.Phase != PhaseAnswering {
		t.Fatalf("phase after retry = %q", st.Phase)
	}
}

func TestManagerSeparateModules(t *testing.T) {
	m := NewManager()
	defA := threeQuestionQuiz()
	defB := threeQuestionQuiz()
	defB.ModuleID = "4"

	tokenA, _ := m.Start(1, defA, nil)
	tokenB, _ := m.Start(1, defB, nil)

	if _, found := m.Get(tokenA, 1); !found {
		t.Fatal("session for module A evicted by module B")
	}
	if _, found := m.Get(tokenB, 1); !found {
		t.Fatal("session for module B missing")
	}
}
