package progress

import "testing"

func testModules() []ModuleView {
	return []ModuleView{
		{ID: "1", Title: "Intro", HasQuiz: true},
		{ID: "2", Title: "Basics", HasQuiz: false},
		{ID: "3", Title: "Advanced", HasQuiz: true},
	}
}

func TestEvaluateEmptyRecord(t *testing.T) {
	states := Evaluate(testModules(), EmptyRecord())

	if states[0] != StateAvailable {
		t.Fatalf("first module = %q, want available", states[0])
	}
	if states[1] != StateLocked || states[2] != StateLocked {
		t.Fatalf("later modules = %q, %q, want locked", states[1], states[2])
	}
}

func TestEvaluateUnlocksAfterCompletion(t *testing.T) {
	rec := EmptyRecord()
	rec.ModuleProgress = append(rec.ModuleProgress, ModuleProgress{
		ModuleID:       "1",
		VideoCompleted: true,
		Quiz:           &QuizProgress{Completed: true, Score: 80, Passed: true},
	})

	states := Evaluate(testModules(), rec)
	if states[0] != StateCompleted {
		t.Fatalf("module 1 = %q, want completed", states[0])
	}
	if states[1] != StateAvailable {
		t.Fatalf("module 2 = %q, want available", states[1])
	}
	if states[2] != StateLocked {
		t.Fatalf("module 3 = %q, want locked", states[2])
	}
}

func TestEvaluateVideoAloneDoesNotUnlockNext(t *testing.T) {
	rec := EmptyRecord()
	rec.ModuleProgress = append(rec.ModuleProgress, ModuleProgress{
		ModuleID:       "1",
		VideoCompleted: true,
		Quiz:           &QuizProgress{Completed: true, Score: 40, Passed: false},
	})

	states := Evaluate(testModules(), rec)
	if states[0] != StateAvailable {
		t.Fatalf("module with failed quiz = %q, want available", states[0])
	}
	if states[1] != StateLocked {
		t.Fatalf("next module = %q, want locked", states[1])
	}
}

func TestEvaluateEveryModuleBeforeUnlockedIsCompleted(t *testing.T) {
	rec := EmptyRecord()
	for _, id := range []string{"1", "2"} {
		rec.ModuleProgress = append(rec.ModuleProgress, ModuleProgress{
			ModuleID:       id,
			VideoCompleted: true,
			Quiz:           &QuizProgress{Completed: true, Score: 100, Passed: true},
		})
	}

	states := Evaluate(testModules(), rec)
	for i, st := range states {
		if st == StateLocked {
			continue
		}
		for j := 0; j < i; j++ {
			if states[j] != StateCompleted {
				t.Fatalf("module %d is %q but module %d is %q", i, st, j, states[j])
			}
		}
	}
}

func TestApplyVideoCompleteAutoPassesQuizlessModule(t *testing.T) {
	rec := EmptyRecord()
	ApplyVideoComplete(&rec, ModuleView{ID: "2", HasQuiz: false})

	mp := rec.Find("2")
	if mp == nil {
		t.Fatal("no entry created")
	}
	if !mp.VideoCompleted {
		t.Fatal("video not marked complete")
	}
	if mp.Quiz == nil || !mp.Quiz.Passed || mp.Quiz.Score != 100 || !mp.Quiz.Completed {
		t.Fatalf("auto-pass record wrong: %+v", mp.Quiz)
	}
}

func TestApplyVideoCompleteIdempotent(t *testing.T) {
	rec := EmptyRecord()
	view := ModuleView{ID: "1", HasQuiz: true}

	ApplyVideoComplete(&rec, view)
	ApplyVideoComplete(&rec, view)

	if len(rec.ModuleProgress) != 1 {
		t.Fatalf("entries = %d, want 1", len(rec.ModuleProgress))
	}
	if rec.Find("1").Quiz != nil {
		t.Fatal("quiz state created for module that has a quiz")
	}
}

func TestApplyVideoCompleteKeepsExistingQuizResult(t *testing.T) {
	rec := EmptyRecord()
	ApplyQuizResult(&rec, "2", 60, false)
	ApplyVideoComplete(&rec, ModuleView{ID: "2", HasQuiz: false})

	mp := rec.Find("2")
	if mp.Quiz.Score != 60 || mp.Quiz.Passed {
		t.Fatalf("existing quiz result overwritten: %+v", mp.Quiz)
	}
}

func TestApplyQuizResultReplacesPriorAttempt(t *testing.T) {
	rec := EmptyRecord()
	ApplyQuizResult(&rec, "1", 40, false)
	ApplyQuizResult(&rec, "1", 80, true)

	mp := rec.Find("1")
	if mp.Quiz.Score != 80 || !mp.Quiz.Passed {
		t.Fatalf("quiz result = %+v, want latest attempt", mp.Quiz)
	}
}

func TestApplyQuizResultKeepsStoredPass(t *testing.T) {
	rec := EmptyRecord()
	ApplyQuizResult(&rec, "1", 80, true)
	ApplyQuizResult(&rec, "1", 20, false)

	mp := rec.Find("1")
	if mp.Quiz.Score != 80 || !mp.Quiz.Passed {
		t.Fatalf("stored pass downgraded by a later attempt: %+v", mp.Quiz)
	}
}

func TestSummarize(t *testing.T) {
	rec := EmptyRecord()
	rec.ModuleProgress = append(rec.ModuleProgress, ModuleProgress{
		ModuleID:       "1",
		VideoCompleted: true,
		Quiz:           &QuizProgress{Completed: true, Score: 100, Passed: true},
	})

	s := Summarize(testModules(), rec)
	if s.CompletedModules != 1 || s.TotalModules != 3 {
		t.Fatalf("counts = %d/%d", s.CompletedModules, s.TotalModules)
	}
	if s.Percent != 33 {
		t.Fatalf("percent = %d, want 33", s.Percent)
	}
	if s.CourseComplete {
		t.Fatal("course reported complete")
	}
}

func TestSummarizeFullCourse(t *testing.T) {
	rec := EmptyRecord()
	for _, id := range []string{"1", "2", "3"} {
		rec.ModuleProgress = append(rec.ModuleProgress, ModuleProgress{
			ModuleID:       id,
			VideoCompleted: true,
			Quiz:           &QuizProgress{Completed: true, Score: 100, Passed: true},
		})
	}

	s := Summarize(testModules(), rec)
	if !s.CourseComplete || s.Percent != 100 {
		t.Fatalf("summary = %+v, want complete at 100%%", s)
	}
}

func TestSummarizeEmptyCourse(t *testing.T) {
	s := Summarize(nil, EmptyRecord())
	if s.CourseComplete || s.Percent != 0 {
		t.Fatalf("empty course summary = %+v", s)
	}
}

func TestStateOfUnknownModule(t *testing.T) {
	_, err := StateOf(testModules(), EmptyRecord(), "99")
	if err != ErrModuleNotFound {
		t.Fatalf("err = %v, want ErrModuleNotFound", err)
	}
}
