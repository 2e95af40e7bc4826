package store

import "testing"

func TestDeadlineBookSetGetRemove(t *testing.T) {
	book := &DeadlineBook{KV: NewMemoryKV()}

	if err := book.Set(3, "2026-06-01"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := book.Set(7, "2026-07-15"); err != nil {
		t.Fatalf("set: %v", err)
	}

	date, ok := book.Get(3)
	if !ok || date != "2026-06-01" {
		t.Fatalf("get = %q, %v", date, ok)
	}

	all, err := book.All()
	if err != nil || len(all) != 2 {
		t.Fatalf("all = %v, err = %v", all, err)
	}

	if err := book.Remove(3); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok := book.Get(3); ok {
		t.Fatal("removed deadline still present")
	}
	if _, ok := book.Get(7); !ok {
		t.Fatal("unrelated deadline lost")
	}
}

func TestDeadlineBookMissingCourse(t *testing.T) {
	book := &DeadlineBook{KV: NewMemoryKV()}

	if _, ok := book.Get(99); ok {
		t.Fatal("unset deadline reported present")
	}
}

func TestDeadlineBookCorruptMap(t *testing.T) {
	kv := NewMemoryKV()
	kv.Set("course_deadlines", "not a map")

	book := &DeadlineBook{KV: kv}
	all, err := book.All()
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("corrupt map yielded %v", all)
	}

	// Writes recover by replacing the corrupt entry
	if err := book.Set(1, "2026-01-01"); err != nil {
		t.Fatalf("set after corruption: %v", err)
	}
	if date, ok := book.Get(1); !ok || date != "2026-01-01" {
		t.Fatalf("get after recovery = %q, %v", date, ok)
	}
}
