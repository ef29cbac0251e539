package history

import (
	"testing"
	"time"
)

func strs() *Stack[string] { return New[string](0, nil) }

func TestStack_Linearity(t *testing.T) {
	st := strs()
	st.Commit("S1")
	st.Commit("S2")
	st.Commit("S3")

	for _, want := range []string{"S2", "S1"} {
		got, ok := st.Undo()
		if !ok || got != want {
			t.Fatalf("Undo = %q,%v want %q", got, ok, want)
		}
	}
	if got, ok := st.Redo(); !ok || got != "S2" {
		t.Fatalf("Redo = %q,%v want S2", got, ok)
	}

	st.Commit("S4")
	if st.CanRedo() {
		t.Fatalf("commit must clear redo")
	}
	if got, _ := st.Undo(); got != "S2" {
		t.Fatalf("Undo after S4 = %q, want S2", got)
	}
	if got, _ := st.Redo(); got != "S4" {
		t.Fatalf("Redo = %q, want S4 (S3 must be gone)", got)
	}
}

func TestStack_EmptyIsSafe(t *testing.T) {
	st := strs()
	if v, ok := st.Undo(); ok || v != "" {
		t.Fatalf("Undo on empty = %q,%v", v, ok)
	}
	if v, ok := st.Redo(); ok || v != "" {
		t.Fatalf("Redo on empty = %q,%v", v, ok)
	}
	st.Commit("only")
	if _, ok := st.Undo(); ok {
		t.Fatalf("single commit has nothing to undo to")
	}
}

func TestStack_Bounded(t *testing.T) {
	st := New[int](3, nil)
	for i := 0; i < 10; i++ {
		st.Commit(i)
	}
	if st.Len() != 3 {
		t.Fatalf("Len = %d, want 3", st.Len())
	}
	var last int
	for st.CanUndo() {
		last, _ = st.Undo()
	}
	if last != 6 {
		t.Fatalf("oldest kept = %d, want 6", last)
	}
}

func TestStack_Coalesce(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	st := New[string](0, nil, WithClock(clock), WithWindow(time.Second))

	st.Commit("base")
	st.CommitCoalesced("a:title", "H")
	now = now.Add(200 * time.Millisecond)
	st.CommitCoalesced("a:title", "He")
	now = now.Add(200 * time.Millisecond)
	st.CommitCoalesced("a:title", "Hello")

	if st.Len() != 1 {
		t.Fatalf("Len = %d, want 1 (typing should coalesce)", st.Len())
	}
	if got, _ := st.Undo(); got != "base" {
		t.Fatalf("Undo = %q, want base", got)
	}
	if got, _ := st.Redo(); got != "Hello" {
		t.Fatalf("Redo = %q, want Hello", got)
	}
}

func TestStack_CoalesceWindowAndBoundary(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	st := New[string](0, nil, WithClock(func() time.Time { return now }))

	st.CommitCoalesced("k", "1")
	now = now.Add(2 * time.Second)
	st.CommitCoalesced("k", "2") // window elapsed
	st.Boundary()
	st.CommitCoalesced("k", "3") // boundary closed the group
	st.CommitCoalesced("other", "4")

	if st.Len() != 3 {
		t.Fatalf("Len = %d, want 3", st.Len())
	}
}

func TestStack_SnapshotsAreCloned(t *testing.T) {
	clone := func(m map[string]string) map[string]string {
		out := make(map[string]string, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out
	}
	st := New[map[string]string](0, clone)

	live := map[string]string{"title": "a"}
	st.Commit(live)
	live["title"] = "mutated"
	st.Commit(live)

	got, _ := st.Undo()
	if got["title"] != "a" {
		t.Fatalf("history aliased the live map: %v", got)
	}
	got["title"] = "x"
	again, _ := st.Present()
	if again["title"] != "a" {
		t.Fatalf("Undo result aliased history: %v", again)
	}
}
