package snapshot

import "testing"

func TestAllocatorSequence(t *testing.T) {
	alloc := NewAllocator()

	want := []string{"e1", "e2", "e3"}
	for _, w := range want {
		if got := alloc.Next(); got != w {
			t.Fatalf("Next() = %q, want %q", got, w)
		}
	}

	alloc.Reset()

	if got := alloc.Next(); got != "e1" {
		t.Fatalf("Next() after Reset = %q, want %q", got, "e1")
	}
}

func TestAllocatorsAreIndependent(t *testing.T) {
	a := NewAllocator()
	b := NewAllocator()

	a.Next()
	a.Next()

	if got := b.Next(); got != "e1" {
		t.Fatalf("second allocator Next() = %q, want %q", got, "e1")
	}
}

func TestDuplicateTracker(t *testing.T) {
	tracker := NewDuplicateTracker()

	if got := tracker.NextIndex("button", "Save"); got != 0 {
		t.Fatalf("first NextIndex = %d, want 0", got)
	}

	if got := tracker.NextIndex("button", "Save"); got != 1 {
		t.Fatalf("second NextIndex = %d, want 1", got)
	}

	if got := tracker.NextIndex("button", "Cancel"); got != 0 {
		t.Fatalf("different name NextIndex = %d, want 0", got)
	}

	if got := tracker.NextIndex("link", "Save"); got != 0 {
		t.Fatalf("different role NextIndex = %d, want 0", got)
	}

	if got := tracker.Count("button", "Save"); got != 2 {
		t.Fatalf("Count = %d, want 2", got)
	}

	if got := tracker.Count("button", "Missing"); got != 0 {
		t.Fatalf("Count for unseen pair = %d, want 0", got)
	}
}
