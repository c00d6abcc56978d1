package setutil

import (
	"sort"
	"testing"
)

func TestNewUintSet(t *testing.T) {
	s := NewUintSet()

	if s == nil {
		t.Fatal("NewUintSet() returned nil")
	}
	if s.Len() != 0 {
		t.Errorf("NewUintSet().Len() = %d, want 0", s.Len())
	}
}

func TestNewUintSetFrom(t *testing.T) {
	tests := []struct {
		name    string
		ids     []uint
		wantLen int
	}{
		{"empty input", []uint{}, 0},
		{"distinct ids", []uint{1, 2, 3}, 3},
		{"duplicate ids collapse", []uint{1, 1, 2, 2, 2}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewUintSetFrom(tt.ids)
			if s.Len() != tt.wantLen {
				t.Errorf("NewUintSetFrom(%v).Len() = %d, want %d", tt.ids, s.Len(), tt.wantLen)
			}
			for _, id := range tt.ids {
				if !s.Has(id) {
					t.Errorf("Has(%d) = false, want true", id)
				}
			}
		})
	}
}

func TestUintSet_AddAndHas(t *testing.T) {
	s := NewUintSet()

	s.Add(42)
	if !s.Has(42) {
		t.Error("Has(42) = false after Add(42), want true")
	}
	if s.Has(7) {
		t.Error("Has(7) = true, want false")
	}

	s.Add(42)
	if s.Len() != 1 {
		t.Errorf("Len() = %d after duplicate Add, want 1", s.Len())
	}
}

func TestUintSet_AddAll(t *testing.T) {
	s := NewUintSet()
	s.Add(1)
	s.AddAll([]uint{1, 2, 3})

	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
}

func TestUintSet_ToSlice(t *testing.T) {
	s := NewUintSetFrom([]uint{3, 1, 2})

	got := s.ToSlice()
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })

	want := []uint{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("ToSlice() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ToSlice()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestStringSet(t *testing.T) {
	s := NewStringSetFrom([]string{"course-1", "course-2", "course-1"})

	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if !s.Has("course-1") {
		t.Error("Has(course-1) = false, want true")
	}
	if s.Has("course-3") {
		t.Error("Has(course-3) = true, want false")
	}

	s.Add("course-3")
	if !s.Has("course-3") {
		t.Error("Has(course-3) = false after Add, want true")
	}

	got := s.ToSlice()
	if len(got) != 3 {
		t.Errorf("ToSlice() len = %d, want 3", len(got))
	}
}
