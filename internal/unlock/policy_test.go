package unlock

import (
	"testing"

	"pairplay/internal/catalog"
)

func TestStarsLadder(t *testing.T) {
	easy := catalog.ThresholdsFor(catalog.DifficultyEasy)
	cases := []struct {
		moves int
		want  int
	}{
		{1, 3},
		{8, 3},
		{9, 2},
		{10, 2},
		{12, 2},
		{13, 1},
		{20, 1},
		{21, 0},
		{100, 0},
	}
	for _, tc := range cases {
		if got := Stars(tc.moves, easy); got != tc.want {
			t.Fatalf("Stars(%d) = %d, want %d", tc.moves, got, tc.want)
		}
	}
}

func TestStarsNonIncreasingInMoves(t *testing.T) {
	th := catalog.ThresholdsFor(catalog.DifficultyMedium)
	prev := 3
	for moves := 1; moves <= 60; moves++ {
		got := Stars(moves, th)
		if got > prev {
			t.Fatalf("rating rose from %d to %d at %d moves", prev, got, moves)
		}
		if got < 0 || got > 3 {
			t.Fatalf("rating out of range: %d", got)
		}
		prev = got
	}
}

func TestCategoryUnlockedGatesOnLifetime(t *testing.T) {
	cat := catalog.Category{ID: "fruits", UnlockRequirement: 6}
	if CategoryUnlocked(cat, 5) {
		t.Fatalf("5 lifetime stars must not open a 6-star category")
	}
	if !CategoryUnlocked(cat, 6) {
		t.Fatalf("6 lifetime stars must open a 6-star category")
	}
	free := catalog.Category{ID: "animals", UnlockRequirement: 0}
	if !CategoryUnlocked(free, 0) {
		t.Fatalf("zero-requirement category must always be open")
	}
}

func TestCanAfford(t *testing.T) {
	if !CanAfford(15, 15) {
		t.Fatalf("exact balance must afford")
	}
	if CanAfford(16, 15) {
		t.Fatalf("insufficient balance must not afford")
	}
}
