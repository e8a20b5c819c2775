package catalog

import (
	"context"
	"testing"

	"pairplay/internal/telemetry"
)

type staticSource []byte

func (s staticSource) Fetch(context.Context) ([]byte, error) {
	return []byte(s), nil
}

func testCatalog(t *testing.T, payload string) (*Catalog, error) {
	t.Helper()
	logger, err := telemetry.NewJSONLogger("")
	if err != nil {
		t.Fatal(err)
	}
	c := New(logger)
	return c, c.Initialize(context.Background(), staticSource(payload))
}

func TestInitializeEmbeddedData(t *testing.T) {
	logger, _ := telemetry.NewJSONLogger("")
	c := New(logger)
	if err := c.Initialize(context.Background(), EmbeddedSource{}); err != nil {
		t.Fatal(err)
	}
	cats := c.Categories()
	if len(cats) != 3 {
		t.Fatalf("bundled categories: %d, want 3", len(cats))
	}
	if cats[0].ID != "animals" || cats[0].UnlockRequirement != 0 {
		t.Fatalf("first category must be the free one: %+v", cats[0])
	}
	for _, cat := range cats {
		for _, lvl := range cat.Levels {
			if err := lvl.Validate(); err != nil {
				t.Fatalf("bundled level invalid: %v", err)
			}
		}
	}
}

func TestInitializeRejectsNonList(t *testing.T) {
	_, err := testCatalog(t, `{"id": "animals"}`)
	if err == nil {
		t.Fatalf("a non-list payload must be fatal")
	}
}

func TestInitializeDropsMalformedEntries(t *testing.T) {
	payload := `[
		{"id": "ok", "nameKey": "category.ok", "unlockRequirement": 0, "levels": [
			{"id": "ok-1", "levelNumber": 1, "rows": 2, "cols": 2, "pairCount": 2, "imagePaths": ["a", "b"]},
			{"id": "bad grid", "levelNumber": 2, "rows": 3, "cols": 3, "pairCount": 4, "imagePaths": ["a", "b", "c", "d"]}
		]},
		{"id": "MISSING NAME", "unlockRequirement": 0, "levels": []}
	]`
	c, err := testCatalog(t, payload)
	if err != nil {
		t.Fatalf("partial damage must not be fatal: %v", err)
	}
	cats := c.Categories()
	if len(cats) != 1 {
		t.Fatalf("kept %d categories, want 1", len(cats))
	}
	if len(cats[0].Levels) != 1 || cats[0].Levels[0].ID != "ok-1" {
		t.Fatalf("malformed level not dropped: %+v", cats[0].Levels)
	}
}

func TestLevelDefaultsApplied(t *testing.T) {
	payload := `[
		{"id": "cat", "nameKey": "category.cat", "unlockRequirement": 0, "levels": [
			{"id": "cat-1", "levelNumber": 1, "rows": 2, "cols": 2, "pairCount": 2, "imagePaths": ["a", "b"]}
		]}
	]`
	c, err := testCatalog(t, payload)
	if err != nil {
		t.Fatal(err)
	}
	lvl, ok := c.LevelByID("cat-1")
	if !ok {
		t.Fatalf("level not indexed")
	}
	if lvl.CategoryID != "cat" {
		t.Fatalf("categoryId default missing: %q", lvl.CategoryID)
	}
	if lvl.Difficulty != DifficultyEasy {
		t.Fatalf("difficulty default missing: %q", lvl.Difficulty)
	}
	if lvl.StarThresholds != ThresholdsFor(DifficultyEasy) {
		t.Fatalf("threshold default missing: %+v", lvl.StarThresholds)
	}
}

func TestNeighborWalksWithinCategory(t *testing.T) {
	logger, _ := telemetry.NewJSONLogger("")
	c := New(logger)
	if err := c.Initialize(context.Background(), EmbeddedSource{}); err != nil {
		t.Fatal(err)
	}

	next, ok := c.NextLevel("animals-1")
	if !ok || next.ID != "animals-2" {
		t.Fatalf("next of animals-1 = %q ok=%v", next.ID, ok)
	}
	prev, ok := c.PrevLevel("animals-2")
	if !ok || prev.ID != "animals-1" {
		t.Fatalf("prev of animals-2 = %q ok=%v", prev.ID, ok)
	}
	if _, ok := c.PrevLevel("animals-1"); ok {
		t.Fatalf("first level has no predecessor")
	}
	// The sequence must not cross into the next category.
	if _, ok := c.NextLevel("animals-4"); ok {
		t.Fatalf("last level of a category has no successor")
	}
	if _, ok := c.NextLevel("nope"); ok {
		t.Fatalf("unknown level has no neighbors")
	}
}

func TestLevelTotals(t *testing.T) {
	logger, _ := telemetry.NewJSONLogger("")
	c := New(logger)
	if err := c.Initialize(context.Background(), EmbeddedSource{}); err != nil {
		t.Fatal(err)
	}
	totals := c.LevelTotals()
	if totals["animals"] != 4 || totals["fruits"] != 3 || totals["vehicles"] != 3 {
		t.Fatalf("unexpected totals: %v", totals)
	}
}

func TestThresholdPresets(t *testing.T) {
	easy := ThresholdsFor(DifficultyEasy)
	if easy.ThreeStars != 8 || easy.TwoStars != 12 || easy.OneStar != 20 {
		t.Fatalf("easy preset: %+v", easy)
	}
	med := ThresholdsFor(DifficultyMedium)
	if med.ThreeStars != 12 || med.TwoStars != 18 || med.OneStar != 30 {
		t.Fatalf("medium preset: %+v", med)
	}
	hard := ThresholdsFor(DifficultyHard)
	if hard.ThreeStars != 16 || hard.TwoStars != 24 || hard.OneStar != 40 {
		t.Fatalf("hard preset: %+v", hard)
	}
}

func TestLoadCardBacks(t *testing.T) {
	backs, err := LoadCardBacks()
	if err != nil {
		t.Fatal(err)
	}
	if len(backs) < 2 {
		t.Fatalf("card back catalog too small: %d", len(backs))
	}
	if backs[0].ID != "default" || !backs[0].Default || backs[0].UnlockCost != 0 {
		t.Fatalf("first card back must be the free default: %+v", backs[0])
	}
	for _, b := range backs[1:] {
		if b.UnlockCost <= 0 {
			t.Fatalf("purchasable back %q must cost stars", b.ID)
		}
	}
}

func TestLevelValidateRejectsBadGrids(t *testing.T) {
	base := Level{ID: "x", CategoryID: "c", Rows: 2, Cols: 2, PairCount: 2, ImagePaths: []string{"a", "b"}}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid level rejected: %v", err)
	}

	odd := base
	odd.Rows, odd.Cols, odd.PairCount = 3, 3, 4
	odd.ImagePaths = []string{"a", "b", "c", "d"}
	if err := odd.Validate(); err == nil {
		t.Fatalf("odd cell count must be rejected")
	}

	tight := base
	tight.PairCount = 3
	tight.ImagePaths = []string{"a", "b", "c"}
	if err := tight.Validate(); err == nil {
		t.Fatalf("2x2 cannot hold 3 pairs")
	}

	short := base
	short.ImagePaths = []string{"a"}
	if err := short.Validate(); err == nil {
		t.Fatalf("too few images must be rejected")
	}
}
