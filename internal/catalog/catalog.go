package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"pairplay/internal/telemetry"
)

// Source supplies the raw category payload: the bundled default data, or an
// HTTP endpoint when the game ships remote level updates.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// HTTPSource GETs the category list, cache-busted per call.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	url := fmt.Sprintf("%s?t=%d", s.URL, time.Now().UnixMilli())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch categories: unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// Catalog indexes the category/level reference data once at startup and
// serves read-only lookups after that.
type Catalog struct {
	logger *telemetry.JSONLogger

	categories []Category
	byCategory map[string]Category
	byLevel    map[string]Level
}

func New(logger *telemetry.JSONLogger) *Catalog {
	return &Catalog{
		logger:     logger,
		byCategory: map[string]Category{},
		byLevel:    map[string]Level{},
	}
}

// Initialize fetches and indexes the payload. A top-level value that is not a
// JSON array is fatal; individual malformed categories or levels are dropped
// with a warning and the rest of the catalog survives.
func (c *Catalog) Initialize(ctx context.Context, src Source) error {
	payload, err := src.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(payload, &entries); err != nil {
		return fmt.Errorf("categories payload is not a list: %w", err)
	}

	c.categories = c.categories[:0]
	for _, entry := range entries {
		var cat Category
		if err := json.Unmarshal(entry, &cat); err != nil {
			c.logger.Warn("catalog.category_dropped", map[string]any{"error": err.Error()})
			continue
		}
		if err := cat.Validate(); err != nil {
			c.logger.Warn("catalog.category_dropped", map[string]any{"error": err.Error()})
			continue
		}
		kept := make([]Level, 0, len(cat.Levels))
		for _, lvl := range cat.Levels {
			applyLevelDefaults(&lvl, cat.ID)
			if err := lvl.Validate(); err != nil {
				c.logger.Warn("catalog.level_dropped", map[string]any{"category": cat.ID, "error": err.Error()})
				continue
			}
			kept = append(kept, lvl)
		}
		cat.Levels = kept
		c.categories = append(c.categories, cat)
	}

	c.byCategory = make(map[string]Category, len(c.categories))
	c.byLevel = map[string]Level{}
	for _, cat := range c.categories {
		c.byCategory[cat.ID] = cat
		for _, lvl := range cat.Levels {
			c.byLevel[lvl.ID] = lvl
		}
	}
	c.logger.Info("catalog.initialized", map[string]any{
		"categories": len(c.categories), "levels": len(c.byLevel),
	})
	return nil
}

// Categories returns the play-order list.
func (c *Catalog) Categories() []Category {
	return append([]Category(nil), c.categories...)
}

func (c *Catalog) CategoryByID(id string) (Category, bool) {
	cat, ok := c.byCategory[id]
	return cat, ok
}

func (c *Catalog) LevelByID(id string) (Level, bool) {
	lvl, ok := c.byLevel[id]
	return lvl, ok
}

// LevelTotals maps category id to its level count, for completion stats.
func (c *Catalog) LevelTotals() map[string]int {
	totals := make(map[string]int, len(c.categories))
	for _, cat := range c.categories {
		totals[cat.ID] = len(cat.Levels)
	}
	return totals
}

// NextLevel walks forward within the owning category's array order. The
// sequence never crosses category boundaries.
func (c *Catalog) NextLevel(levelID string) (Level, bool) {
	return c.neighbor(levelID, +1)
}

func (c *Catalog) PrevLevel(levelID string) (Level, bool) {
	return c.neighbor(levelID, -1)
}

func (c *Catalog) neighbor(levelID string, step int) (Level, bool) {
	lvl, ok := c.byLevel[levelID]
	if !ok {
		return Level{}, false
	}
	cat, ok := c.byCategory[lvl.CategoryID]
	if !ok {
		return Level{}, false
	}
	for i, candidate := range cat.Levels {
		if candidate.ID != levelID {
			continue
		}
		j := i + step
		if j < 0 || j >= len(cat.Levels) {
			return Level{}, false
		}
		return cat.Levels[j], true
	}
	return Level{}, false
}
