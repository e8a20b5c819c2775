// Package app is the composition root: it wires storage, the progression
// ledger, the catalog, achievements, ads, narration, and the TUI together,
// and implements the ui.Controller contract that drives a round.
package app

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"pairplay/internal/achievement"
	"pairplay/internal/ads"
	"pairplay/internal/analytics"
	"pairplay/internal/catalog"
	"pairplay/internal/i18n"
	"pairplay/internal/narrator"
	"pairplay/internal/progress"
	"pairplay/internal/round"
	"pairplay/internal/storage"
	"pairplay/internal/telemetry"
	"pairplay/internal/ui"
	"pairplay/internal/unlock"
)

// narrationDelay is the window the board stays locked while a flipped card is
// announced.
const narrationDelay = 500 * time.Millisecond

type App struct {
	cfg Config

	logger   *telemetry.JSONLogger
	kv       *storage.SQLiteKV
	store    *storage.Store
	ledger   *progress.Ledger
	catalog  *catalog.Catalog
	backs    []catalog.CardBack
	tracker  *achievement.Tracker
	recorder *analytics.Recorder
	ads      ads.Provider
	speaker  narrator.Speaker
	tr       *i18n.Translator

	view *ui.Root
	rng  *rand.Rand

	sessionID    string
	sessionStart time.Time

	mu           sync.Mutex
	engine       *round.Engine
	level        catalog.Level
	categoryID   string
	settings     progress.Settings
	themeVariant string
}

func New(cfg Config) (*App, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, err
	}

	logger, err := telemetry.NewJSONLogger(cfg.LogPath)
	if err != nil {
		return nil, err
	}

	kv, err := storage.NewSQLiteKV(filepath.Join(cfg.DataDir, "pairplay.db"))
	if err != nil {
		_ = logger.Close()
		return nil, err
	}
	store := storage.NewStore(kv, logger)
	ledger := progress.NewLedger(store, logger)

	settings := progress.DefaultSettings()
	store.Load(storage.KeySettings, progress.ValidSettings, &settings)

	tr, err := i18n.New(settings.Language)
	if err != nil {
		_ = kv.Close()
		_ = logger.Close()
		return nil, err
	}

	cat := catalog.New(logger)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	var src catalog.Source = catalog.EmbeddedSource{}
	if cfg.CatalogURL != "" {
		src = catalog.HTTPSource{URL: cfg.CatalogURL}
	}
	if err := cat.Initialize(ctx, src); err != nil {
		if cfg.CatalogURL == "" {
			_ = kv.Close()
			_ = logger.Close()
			return nil, err
		}
		// Remote catalog failures fall back to the bundled data.
		logger.Warn("catalog.remote_failed", map[string]any{"url": cfg.CatalogURL, "error": err.Error()})
		if err := cat.Initialize(ctx, catalog.EmbeddedSource{}); err != nil {
			_ = kv.Close()
			_ = logger.Close()
			return nil, err
		}
	}
	if len(cat.Categories()) == 0 {
		_ = kv.Close()
		_ = logger.Close()
		return nil, fmt.Errorf("no playable categories in catalog")
	}

	backs, err := catalog.LoadCardBacks()
	if err != nil {
		_ = kv.Close()
		_ = logger.Close()
		return nil, err
	}
	defs, err := achievement.LoadDefinitions()
	if err != nil {
		_ = kv.Close()
		_ = logger.Close()
		return nil, err
	}

	themeVariant := cfg.UI.ThemeVariant
	store.Load(storage.KeyTheme, nil, &themeVariant)
	if themeVariant != "light" && themeVariant != "dark" {
		themeVariant = cfg.UI.ThemeVariant
	}

	stub := ads.NewStub()
	stub.Latency = time.Duration(cfg.Ads.LatencyMS) * time.Millisecond

	view := ui.New(ui.Options{
		ASCIIOnly:    cfg.ASCIIOnly,
		Debug:        cfg.Debug,
		ThemeVariant: themeVariant,
		MotionLevel:  cfg.UI.MotionLevel,
	})

	a := &App{
		cfg:          cfg,
		logger:       logger,
		kv:           kv,
		store:        store,
		ledger:       ledger,
		catalog:      cat,
		backs:        backs,
		tracker:      achievement.NewTracker(store, logger, defs),
		recorder:     analytics.NewRecorder(store),
		ads:          stub,
		speaker:      narrator.Noop{},
		tr:           tr,
		view:         view,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		sessionID:    uuid.NewString(),
		sessionStart: time.Now(),
		settings:     settings,
		themeVariant: themeVariant,
	}
	view.SetController(a)
	return a, nil
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Info("app.start", map[string]any{
		"session": a.sessionID, "language": a.settings.Language, "theme": a.themeVariant,
	})
	a.syncMenu()
	a.view.SetScreen(ui.ScreenMenu)
	return a.view.Run()
}

func (a *App) Close() {
	a.ledger.AddPlayTime(time.Since(a.sessionStart))
	a.logger.Info("app.stop", map[string]any{"session": a.sessionID})
	_ = a.kv.Close()
	_ = a.logger.Close()
}

// --- menu and navigation ---

func (a *App) syncMenu() {
	p := a.ledger.Progress()
	a.view.SetMenuState(ui.MenuState{
		Title:         a.tr.T("menu.title"),
		LifetimeStars: p.LifetimeStars,
		StarBalance:   p.StarBalance,
		Streak:        p.CurrentStreak,
		Items: []string{
			a.tr.T("menu.play"),
			a.tr.T("menu.shop"),
			a.tr.T("menu.stats"),
			a.tr.T("menu.howto"),
			a.tr.T("menu.settings"),
			a.tr.T("menu.quit"),
		},
	})
	a.view.SetUnlockProgress(a.nextUnlockRatio(p.LifetimeStars))
}

// nextUnlockRatio measures progress toward the cheapest still-locked
// category; 1.0 when everything is open.
func (a *App) nextUnlockRatio(lifetimeStars int) float64 {
	next := 0
	for _, cat := range a.catalog.Categories() {
		if unlock.CategoryUnlocked(cat, lifetimeStars) {
			continue
		}
		if next == 0 || cat.UnlockRequirement < next {
			next = cat.UnlockRequirement
		}
	}
	if next == 0 {
		return 1
	}
	return float64(lifetimeStars) / float64(next)
}

func (a *App) OnPlay() {
	a.closeOverlays()
	a.syncCategories()
	a.view.SetScreen(ui.ScreenCategories)
}

func (a *App) syncCategories() {
	p := a.ledger.Progress()
	rows := make([]ui.CategoryRow, 0)
	for _, cat := range a.catalog.Categories() {
		done := 0
		for _, lvl := range cat.Levels {
			if lp, ok := p.LevelProgress[lvl.ID]; ok && lp.Completed {
				done++
			}
		}
		row := ui.CategoryRow{
			ID:       cat.ID,
			Name:     a.tr.T(cat.NameKey),
			Glyph:    cat.Icon,
			Progress: a.tr.T("category.progress", map[string]any{"done": done, "total": len(cat.Levels)}),
		}
		if !unlock.CategoryUnlocked(cat, p.LifetimeStars) {
			row.Locked = true
			row.LockHint = a.tr.T("category.locked", map[string]any{"stars": cat.UnlockRequirement})
		}
		rows = append(rows, row)
	}
	a.view.SetCategories(rows)
}

func (a *App) OnSelectCategory(categoryID string) {
	cat, ok := a.catalog.CategoryByID(categoryID)
	if !ok {
		return
	}
	p := a.ledger.Progress()
	if !unlock.CategoryUnlocked(cat, p.LifetimeStars) {
		a.view.FlashStatus(a.tr.T("category.locked", map[string]any{"stars": cat.UnlockRequirement}))
		return
	}
	a.mu.Lock()
	a.categoryID = categoryID
	a.mu.Unlock()
	a.recorder.Track(analytics.EventCategorySelect, map[string]any{"category": categoryID})
	a.syncLevels(cat)
	a.view.SetScreen(ui.ScreenLevels)
}

func (a *App) syncLevels(cat catalog.Category) {
	p := a.ledger.Progress()
	rows := make([]ui.LevelRow, 0, len(cat.Levels))
	for _, lvl := range cat.Levels {
		lp := p.LevelProgress[lvl.ID]
		rows = append(rows, ui.LevelRow{
			ID:        lvl.ID,
			Name:      fmt.Sprintf("%d", lvl.Number),
			Grid:      fmt.Sprintf("%dx%d", lvl.Rows, lvl.Cols),
			Stars:     lp.Stars,
			Completed: lp.Completed,
			Locked:    !a.levelUnlocked(lvl, p),
		})
	}
	a.view.SetLevels(a.tr.T(cat.NameKey), rows)
}

// levelUnlocked applies sequential progression: the first level of an open
// category is playable, each later one needs its predecessor completed.
func (a *App) levelUnlocked(lvl catalog.Level, p progress.Progress) bool {
	prev, ok := a.catalog.PrevLevel(lvl.ID)
	if !ok {
		return true
	}
	lp, ok := p.LevelProgress[prev.ID]
	return ok && lp.Completed
}

func (a *App) OnBackToMenu() {
	a.closeOverlays()
	a.ads.HideBanner()
	a.mu.Lock()
	a.engine = nil
	a.mu.Unlock()
	a.syncMenu()
	a.view.SetScreen(ui.ScreenMenu)
}

func (a *App) closeOverlays() {
	a.view.SetComplete(ui.CompleteState{})
	a.view.SetShop(ui.ShopState{})
	a.view.SetStats(ui.StatsState{})
	a.view.SetSettings(ui.SettingsState{})
	a.view.SetHowTo("", false)
	a.view.SetAdBreak(false, "")
}

func (a *App) OnQuit() {
	a.view.Stop()
}

// --- round lifecycle ---

func (a *App) OnStartLevel(levelID string) {
	a.startLevel(levelID)
}

func (a *App) startLevel(levelID string) {
	lvl, ok := a.catalog.LevelByID(levelID)
	if !ok {
		return
	}
	p := a.ledger.Progress()
	if !a.levelUnlocked(lvl, p) {
		a.view.FlashStatus(a.tr.T("level.locked"))
		return
	}

	a.mu.Lock()
	engine, err := round.New(lvl, a.rng)
	if err != nil {
		a.mu.Unlock()
		a.logger.Error("round.deal_failed", map[string]any{"level": levelID, "error": err.Error()})
		return
	}
	a.engine = engine
	a.level = lvl
	a.categoryID = lvl.CategoryID
	a.mu.Unlock()

	a.recorder.Track(analytics.EventLevelStart, map[string]any{
		"level": lvl.ID, "category": lvl.CategoryID, "difficulty": lvl.Difficulty,
	})
	a.logger.Info("round.started", map[string]any{"level": lvl.ID, "pairs": lvl.PairCount})

	if a.cfg.Ads.Enabled {
		a.ads.ShowBanner()
	}
	a.closeOverlays()
	a.syncBoard("")
	a.view.SetScreen(ui.ScreenPlaying)
}

func (a *App) syncBoard(status string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.syncBoardLocked(status)
}

func (a *App) syncBoardLocked(status string) {
	if a.engine == nil {
		return
	}
	lvl := a.engine.Level()
	cat, _ := a.catalog.CategoryByID(lvl.CategoryID)
	cards := a.engine.Cards()
	views := make([]ui.CardView, 0, len(cards))
	for _, c := range cards {
		views = append(views, ui.CardView{
			Glyph:   glyphFor(c.Image, a.cfg.ASCIIOnly),
			FaceUp:  c.State != round.FaceDown,
			Matched: c.State == round.Matched,
			Wrong:   c.Wrong,
		})
	}
	a.view.SetBoard(ui.BoardState{
		LevelName:     fmt.Sprintf("%d", lvl.Number),
		CategoryName:  a.tr.T(cat.NameKey),
		Rows:          lvl.Rows,
		Cols:          lvl.Cols,
		Cards:         views,
		CardBackGlyph: a.selectedBackGlyph(),
		Moves:         a.engine.Moves(),
		Matched:       a.engine.Matches(),
		Pairs:         a.engine.TotalPairs(),
		Locked:        a.engine.InputLocked(),
		StatusLine:    status,
	})
}

func (a *App) selectedBackGlyph() string {
	selected := a.ledger.Progress().SelectedCardBack
	for _, b := range a.backs {
		if b.ID == selected {
			return b.Glyph
		}
	}
	return "?"
}

func (a *App) OnFlip(index int) {
	a.mu.Lock()
	if a.engine == nil || !a.engine.Flip(index) {
		a.mu.Unlock()
		return
	}
	image := a.engine.FlippedImage()
	sound := a.settings.SoundEnabled
	language := a.settings.Language
	a.syncBoardLocked("")
	a.mu.Unlock()

	if sound {
		ctx, cancel := context.WithTimeout(context.Background(), narrationDelay)
		defer cancel()
		name := a.tr.T("card." + image)
		if err := a.speaker.Speak(ctx, name, narrator.LocaleFor(language)); err != nil {
			a.logger.Warn("narration.failed", map[string]any{"card": image, "error": err.Error()})
		}
	}
	time.AfterFunc(narrationDelay, a.afterNarration)
}

func (a *App) afterNarration() {
	a.mu.Lock()
	if a.engine == nil {
		a.mu.Unlock()
		return
	}
	a.engine.NarrationDone()
	if a.engine.Phase() != round.PhaseEvaluating {
		a.syncBoardLocked("")
		a.mu.Unlock()
		return
	}

	res, ok := a.engine.Evaluate()
	a.syncBoardLocked("")
	a.mu.Unlock()
	if !ok {
		return
	}

	switch {
	case res.Complete:
		time.AfterFunc(round.LevelCompleteDelay, a.finishRound)
	case res.AdBreak:
		go a.runAdBreak()
	case res.Matched:
		time.AfterFunc(round.MatchPauseDelay, func() {
			a.mu.Lock()
			if a.engine != nil {
				a.engine.MatchPauseDone()
				a.syncBoardLocked("")
			}
			a.mu.Unlock()
		})
	default:
		time.AfterFunc(round.WrongMatchDelay, func() {
			a.mu.Lock()
			if a.engine != nil {
				a.engine.ResolveMismatch()
				a.syncBoardLocked("")
			}
			a.mu.Unlock()
		})
	}
}

// runAdBreak shows the interstitial window between the cadence match and the
// next flip. Provider errors only shorten the break.
func (a *App) runAdBreak() {
	a.view.SetAdBreak(true, a.tr.T("ad.loading"))
	a.recorder.Track(analytics.EventAdShow, map[string]any{"placement": "interstitial"})
	if a.cfg.Ads.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.ads.ShowInterstitial(ctx); err != nil {
			a.logger.Warn("ads.interstitial_failed", map[string]any{"error": err.Error()})
		}
		cancel()
	}
	a.view.SetAdBreak(false, "")

	a.mu.Lock()
	if a.engine != nil {
		a.engine.AdBreakDone()
		a.syncBoardLocked("")
	}
	a.mu.Unlock()
}

func (a *App) finishRound() {
	a.mu.Lock()
	if a.engine == nil {
		a.mu.Unlock()
		return
	}
	summary, ok := a.engine.ConsumeCompletion()
	levelNumber := a.level.Number
	a.mu.Unlock()
	if !ok {
		return
	}

	a.ledger.RecordLevelCompletion(summary.LevelID, summary.CategoryID, summary.Moves, summary.Stars)
	if summary.FastMatches > 0 {
		a.ledger.AddFastMatches(summary.FastMatches)
	}
	a.recorder.Track(analytics.EventLevelComplete, map[string]any{
		"level": summary.LevelID, "moves": summary.Moves, "stars": summary.Stars,
		"elapsedMs": summary.Elapsed.Milliseconds(),
	})

	bonus := a.checkAchievements()
	_, hasNext := a.catalog.NextLevel(summary.LevelID)

	actions := []string{a.tr.T("complete.replay"), a.tr.T("complete.menu")}
	if hasNext {
		actions = []string{a.tr.T("complete.next"), a.tr.T("complete.replay"), a.tr.T("complete.menu")}
	}
	a.view.SetComplete(ui.CompleteState{
		Visible:   true,
		Title:     a.tr.T("complete.title"),
		LevelName: a.tr.T("level.label", map[string]any{"number": levelNumber}),
		Stars:     summary.Stars,
		Moves:     summary.Moves,
		Bonus:     bonus,
		Actions:   actions,
		HasNext:   hasNext,
	})
	a.syncMenu()
}

// checkAchievements evaluates the post-write snapshot, credits rewards, and
// returns a display line for the completion overlay.
func (a *App) checkAchievements() string {
	p := a.ledger.Progress()
	stats := achievement.Stats{
		LevelsCompleted:     p.LevelsCompleted,
		LifetimeStars:       p.LifetimeStars,
		ThreeStarLevels:     a.ledger.ThreeStarLevels(),
		CategoriesCompleted: a.ledger.CategoriesCompleted(a.catalog.LevelTotals()),
		TotalCategories:     len(a.catalog.Categories()),
		CurrentStreak:       p.CurrentStreak,
		FastMatches:         p.FastMatches,
	}
	newly := a.tracker.Check(stats)
	if len(newly) == 0 {
		return ""
	}
	names := make([]string, 0, len(newly))
	for _, def := range newly {
		a.ledger.GrantBonusStars(def.Reward)
		names = append(names, def.Glyph+" "+a.tr.T(def.NameKey))
	}
	return a.tr.T("achievement.unlocked", map[string]any{"name": strings.Join(names, ", ")})
}

func (a *App) OnNextLevel() {
	a.mu.Lock()
	current := a.level.ID
	a.mu.Unlock()
	next, ok := a.catalog.NextLevel(current)
	if !ok {
		a.OnBackToMenu()
		return
	}
	a.startLevel(next.ID)
}

func (a *App) OnReplay() {
	a.mu.Lock()
	current := a.level.ID
	a.mu.Unlock()
	a.startLevel(current)
}

// --- shop ---

func (a *App) OnOpenShop() {
	a.view.SetShop(a.buildShop())
}

func (a *App) buildShop() ui.ShopState {
	p := a.ledger.Progress()
	rows := make([]ui.ShopRow, 0, len(a.backs))
	for _, b := range a.backs {
		owned := b.Default
		for _, id := range p.UnlockedCardBacks {
			if id == b.ID {
				owned = true
			}
		}
		rows = append(rows, ui.ShopRow{
			ID:       b.ID,
			Name:     a.tr.T(b.NameKey),
			Glyph:    b.Glyph,
			Cost:     b.UnlockCost,
			Owned:    owned,
			Selected: b.ID == p.SelectedCardBack,
		})
	}
	return ui.ShopState{
		Visible: true,
		Title:   a.tr.T("shop.title"),
		Balance: p.StarBalance,
		Rows:    rows,
	}
}

func (a *App) OnBuyCardBack(id string) {
	var cost int
	found := false
	for _, b := range a.backs {
		if b.ID == id {
			cost = b.UnlockCost
			found = true
		}
	}
	if !found {
		return
	}
	p := a.ledger.Progress()
	if !unlock.CanAfford(cost, p.StarBalance) {
		a.view.FlashStatus(a.tr.T("shop.poor"))
		a.view.SetShop(a.buildShop())
		return
	}
	if a.ledger.SpendStars(cost, id) {
		a.ledger.SelectCardBack(id)
	}
	a.view.SetShop(a.buildShop())
	a.syncMenu()
}

func (a *App) OnSelectCardBack(id string) {
	a.ledger.SelectCardBack(id)
	a.view.SetShop(a.buildShop())
}

// --- stats / parent panel ---

func (a *App) OnOpenStats() {
	a.view.SetStats(a.buildStats())
}

func (a *App) buildStats() ui.StatsState {
	p := a.ledger.Progress()
	lines := []string{
		a.tr.T("stats.levels", map[string]any{"count": p.LevelsCompleted}),
		a.tr.T("stats.stars", map[string]any{"stars": p.LifetimeStars}),
		a.tr.T("stats.balance", map[string]any{"stars": p.StarBalance}),
		a.tr.T("stats.streak", map[string]any{"days": p.CurrentStreak}),
		a.tr.T("stats.playtime", map[string]any{"minutes": int(p.PlayTime().Minutes())}),
	}
	rows := make([]ui.AchievementRow, 0, len(a.tracker.Definitions()))
	for _, def := range a.tracker.Definitions() {
		rows = append(rows, ui.AchievementRow{
			Glyph:    def.Glyph,
			Name:     a.tr.T(def.NameKey),
			Unlocked: a.tracker.IsUnlocked(def.ID),
		})
	}
	return ui.StatsState{
		Visible:      true,
		Title:        a.tr.T("stats.title"),
		Lines:        lines,
		Achievements: rows,
		ResetLabel:   a.tr.T("stats.reset"),
	}
}

func (a *App) OnResetProgress() {
	a.ledger.ResetAll()
	a.tracker.Reset()
	a.logger.Info("app.progress_reset", map[string]any{"session": a.sessionID})
	a.view.SetStats(a.buildStats())
	a.syncMenu()
}

// --- settings ---

func (a *App) OnOpenSettings() {
	a.view.SetSettings(a.buildSettings())
}

func (a *App) buildSettings() ui.SettingsState {
	a.mu.Lock()
	settings := a.settings
	variant := a.themeVariant
	a.mu.Unlock()

	onOff := func(v bool) string {
		if v {
			return a.tr.T("settings.on")
		}
		return a.tr.T("settings.off")
	}
	return ui.SettingsState{
		Visible: true,
		Title:   a.tr.T("settings.title"),
		Rows: []ui.SettingRow{
			{Label: a.tr.T("settings.sound"), Value: onOff(settings.SoundEnabled)},
			{Label: a.tr.T("settings.music"), Value: onOff(settings.MusicEnabled)},
			{Label: a.tr.T("settings.language"), Value: settings.Language},
			{Label: a.tr.T("settings.theme"), Value: variant},
		},
	}
}

func (a *App) saveSettings(field string) {
	a.mu.Lock()
	settings := a.settings
	a.mu.Unlock()
	a.store.Save(storage.KeySettings, settings)
	a.recorder.Track(analytics.EventSettingsChange, map[string]any{"setting": field})
	a.view.SetSettings(a.buildSettings())
}

func (a *App) OnToggleSound() {
	a.mu.Lock()
	a.settings.SoundEnabled = !a.settings.SoundEnabled
	a.mu.Unlock()
	a.saveSettings("sound")
}

func (a *App) OnToggleMusic() {
	a.mu.Lock()
	a.settings.MusicEnabled = !a.settings.MusicEnabled
	a.mu.Unlock()
	a.saveSettings("music")
}

func (a *App) OnCycleLanguage() {
	a.mu.Lock()
	if a.settings.Language == "tr" {
		a.settings.Language = "en"
	} else {
		a.settings.Language = "tr"
	}
	language := a.settings.Language
	a.mu.Unlock()
	a.tr.SetLanguage(language)
	a.saveSettings("language")
	a.syncMenu()
}

func (a *App) OnCycleTheme() {
	a.mu.Lock()
	if a.themeVariant == "light" {
		a.themeVariant = "dark"
	} else {
		a.themeVariant = "light"
	}
	variant := a.themeVariant
	a.mu.Unlock()
	a.store.Save(storage.KeyTheme, variant)
	a.recorder.Track(analytics.EventSettingsChange, map[string]any{"setting": "theme"})
	a.view.SetThemeVariant(variant)
	a.view.SetSettings(a.buildSettings())
}

// --- extras ---

func (a *App) OnOpenHowTo() {
	a.view.SetHowTo(howToMarkdown, true)
}

// OnWatchRewarded grants a bonus star for a completed rewarded ad (parent
// initiated; the button lives outside the child flow).
func (a *App) OnWatchRewarded() {
	a.recorder.Track(analytics.EventAdShow, map[string]any{"placement": "rewarded"})
	granted := false
	if a.cfg.Ads.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		ok, err := a.ads.ShowRewarded(ctx)
		if err != nil {
			a.logger.Warn("ads.rewarded_failed", map[string]any{"error": err.Error()})
		}
		granted = ok && err == nil
	}
	if !granted {
		return
	}
	a.ledger.GrantBonusStars(1)
	a.recorder.Track(analytics.EventAdReward, map[string]any{"stars": 1})
	a.view.FlashStatus(a.tr.T("ad.reward"))
	a.syncMenu()
}
