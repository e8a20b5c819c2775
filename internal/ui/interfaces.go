package ui

// Controller receives user intent from the view. Implementations may block;
// the view dispatches every call on its own goroutine.
type Controller interface {
	OnPlay()
	OnSelectCategory(categoryID string)
	OnStartLevel(levelID string)
	OnFlip(index int)
	OnNextLevel()
	OnReplay()
	OnBackToMenu()
	OnOpenShop()
	OnBuyCardBack(id string)
	OnSelectCardBack(id string)
	OnOpenStats()
	OnResetProgress()
	OnOpenSettings()
	OnToggleSound()
	OnToggleMusic()
	OnCycleLanguage()
	OnCycleTheme()
	OnOpenHowTo()
	OnWatchRewarded()
	OnQuit()
}

// View is the surface the app drives. Every Set method is safe to call from
// any goroutine.
type View interface {
	Run() error
	Stop()
	SetController(Controller)
	SetScreen(Screen)
	SetMenuState(MenuState)
	SetCategories(rows []CategoryRow)
	SetLevels(title string, rows []LevelRow)
	SetBoard(BoardState)
	SetComplete(CompleteState)
	SetShop(ShopState)
	SetStats(StatsState)
	SetSettings(SettingsState)
	SetHowTo(markdown string, open bool)
	SetAdBreak(open bool, label string)
	FlashStatus(msg string)
}

type Screen int

const (
	ScreenMenu Screen = iota
	ScreenCategories
	ScreenLevels
	ScreenPlaying
)

type LayoutMode int

const (
	LayoutWide LayoutMode = iota
	LayoutCompact
	LayoutTooSmall
)

type MenuState struct {
	Title         string
	LifetimeStars int
	StarBalance   int
	Streak        int
	Items         []string
}

type CategoryRow struct {
	ID       string
	Name     string
	Glyph    string
	Locked   bool
	LockHint string
	Progress string
}

type LevelRow struct {
	ID        string
	Name      string
	Grid      string
	Stars     int
	Locked    bool
	Completed bool
}

// CardView is one cell of the playing grid.
type CardView struct {
	Glyph   string
	FaceUp  bool
	Matched bool
	Wrong   bool
}

type BoardState struct {
	LevelName     string
	CategoryName  string
	Rows          int
	Cols          int
	Cards         []CardView
	CardBackGlyph string
	Moves         int
	Matched       int
	Pairs         int
	Locked        bool
	StatusLine    string
}

type CompleteState struct {
	Visible   bool
	Title     string
	Stars     int
	Moves     int
	Bonus     string
	Actions   []string
	HasNext   bool
	LevelName string
}

type ShopRow struct {
	ID       string
	Name     string
	Glyph    string
	Cost     int
	Owned    bool
	Selected bool
}

type ShopState struct {
	Visible bool
	Title   string
	Balance int
	Rows    []ShopRow
}

type StatsState struct {
	Visible      bool
	Title        string
	Lines        []string
	Achievements []AchievementRow
	ResetLabel   string
}

type AchievementRow struct {
	Glyph    string
	Name     string
	Unlocked bool
}

type SettingsState struct {
	Visible bool
	Title   string
	Rows    []SettingRow
}

type SettingRow struct {
	Label string
	Value string
}
