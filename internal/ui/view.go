package ui

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/progress"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/harmonica"
	clog "github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
)

type applyMsg struct {
	fn func(*Root)
}

type drawMsg struct{}
type clockMsg time.Time
type animateMsg time.Time

type gameKeyMap struct {
	Move  key.Binding
	Flip  key.Binding
	Back  key.Binding
	Shop  key.Binding
	Stats key.Binding
	Quit  key.Binding
}

func (k gameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Flip, k.Back, k.Quit}
}

func (k gameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Move, k.Flip}, {k.Back, k.Shop, k.Stats, k.Quit}}
}

type Root struct {
	theme        Theme
	ascii        bool
	debug        bool
	ctrl         Controller
	styleVariant string
	motionLevel  string

	mu      sync.Mutex
	program *tea.Program
	running bool

	screen Screen
	layout LayoutMode
	cols   int
	rows   int

	menu      MenuState
	menuIndex int

	categories []CategoryRow
	catIndex   int

	levelsTitle string
	levels      []LevelRow
	levelIndex  int

	board  BoardState
	cursor int

	complete      CompleteState
	completeIndex int

	shop      ShopState
	shopIndex int

	stats      StatsState
	statsIndex int
	resetOpen  bool
	resetIndex int

	settings      SettingsState
	settingsIndex int

	howtoText string
	howtoOpen bool

	adOpen  bool
	adLabel string

	statusFlash string

	help       help.Model
	keymap     gameKeyMap
	unlockBar  progress.Model
	adSpin     spinner.Model
	markdown   *glamour.TermRenderer
	logger     *clog.Logger
	overlayPos float64
	overlayVel float64
	spring     harmonica.Spring

	drawPending atomic.Bool
}

type Options struct {
	ASCIIOnly    bool
	Debug        bool
	ThemeVariant string
	MotionLevel  string
}

func New(opts Options) *Root {
	logger := clog.NewWithOptions(os.Stderr, clog.Options{Prefix: "pairplay-ui", Level: clog.WarnLevel})
	if opts.Debug {
		logger.SetLevel(clog.DebugLevel)
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("light"),
		glamour.WithWordWrap(70),
	)
	if err != nil {
		renderer = nil
	}

	h := help.New()
	h.Styles = help.DefaultLightStyles()
	motionLevel := normalizeMotionLevel(opts.MotionLevel)
	styleVariant := normalizeThemeVariant(opts.ThemeVariant)
	theme := ThemeForVariant(styleVariant)
	if styleVariant == "dark" {
		h.Styles = help.DefaultDarkStyles()
	}
	spring := harmonica.NewSpring(harmonica.FPS(60), 10.0, 0.8)
	switch motionLevel {
	case "reduced":
		spring = harmonica.NewSpring(harmonica.FPS(30), 9.0, 0.92)
	case "off":
		spring = harmonica.NewSpring(harmonica.FPS(60), 1000.0, 1.0)
	}
	unlockBar := progress.New(
		progress.WithWidth(24),
		progress.WithColors(lipgloss.Color("#FFD93D"), lipgloss.Color("#6BCB77"), lipgloss.Color("#4D96FF")),
		progress.WithScaled(true),
	)
	if motionLevel == "off" {
		unlockBar.SetSpringOptions(1000.0, 1.0)
	}
	adSpin := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(theme.Accent),
	)

	r := &Root{
		theme:        theme,
		ascii:        opts.ASCIIOnly,
		debug:        opts.Debug,
		styleVariant: styleVariant,
		motionLevel:  motionLevel,
		screen:       ScreenMenu,
		layout:       LayoutWide,
		cols:         100,
		rows:         30,
		help:         h,
		unlockBar:    unlockBar,
		adSpin:       adSpin,
		markdown:     renderer,
		logger:       logger,
		spring:       spring,
	}
	r.keymap = gameKeyMap{
		Move:  key.NewBinding(key.WithKeys("up", "down", "left", "right"), key.WithHelp("↑↓←→", "move")),
		Flip:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "flip")),
		Back:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Shop:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "shop")),
		Stats: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "stats")),
		Quit:  key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
	}
	return r
}

func (r *Root) Init() tea.Cmd {
	return tea.Batch(clockTickCmd(), animateTickCmd(), spinnerTickCmd(r.adSpin))
}

func (r *Root) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer func() {
		if rec := recover(); rec != nil {
			r.onModelPanic("update", rec)
			model = r
			cmd = nil
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.cols = msg.Width
		r.rows = msg.Height
		r.layout = DetermineLayoutMode(r.cols, r.rows)
		return r, nil
	case applyMsg:
		if msg.fn != nil {
			msg.fn(r)
		}
		return r, r.animateIfNeeded()
	case drawMsg:
		r.drawPending.Store(false)
		return r, nil
	case clockMsg:
		return r, clockTickCmd()
	case animateMsg:
		target := 0.0
		if r.complete.Visible {
			target = 1.0
		}
		r.overlayPos, r.overlayVel = r.spring.Update(r.overlayPos, r.overlayVel, target)
		if r.shouldAnimate(target) {
			return r, animateTickCmd()
		}
		if target == 0 {
			r.overlayPos, r.overlayVel = 0, 0
		} else {
			r.overlayPos, r.overlayVel = 1, 0
		}
		return r, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		r.adSpin, cmd = r.adSpin.Update(msg)
		return r, cmd
	case progress.FrameMsg:
		var cmd tea.Cmd
		r.unlockBar, cmd = r.unlockBar.Update(msg)
		return r, cmd
	case tea.KeyPressMsg:
		return r.handleKey(msg)
	}
	return r, nil
}

func (r *Root) View() (view tea.View) {
	defer func() {
		if rec := recover(); rec != nil {
			r.onModelPanic("view", rec)
			width := max(1, r.cols)
			view = tea.NewView(r.theme.Bad.Width(width).Render("UI recovered from a rendering panic."))
		}
	}()

	if r.cols < 1 {
		r.cols = 100
	}
	if r.rows < 1 {
		r.rows = 30
	}

	if r.layout == LayoutTooSmall {
		panel := r.drawPanel("Resize Needed", []string{
			"The window is too small.",
			fmt.Sprintf("Current: %dx%d", r.cols, r.rows),
			"Minimum: 60x20",
		}, min(44, r.cols), min(8, r.rows))
		v := tea.NewView(lipgloss.Place(r.cols, r.rows, lipgloss.Center, lipgloss.Center, panel))
		v.AltScreen = true
		return v
	}

	var base string
	switch r.screen {
	case ScreenMenu:
		base = r.renderMenu()
	case ScreenCategories:
		base = r.renderCategories()
	case ScreenLevels:
		base = r.renderLevels()
	default:
		base = r.renderBoard()
	}

	if overlay := r.renderOverlay(); overlay != "" {
		base = composeOverlay(base, overlay, r.cols, r.rows)
	}
	v := tea.NewView(base)
	v.AltScreen = true
	return v
}

func (r *Root) Run() error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	p := tea.NewProgram(r)
	r.program = p
	r.running = true
	r.mu.Unlock()

	_, err := p.Run()

	r.mu.Lock()
	r.program = nil
	r.running = false
	r.mu.Unlock()
	return err
}

func (r *Root) Stop() {
	r.mu.Lock()
	p := r.program
	r.mu.Unlock()
	if p != nil {
		p.Quit()
	}
}

func (r *Root) SetController(c Controller) {
	r.ctrl = c
}

func (r *Root) SetScreen(screen Screen) {
	r.apply(func(m *Root) {
		m.screen = screen
		if screen == ScreenPlaying {
			m.cursor = 0
		}
	})
}

func (r *Root) SetMenuState(state MenuState) {
	r.apply(func(m *Root) {
		m.menu = state
		if m.menuIndex >= len(state.Items) {
			m.menuIndex = 0
		}
	})
}

func (r *Root) SetCategories(rows []CategoryRow) {
	r.apply(func(m *Root) {
		m.categories = append([]CategoryRow(nil), rows...)
		if m.catIndex >= len(m.categories) {
			m.catIndex = 0
		}
	})
}

func (r *Root) SetLevels(title string, rows []LevelRow) {
	r.apply(func(m *Root) {
		m.levelsTitle = title
		m.levels = append([]LevelRow(nil), rows...)
		if m.levelIndex >= len(m.levels) {
			m.levelIndex = 0
		}
	})
}

func (r *Root) SetBoard(state BoardState) {
	r.apply(func(m *Root) {
		m.board = state
		if m.cursor >= len(state.Cards) {
			m.cursor = 0
		}
	})
}

func (r *Root) SetComplete(state CompleteState) {
	r.apply(func(m *Root) {
		m.complete = state
		if !state.Visible {
			m.completeIndex = 0
		}
		if m.motionLevel == "off" {
			if state.Visible {
				m.overlayPos = 1
			} else {
				m.overlayPos = 0
			}
			m.overlayVel = 0
		}
	})
}

func (r *Root) SetShop(state ShopState) {
	r.apply(func(m *Root) {
		m.shop = state
		if m.shopIndex >= len(state.Rows) {
			m.shopIndex = 0
		}
	})
}

func (r *Root) SetStats(state StatsState) {
	r.apply(func(m *Root) {
		m.stats = state
		if !state.Visible {
			m.resetOpen = false
			m.resetIndex = 0
		}
	})
}

func (r *Root) SetSettings(state SettingsState) {
	r.apply(func(m *Root) {
		m.settings = state
		if m.settingsIndex >= len(state.Rows) {
			m.settingsIndex = 0
		}
	})
}

func (r *Root) SetHowTo(markdown string, open bool) {
	r.apply(func(m *Root) {
		m.howtoText = markdown
		m.howtoOpen = open
	})
}

func (r *Root) SetAdBreak(open bool, label string) {
	r.apply(func(m *Root) {
		m.adOpen = open
		m.adLabel = label
	})
}

// SetThemeVariant restyles the running UI in place.
func (r *Root) SetThemeVariant(variant string) {
	r.apply(func(m *Root) {
		m.styleVariant = normalizeThemeVariant(variant)
		m.theme = ThemeForVariant(m.styleVariant)
		if m.styleVariant == "dark" {
			m.help.Styles = help.DefaultDarkStyles()
		} else {
			m.help.Styles = help.DefaultLightStyles()
		}
	})
}

func (r *Root) FlashStatus(msg string) {
	r.apply(func(m *Root) {
		m.statusFlash = msg
	})
}

func (r *Root) RequestDraw() {
	r.mu.Lock()
	p := r.program
	running := r.running
	r.mu.Unlock()
	if !running || p == nil {
		return
	}
	if !r.drawPending.CompareAndSwap(false, true) {
		return
	}
	time.AfterFunc(16*time.Millisecond, func() {
		r.mu.Lock()
		p := r.program
		running := r.running
		r.mu.Unlock()
		if !running || p == nil {
			r.drawPending.Store(false)
			return
		}
		p.Send(drawMsg{})
	})
}

func (r *Root) apply(fn func(*Root)) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	p := r.program
	running := r.running
	if !running || p == nil {
		fn(r)
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	p.Send(applyMsg{fn: fn})
}

func (r *Root) dispatchController(fn func(Controller)) {
	if fn == nil || r.ctrl == nil {
		return
	}
	ctrl := r.ctrl
	go fn(ctrl)
}

func (r *Root) overlayActive() bool {
	return r.adOpen || r.resetOpen || r.complete.Visible || r.shop.Visible ||
		r.stats.Visible || r.settings.Visible || r.howtoOpen
}

func (r *Root) topOverlay() string {
	switch {
	case r.adOpen:
		return "ad"
	case r.resetOpen:
		return "reset"
	case r.complete.Visible:
		return "complete"
	case r.shop.Visible:
		return "shop"
	case r.stats.Visible:
		return "stats"
	case r.settings.Visible:
		return "settings"
	case r.howtoOpen:
		return "howto"
	default:
		return ""
	}
}

func (r *Root) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, r.keymap.Quit) {
		r.dispatchController(func(c Controller) { c.OnQuit() })
		return r, nil
	}

	if r.overlayActive() {
		return r.handleOverlayKey(msg)
	}

	switch r.screen {
	case ScreenMenu:
		return r.handleMenuKey(msg)
	case ScreenCategories:
		return r.handleCategoriesKey(msg)
	case ScreenLevels:
		return r.handleLevelsKey(msg)
	default:
		return r.handleBoardKey(msg)
	}
}

func (r *Root) handleOverlayKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	top := r.topOverlay()

	// The ad break cannot be dismissed by input; the app closes it.
	if top == "ad" {
		return r, nil
	}

	if msg.Code == tea.KeyEsc || (msg.Mod == 0 && (msg.Code == 'q' || msg.Code == 'Q')) {
		switch top {
		case "reset":
			r.resetOpen = false
		case "complete":
			r.dispatchController(func(c Controller) { c.OnBackToMenu() })
		case "shop", "stats", "settings", "howto":
			r.dispatchController(func(c Controller) { c.OnBackToMenu() })
		}
		return r, r.animateIfNeeded()
	}

	switch top {
	case "reset":
		switch msg.Code {
		case tea.KeyLeft, tea.KeyUp:
			r.resetIndex = 0
		case tea.KeyRight, tea.KeyDown, tea.KeyTab:
			r.resetIndex = 1
		case tea.KeyEnter:
			confirm := r.resetIndex == 1
			r.resetOpen = false
			r.resetIndex = 0
			if confirm {
				r.dispatchController(func(c Controller) { c.OnResetProgress() })
			}
		}
	case "complete":
		actions := r.complete.Actions
		switch msg.Code {
		case tea.KeyUp:
			r.completeIndex = wrapIndex(r.completeIndex-1, len(actions))
		case tea.KeyDown, tea.KeyTab:
			r.completeIndex = wrapIndex(r.completeIndex+1, len(actions))
		case tea.KeyEnter:
			r.activateCompleteAction()
		}
	case "shop":
		rows := r.shop.Rows
		switch msg.Code {
		case tea.KeyUp:
			r.shopIndex = wrapIndex(r.shopIndex-1, len(rows))
		case tea.KeyDown, tea.KeyTab:
			r.shopIndex = wrapIndex(r.shopIndex+1, len(rows))
		case tea.KeyEnter:
			if len(rows) == 0 {
				break
			}
			row := rows[wrapIndex(r.shopIndex, len(rows))]
			if row.Owned {
				r.dispatchController(func(c Controller) { c.OnSelectCardBack(row.ID) })
			} else {
				r.dispatchController(func(c Controller) { c.OnBuyCardBack(row.ID) })
			}
		}
	case "stats":
		switch msg.Code {
		case tea.KeyEnter:
			if r.stats.ResetLabel != "" {
				r.resetOpen = true
			}
		}
	case "settings":
		rows := r.settings.Rows
		switch msg.Code {
		case tea.KeyUp:
			r.settingsIndex = wrapIndex(r.settingsIndex-1, len(rows))
		case tea.KeyDown, tea.KeyTab:
			r.settingsIndex = wrapIndex(r.settingsIndex+1, len(rows))
		case tea.KeyEnter, tea.KeyLeft, tea.KeyRight:
			r.activateSettingRow()
		}
	}
	return r, nil
}

func (r *Root) activateCompleteAction() {
	actions := r.complete.Actions
	if len(actions) == 0 {
		return
	}
	switch wrapIndex(r.completeIndex, len(actions)) {
	case 0:
		if r.complete.HasNext {
			r.dispatchController(func(c Controller) { c.OnNextLevel() })
		} else {
			r.dispatchController(func(c Controller) { c.OnReplay() })
		}
	case 1:
		if r.complete.HasNext {
			r.dispatchController(func(c Controller) { c.OnReplay() })
		} else {
			r.dispatchController(func(c Controller) { c.OnBackToMenu() })
		}
	default:
		r.dispatchController(func(c Controller) { c.OnBackToMenu() })
	}
}

// Settings rows are positional: sound, music, language, theme. The app
// builds them in this order.
func (r *Root) activateSettingRow() {
	switch wrapIndex(r.settingsIndex, len(r.settings.Rows)) {
	case 0:
		r.dispatchController(func(c Controller) { c.OnToggleSound() })
	case 1:
		r.dispatchController(func(c Controller) { c.OnToggleMusic() })
	case 2:
		r.dispatchController(func(c Controller) { c.OnCycleLanguage() })
	case 3:
		r.dispatchController(func(c Controller) { c.OnCycleTheme() })
	}
}

func (r *Root) handleMenuKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	items := r.menu.Items
	switch msg.Code {
	case tea.KeyUp:
		r.menuIndex = wrapIndex(r.menuIndex-1, len(items))
	case tea.KeyDown, tea.KeyTab:
		r.menuIndex = wrapIndex(r.menuIndex+1, len(items))
	case tea.KeyEnter:
		r.activateMenuSelection()
	case tea.KeyEsc:
		r.dispatchController(func(c Controller) { c.OnQuit() })
	}
	return r, nil
}

// Menu items are positional: play, shop, stats, how-to, settings, quit.
func (r *Root) activateMenuSelection() {
	switch wrapIndex(r.menuIndex, len(r.menu.Items)) {
	case 0:
		r.dispatchController(func(c Controller) { c.OnPlay() })
	case 1:
		r.dispatchController(func(c Controller) { c.OnOpenShop() })
	case 2:
		r.dispatchController(func(c Controller) { c.OnOpenStats() })
	case 3:
		r.dispatchController(func(c Controller) { c.OnOpenHowTo() })
	case 4:
		r.dispatchController(func(c Controller) { c.OnOpenSettings() })
	case 5:
		r.dispatchController(func(c Controller) { c.OnQuit() })
	}
}

func (r *Root) handleCategoriesKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.Code {
	case tea.KeyEsc:
		r.dispatchController(func(c Controller) { c.OnBackToMenu() })
	case tea.KeyUp:
		r.catIndex = wrapIndex(r.catIndex-1, len(r.categories))
	case tea.KeyDown, tea.KeyTab:
		r.catIndex = wrapIndex(r.catIndex+1, len(r.categories))
	case tea.KeyEnter:
		if len(r.categories) == 0 {
			break
		}
		row := r.categories[wrapIndex(r.catIndex, len(r.categories))]
		if row.Locked {
			r.statusFlash = row.LockHint
			break
		}
		r.dispatchController(func(c Controller) { c.OnSelectCategory(row.ID) })
	}
	return r, nil
}

func (r *Root) handleLevelsKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.Code {
	case tea.KeyEsc:
		r.dispatchController(func(c Controller) { c.OnPlay() })
	case tea.KeyUp:
		r.levelIndex = wrapIndex(r.levelIndex-1, len(r.levels))
	case tea.KeyDown, tea.KeyTab:
		r.levelIndex = wrapIndex(r.levelIndex+1, len(r.levels))
	case tea.KeyEnter:
		if len(r.levels) == 0 {
			break
		}
		row := r.levels[wrapIndex(r.levelIndex, len(r.levels))]
		if row.Locked {
			r.statusFlash = "Locked"
			break
		}
		r.dispatchController(func(c Controller) { c.OnStartLevel(row.ID) })
	}
	return r, nil
}

func (r *Root) handleBoardKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	cols := max(1, r.board.Cols)
	total := len(r.board.Cards)
	switch msg.Code {
	case tea.KeyEsc:
		r.dispatchController(func(c Controller) { c.OnBackToMenu() })
	case tea.KeyLeft:
		if total > 0 {
			r.cursor = wrapIndex(r.cursor-1, total)
		}
	case tea.KeyRight:
		if total > 0 {
			r.cursor = wrapIndex(r.cursor+1, total)
		}
	case tea.KeyUp:
		if total > 0 && r.cursor-cols >= 0 {
			r.cursor -= cols
		}
	case tea.KeyDown:
		if total > 0 && r.cursor+cols < total {
			r.cursor += cols
		}
	case tea.KeyEnter, tea.KeySpace:
		idx := r.cursor
		r.dispatchController(func(c Controller) { c.OnFlip(idx) })
	}
	return r, nil
}

func (r *Root) renderMenu() string {
	w, h := r.cols, r.rows
	header := r.theme.Header.Width(max(1, w)).Render(firstNonEmptyStr(r.menu.Title, "PairPlay"))

	items := r.menu.Items
	menuLines := make([]string, 0, len(items))
	for i, item := range items {
		prefix := "  "
		if i == r.menuIndex {
			prefix = "> "
		}
		menuLines = append(menuLines, prefix+item)
	}
	if len(menuLines) == 0 {
		menuLines = []string{"Loading..."}
	}
	left := r.drawPanel("Menu", menuLines, min(32, max(22, w/3)), max(8, h-2))

	star := "*"
	if !r.ascii {
		star = "★"
	}
	infoLines := []string{
		fmt.Sprintf("%s Stars earned: %d", star, r.menu.LifetimeStars),
		fmt.Sprintf("%s Stars to spend: %d", star, r.menu.StarBalance),
		fmt.Sprintf("Daily streak: %d", r.menu.Streak),
		"",
		"Next unlock:",
		r.unlockBar.View(),
	}
	right := r.drawPanel("Progress", infoLines, max(20, w-lipgloss.Width(left)), max(8, h-2))
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return header + "\n" + body + "\n" + r.statusText()
}

// SetUnlockProgress animates the bar toward ratio in [0,1].
func (r *Root) SetUnlockProgress(ratio float64) {
	r.apply(func(m *Root) {
		if ratio < 0 {
			ratio = 0
		}
		if ratio > 1 {
			ratio = 1
		}
		m.unlockBar.SetPercent(ratio)
	})
}

func (r *Root) renderCategories() string {
	w, h := r.cols, r.rows
	header := r.theme.Header.Width(max(1, w)).Render("Pick a category")

	lines := make([]string, 0, len(r.categories))
	for i, c := range r.categories {
		prefix := "  "
		if i == r.catIndex {
			prefix = "> "
		}
		label := fmt.Sprintf("%s%s %s  %s", prefix, c.Glyph, c.Name, c.Progress)
		if c.Locked {
			label = r.theme.Locked.Render(fmt.Sprintf("%s%s %s  (%s)", prefix, c.Glyph, c.Name, c.LockHint))
		}
		lines = append(lines, label)
	}
	if len(lines) == 0 {
		lines = []string{"No categories loaded."}
	}
	panel := r.drawPanel("Categories", lines, min(56, max(30, w/2)), max(8, h-2))
	return header + "\n" + lipgloss.Place(w, max(1, h-2), lipgloss.Center, lipgloss.Top, panel) + "\n" + r.statusText()
}

func (r *Root) renderLevels() string {
	w, h := r.cols, r.rows
	header := r.theme.Header.Width(max(1, w)).Render(r.levelsTitle)

	star, hollow := "★", "☆"
	if r.ascii {
		star, hollow = "*", "."
	}
	lines := make([]string, 0, len(r.levels))
	for i, lv := range r.levels {
		prefix := "  "
		if i == r.levelIndex {
			prefix = "> "
		}
		stars := strings.Repeat(star, lv.Stars) + strings.Repeat(hollow, 3-lv.Stars)
		label := fmt.Sprintf("%s%s  %s  %s", prefix, lv.Name, lv.Grid, stars)
		if lv.Locked {
			label = r.theme.Locked.Render(prefix + lv.Name + "  (locked)")
		}
		lines = append(lines, label)
	}
	if len(lines) == 0 {
		lines = []string{"No levels in this category."}
	}
	panel := r.drawPanel("Levels", lines, min(56, max(30, w/2)), max(8, h-2))
	return header + "\n" + lipgloss.Place(w, max(1, h-2), lipgloss.Center, lipgloss.Top, panel) + "\n" + r.statusText()
}

func (r *Root) renderBoard() string {
	w, h := r.cols, r.rows
	title := strings.TrimSpace(r.board.CategoryName + " / " + r.board.LevelName)
	header := r.theme.Header.Width(max(1, w)).Render(trimForWidth(title, max(1, w-1)))

	grid := r.renderGrid()
	hud := fmt.Sprintf("Moves: %d   Matched: %d/%d", r.board.Moves, r.board.Matched, r.board.Pairs)
	if r.board.StatusLine != "" {
		hud += "   " + r.board.StatusLine
	}
	body := lipgloss.JoinVertical(lipgloss.Center, grid, "", r.theme.PanelBody.Render(hud))
	placed := lipgloss.Place(w, max(1, h-2), lipgloss.Center, lipgloss.Center, body)
	return header + "\n" + placed + "\n" + r.statusText()
}

func (r *Root) renderGrid() string {
	cols := max(1, r.board.Cols)
	rows := make([]string, 0, r.board.Rows)
	var line []string
	for i, card := range r.board.Cards {
		line = append(line, r.renderCard(i, card))
		if len(line) == cols {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, line...))
			line = nil
		}
	}
	if len(line) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, line...))
	}
	if len(rows) == 0 {
		return "Dealing cards..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (r *Root) renderCard(index int, card CardView) string {
	glyph := r.board.CardBackGlyph
	if glyph == "" || r.ascii {
		glyph = "?"
	}
	style := r.theme.CardDown
	switch {
	case card.Matched:
		glyph = card.Glyph
		style = r.theme.CardMatched
	case card.Wrong:
		glyph = card.Glyph
		style = r.theme.CardWrong
	case card.FaceUp:
		glyph = card.Glyph
		style = r.theme.CardUp
	}
	if index == r.cursor && !card.Matched {
		style = r.theme.CardCursor
	}
	return style.Render(" " + glyph + " ")
}

func (r *Root) renderOverlay() string {
	spec, ok := r.overlaySpec(r.topOverlay())
	if !ok {
		return ""
	}
	return r.drawPanel(spec.title, spec.lines, spec.width, spec.height)
}

type overlaySpec struct {
	title  string
	lines  []string
	width  int
	height int
}

func (r *Root) overlaySpec(top string) (overlaySpec, bool) {
	if top == "" {
		return overlaySpec{}, false
	}
	w := min(max(48, r.cols-20), r.cols)
	h := min(max(10, r.rows/2), max(8, r.rows-4))

	star := "★"
	if r.ascii {
		star = "*"
	}

	var title string
	var lines []string
	switch top {
	case "ad":
		title = "Break"
		lines = []string{
			strings.TrimSpace(r.adSpin.View() + " " + firstNonEmptyStr(r.adLabel, "A short break...")),
		}
	case "reset":
		title = "Confirm Reset"
		lines = []string{"This wipes every star and level. Continue?", ""}
		labels := []string{"Cancel", "Reset"}
		for i, label := range labels {
			prefix := "  "
			if i == r.resetIndex {
				prefix = "> "
			}
			lines = append(lines, prefix+label)
		}
	case "complete":
		title = firstNonEmptyStr(r.complete.Title, "Level Complete")
		if r.complete.LevelName != "" {
			lines = append(lines, r.complete.LevelName)
		}
		lines = append(lines, strings.Repeat(star, r.complete.Stars))
		lines = append(lines, fmt.Sprintf("Moves: %d", r.complete.Moves))
		if r.complete.Bonus != "" {
			lines = append(lines, r.complete.Bonus)
		}
		lines = append(lines, "")
		for i, a := range r.complete.Actions {
			prefix := "  "
			if i == r.completeIndex {
				prefix = "> "
			}
			lines = append(lines, prefix+a)
		}
	case "shop":
		title = firstNonEmptyStr(r.shop.Title, "Card Shop")
		lines = append(lines, fmt.Sprintf("%s %d", star, r.shop.Balance), "")
		for i, row := range r.shop.Rows {
			prefix := "  "
			if i == r.shopIndex {
				prefix = "> "
			}
			tag := fmt.Sprintf("%d %s", row.Cost, star)
			if row.Selected {
				tag = "selected"
			} else if row.Owned {
				tag = "owned"
			}
			lines = append(lines, fmt.Sprintf("%s%s %s  [%s]", prefix, row.Glyph, row.Name, tag))
		}
		lines = append(lines, "", "Enter: buy or select   Esc: close")
	case "stats":
		title = firstNonEmptyStr(r.stats.Title, "Statistics")
		lines = append(lines, r.stats.Lines...)
		if len(r.stats.Achievements) > 0 {
			lines = append(lines, "")
			for _, a := range r.stats.Achievements {
				mark := " "
				if a.Unlocked {
					mark = "v"
					if !r.ascii {
						mark = "✓"
					}
				}
				lines = append(lines, fmt.Sprintf("[%s] %s %s", mark, a.Glyph, a.Name))
			}
		}
		if r.stats.ResetLabel != "" {
			lines = append(lines, "", "Enter: "+r.stats.ResetLabel)
		}
		lines = append(lines, "Esc: close")
	case "settings":
		title = firstNonEmptyStr(r.settings.Title, "Settings")
		for i, row := range r.settings.Rows {
			prefix := "  "
			if i == r.settingsIndex {
				prefix = "> "
			}
			lines = append(lines, fmt.Sprintf("%s%s: %s", prefix, row.Label, row.Value))
		}
		lines = append(lines, "", "Enter: change   Esc: close")
	case "howto":
		title = "How to Play"
		text := r.howtoText
		if r.markdown != nil {
			if rendered, err := r.markdown.Render(text); err == nil {
				text = strings.TrimSpace(rendered)
			}
		}
		lines = strings.Split(strings.TrimSuffix(text, "\n"), "\n")
		lines = append(lines, "", "Esc: close")
	default:
		return overlaySpec{}, false
	}
	if len(lines) == 0 {
		lines = []string{"(empty)"}
	}
	needH := len(lines) + 2
	maxH := max(8, r.rows-4)
	if needH > h {
		h = min(needH, maxH)
	}
	if top == "complete" && r.motionLevel != "off" {
		scaled := int(float64(h) * maxFloat(r.overlayPos, 0.2))
		if scaled >= 4 {
			h = min(h, scaled)
		}
	}
	return overlaySpec{title: title, lines: lines, width: w, height: h}, true
}

func (r *Root) statusText() string {
	keys := r.help.View(r.keymap)
	if keys == "" {
		keys = "arrows move  enter flip  esc back  ctrl+q quit"
	}
	if r.statusFlash != "" {
		keys += " | " + r.statusFlash
	}
	keys = trimForWidth(keys, max(1, r.cols-1))
	return r.theme.Status.Width(max(1, r.cols)).Render(keys)
}

func (r *Root) drawPanel(title string, lines []string, width, height int) string {
	width = max(4, width)
	height = max(3, height)
	innerW := width - 2
	innerH := height - 2

	hBar := "─"
	v := "│"
	tl, tr, bl, br := "┌", "┐", "└", "┘"
	if r.ascii {
		hBar = "-"
		v = "|"
		tl, tr, bl, br = "+", "+", "+", "+"
	}

	top := tl + strings.Repeat(hBar, innerW) + tr
	if title != "" && innerW > 2 {
		t := " " + title + " "
		runes := []rune(top)
		start := 1
		for i, ch := range []rune(t) {
			pos := start + i
			if pos >= len(runes)-1 {
				break
			}
			runes[pos] = ch
		}
		top = string(runes)
	}

	body := make([]string, 0, innerH)
	for i := 0; i < innerH; i++ {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		body = append(body, v+padRune(line, innerW)+v)
	}
	bottom := bl + strings.Repeat(hBar, innerW) + br
	return strings.Join(append(append([]string{top}, body...), bottom), "\n")
}

func (r *Root) animateIfNeeded() tea.Cmd {
	target := 0.0
	if r.complete.Visible {
		target = 1.0
	}
	if r.shouldAnimate(target) {
		return animateTickCmd()
	}
	return nil
}

func (r *Root) shouldAnimate(target float64) bool {
	if r.motionLevel == "off" {
		return false
	}
	return abs(r.overlayPos-target) > 0.01 || abs(r.overlayVel) > 0.01
}

func (r *Root) onModelPanic(where string, recovered any) {
	if r.statusFlash == "" {
		r.statusFlash = "Recovered UI panic"
	}
	r.logger.Error("ui panic", "where", where, "error", fmt.Sprintf("%v", recovered))
}

func clockTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return clockMsg(t) })
}

func animateTickCmd() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return animateMsg(t) })
}

func spinnerTickCmd(model spinner.Model) tea.Cmd {
	return func() tea.Msg {
		return model.Tick()
	}
}

func firstNonEmptyStr(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}

func wrapIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	if i < 0 {
		i = n - 1
	}
	if i >= n {
		i = 0
	}
	return i
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func padRune(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(strings.ReplaceAll(s, "\t", "    "))
	if len(r) > width {
		r = r[:width]
	}
	if len(r) < width {
		r = append(r, []rune(strings.Repeat(" ", width-len(r)))...)
	}
	return string(r)
}

func trimForWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(strings.ReplaceAll(ansi.Strip(s), "\n", " "))
	if len(r) <= width {
		return string(r)
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

func composeOverlay(base, overlay string, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return base
	}
	base = ansi.Strip(base)
	overlay = ansi.Strip(overlay)
	baseLines := strings.Split(base, "\n")
	if len(baseLines) < rows {
		pad := make([]string, rows-len(baseLines))
		baseLines = append(baseLines, pad...)
	}
	for i := 0; i < rows; i++ {
		baseLines[i] = padRune(baseLines[i], cols)
	}

	overlayLines := strings.Split(strings.TrimRight(overlay, "\n"), "\n")
	if len(overlayLines) == 0 {
		return strings.Join(baseLines[:rows], "\n")
	}
	ow := 1
	for _, line := range overlayLines {
		lw := len([]rune(line))
		if lw > ow {
			ow = lw
		}
	}
	if ow > cols {
		ow = cols
	}
	oh := len(overlayLines)
	if oh > rows {
		oh = rows
		overlayLines = overlayLines[:rows]
	}
	startRow := (rows - oh) / 2
	startCol := (cols - ow) / 2
	for i, line := range overlayLines {
		row := startRow + i
		if row < 0 || row >= rows {
			continue
		}
		baseRunes := []rune(baseLines[row])
		lineRunes := []rune(padRune(line, ow))
		for j, ch := range lineRunes {
			pos := startCol + j
			if pos < 0 || pos >= len(baseRunes) {
				continue
			}
			baseRunes[pos] = ch
		}
		baseLines[row] = string(baseRunes)
	}
	return strings.Join(baseLines[:rows], "\n")
}

func normalizeThemeVariant(v string) string {
	switch strings.TrimSpace(v) {
	case "light", "dark":
		return strings.TrimSpace(v)
	default:
		return "light"
	}
}

func normalizeMotionLevel(v string) string {
	switch strings.TrimSpace(v) {
	case "off", "reduced", "full":
		return strings.TrimSpace(v)
	default:
		return "full"
	}
}
