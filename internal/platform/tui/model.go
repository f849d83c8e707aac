package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/slingarcade/sling/internal/config"
	"github.com/slingarcade/sling/internal/core"
	"github.com/slingarcade/sling/internal/level"
	"github.com/slingarcade/sling/internal/session"
	"github.com/slingarcade/sling/internal/storage"
)

// Model is the Bubble Tea model driving one game session: title
// screen, levels, and end-of-run flow all live inside the session; the
// model translates terminal input and persists results.
type Model struct {
	session    *session.Session
	screen     *core.Screen
	store      *storage.Store
	runtime    core.RuntimeConfig
	keys       *KeyMapper
	sink       *statusSink
	inputFrame core.InputFrame
	gameState  core.GameState
	dragging   bool
	lastPhase  string
	runStart   time.Time
	runSaved   bool
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the game.
func NewModel(store *storage.Store, runtime core.RuntimeConfig, cfg config.SlingConfig) Model {
	// Use time-based seed if not specified
	if runtime.Seed == 0 {
		runtime.Seed = time.Now().UnixNano()
	}

	sink := &statusSink{}
	return Model{
		session:    session.New(cfg, runtime.Seed, sink),
		screen:     core.NewScreen(runtime.ScreenW, runtime.ScreenH),
		store:      store,
		runtime:    runtime,
		keys:       NewKeyMapper(),
		sink:       sink,
		inputFrame: core.NewInputFrame(),
		lastPhase:  session.PhaseMenu,
	}
}

// StartAt skips the title screen and drops straight into a level.
func (m *Model) StartAt(number int) {
	m.session.StartLevel(number)
	m.lastPhase = session.PhasePlaying
	m.runStart = time.Now()
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The title screen has its own bindings for the level list.
	if m.session.Phase() == session.PhaseMenu {
		switch m.keys.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionUp:
			m.session.SelectLevel(m.session.Level() - 1)
		case MenuActionDown:
			m.session.SelectLevel(m.session.Level() + 1)
		case MenuActionSelect:
			m.inputFrame.Set(core.ActionConfirm)
		}
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.saveRun("quit")
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleMouse translates terminal mouse events into world-space
// pointer events for the slingshot.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	snap := m.session.Snapshot()
	v := newViewport(snap.WorldW, snap.WorldH, m.screen.Width(), m.screen.Height())
	pos := v.world(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.inputFrame.AddPointer(core.PointerDown, pos)
			m.dragging = true
		}
	case tea.MouseActionMotion:
		if m.dragging {
			m.inputFrame.AddPointer(core.PointerMove, pos)
		}
	case tea.MouseActionRelease:
		if m.dragging {
			m.inputFrame.AddPointer(core.PointerUp, pos)
			m.dragging = false
		}
	}
	return m, nil
}

// handleResize processes window resize events. The simulation runs in
// a fixed world space, so only the screen buffer changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick advances the simulation and persists results on phase
// transitions.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.session.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()
	m.sink.age()

	phase := m.gameState.Phase
	if phase != m.lastPhase {
		m.onPhaseChange(m.lastPhase, phase)
		m.lastPhase = phase
	}

	return m, tickCmd(m.runtime.TickRate)
}

// onPhaseChange saves scores and campaign runs exactly once per
// transition.
func (m *Model) onPhaseChange(from, to string) {
	switch to {
	case session.PhasePlaying:
		if from == session.PhaseMenu {
			m.runStart = time.Now()
			m.runSaved = false
		}
	case session.PhaseLevelComplete:
		if m.store != nil && m.gameState.Score > 0 {
			//nolint:errcheck // Best-effort save
			m.store.SaveScore(m.gameState.Level, m.gameState.Score)
		}
	case session.PhaseGameOver:
		if m.store != nil && m.gameState.Score > 0 {
			//nolint:errcheck // Best-effort save
			m.store.SaveScore(m.gameState.Level, m.gameState.Score)
		}
		m.saveRun("gameover")
	case session.PhaseCompleted:
		m.saveRun("completed")
	}
}

// saveRun records the campaign outcome. No-op once saved or before any
// level started.
func (m *Model) saveRun(reason string) {
	if m.store == nil || m.runSaved || m.runStart.IsZero() {
		return
	}
	cleared := m.gameState.Level - 1
	if reason == "completed" {
		cleared = level.Count()
	}
	if cleared < 0 {
		cleared = 0
	}
	//nolint:errcheck // Best-effort save
	m.store.SaveCampaignRun(storage.CampaignRun{
		LevelsCleared: cleared,
		GlobalScore:   m.gameState.GlobalScore,
		EndReason:     reason,
		DurationSecs:  int(time.Since(m.runStart).Seconds()),
	})
	m.runSaved = true
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.session.Snapshot()
	Draw(m.screen, snap)
	if flash := m.sink.current(); flash != "" && !snap.Paused && snap.Phase == session.PhasePlaying {
		m.screen.DrawTextColor(m.screen.Width()-len(flash)-2, 0, flash, core.ColorBrightYellow)
	}
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(model Model) error {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Slingshot dragging
	)

	_, err := p.Run()
	return err
}
