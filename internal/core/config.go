package core

// RuntimeConfig contains configuration passed to the session at
// initialization. The session uses this to adapt to screen size and for
// deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the externally observable state of a session, returned
// after every tick for HUD text and platform bookkeeping.
type GameState struct {
	Score       int    // Per-level score (reset on level entry)
	GlobalScore int    // Cumulative score across levels
	Level       int    // Current level number (1-based)
	Phase       string // Current phase (menu, playing, ...)
	GameOver    bool   // Whether the run has ended (lost or completed)
	Paused      bool   // Whether the simulation is paused
}

// StepResult is returned by Session.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
