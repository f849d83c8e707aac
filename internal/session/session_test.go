package session

import (
	"testing"

	"github.com/slingarcade/sling/internal/config"
	"github.com/slingarcade/sling/internal/core"
	"github.com/slingarcade/sling/internal/level"
	"github.com/slingarcade/sling/internal/registry"
)

func newTestSession() *Session {
	return New(config.DefaultSlingConfig(), 1, nil)
}

func step(s *Session, n int) core.StepResult {
	var res core.StepResult
	for i := 0; i < n; i++ {
		res = s.Step(core.InputFrame{})
	}
	return res
}

func stepAction(s *Session, a core.Action) core.StepResult {
	input := core.NewInputFrame()
	input.Set(a)
	return s.Step(input)
}

// dragAndRelease scripts a full launch gesture over three ticks.
func dragAndRelease(s *Session, pull core.Vec2) {
	anchor := s.Launcher().Anchor()
	pos := anchor.Add(pull)

	input := core.NewInputFrame()
	input.AddPointer(core.PointerDown, anchor)
	s.Step(input)

	input.Clear()
	input.AddPointer(core.PointerMove, pos)
	s.Step(input)

	input.Clear()
	input.AddPointer(core.PointerUp, pos)
	s.Step(input)
}

func killAllPigs(s *Session) {
	pigs := append([]*registry.Pig(nil), s.Registry().Pigs()...)
	for _, pig := range pigs {
		s.resolver.DamagePig(pig, pig.Health+1)
	}
}

func TestStartLevelBuildsRoster(t *testing.T) {
	s := newTestSession()
	s.StartLevel(1)

	layout := level.Get(1)
	if s.Phase() != PhasePlaying {
		t.Fatalf("phase = %q, expected playing", s.Phase())
	}
	if len(s.Registry().Birds()) != len(layout.Birds) {
		t.Errorf("bird count = %d, expected %d", len(s.Registry().Birds()), len(layout.Birds))
	}
	if len(s.Registry().Pigs()) != len(layout.Pigs) {
		t.Errorf("pig count = %d, expected %d", len(s.Registry().Pigs()), len(layout.Pigs))
	}
	if cur := s.Launcher().Current(); cur == nil || cur.Launched {
		t.Error("the first roster bird should be loaded into the sling")
	}
}

func TestLaunchAutoAdvancesRoster(t *testing.T) {
	s := newTestSession()
	s.StartLevel(1)
	first := s.Launcher().Current()

	dragAndRelease(s, core.V(-100, 30))

	if !first.Launched {
		t.Fatal("gesture should launch the first bird")
	}
	step(s, 1)
	cur := s.Launcher().Current()
	if cur == nil || cur == first || cur.Launched {
		t.Error("the next roster bird should be auto-loaded")
	}
}

func TestLevelClearDebounce(t *testing.T) {
	s := newTestSession()
	s.StartLevel(1)
	killAllPigs(s)

	// The clear must not fire before the debounce delay re-confirms.
	delay := config.DefaultSlingConfig().Turns.LevelClearDelay
	res := step(s, delay/2)
	if res.State.Phase != PhasePlaying {
		t.Fatalf("phase flipped to %q before the debounce elapsed", res.State.Phase)
	}

	res = step(s, delay)
	if res.State.Phase != PhaseLevelComplete {
		t.Fatalf("phase = %q after debounce, expected levelcomplete", res.State.Phase)
	}
}

func TestLevelAdvanceCarriesGlobalScore(t *testing.T) {
	s := newTestSession()
	s.StartLevel(1)
	s.Registry().AwardScore(200)
	killAllPigs(s)
	step(s, config.DefaultSlingConfig().Turns.LevelClearDelay+2)

	if s.Phase() != PhaseLevelComplete {
		t.Fatal("expected levelcomplete")
	}
	frozen := s.Registry().Score()

	res := stepAction(s, core.ActionConfirm)
	if res.State.Level != 2 || res.State.Phase != PhasePlaying {
		t.Fatalf("confirm should advance to level 2, got level %d phase %q", res.State.Level, res.State.Phase)
	}
	if res.State.Score != 0 {
		t.Error("per-level score should reset on level entry")
	}
	if res.State.GlobalScore < frozen {
		t.Errorf("global score = %d, should carry at least %d forward", res.State.GlobalScore, frozen)
	}
}

func TestGameOverAfterGrace(t *testing.T) {
	s := newTestSession()
	s.StartLevel(1)
	for _, bird := range s.Registry().Birds() {
		bird.Launched = true
		bird.LaunchTick = s.Tick()
	}

	grace := config.DefaultSlingConfig().Turns.GameOverGrace
	res := step(s, grace/2)
	if res.State.Phase != PhasePlaying {
		t.Fatalf("phase = %q before the grace elapsed", res.State.Phase)
	}

	res = step(s, grace)
	if res.State.Phase != PhaseGameOver {
		t.Fatalf("phase = %q, expected gameover", res.State.Phase)
	}
	if !res.State.GameOver {
		t.Error("state flag should report the run as over")
	}
}

func TestClearBeatsGameOverRace(t *testing.T) {
	s := newTestSession()
	s.StartLevel(1)
	for _, bird := range s.Registry().Birds() {
		bird.Launched = true
		bird.LaunchTick = s.Tick()
	}
	killAllPigs(s)

	// Last bird spent and last pig dead: the pending clear wins.
	grace := config.DefaultSlingConfig().Turns.GameOverGrace
	res := step(s, grace*2)
	if res.State.Phase != PhaseLevelComplete {
		t.Fatalf("phase = %q, expected levelcomplete", res.State.Phase)
	}
}

func TestMenuResetClearsRun(t *testing.T) {
	s := newTestSession()
	s.StartLevel(3)
	s.Registry().AwardScore(500)

	stepAction(s, core.ActionBack)

	if s.Phase() != PhaseMenu {
		t.Fatalf("phase = %q, expected menu", s.Phase())
	}
	if s.Level() != 1 {
		t.Error("menu reset should return to level 1")
	}
	if s.Registry().GlobalScore() != 0 || s.Registry().Score() != 0 {
		t.Error("menu reset should clear both scores")
	}
	if len(s.Registry().World().Bodies()) != 0 {
		t.Error("menu reset should empty the world")
	}
}

func TestRetryKeepsGlobalScore(t *testing.T) {
	s := newTestSession()
	s.StartLevel(2)
	s.Registry().AwardScore(150)

	stepAction(s, core.ActionRestart)

	if s.Phase() != PhasePlaying || s.Level() != 2 {
		t.Fatal("restart should rebuild the same level")
	}
	if s.Registry().Score() != 0 {
		t.Error("restart should reset the per-level score")
	}
	if s.Registry().GlobalScore() != 150 {
		t.Error("restart must not touch the cumulative score")
	}
}

func TestCompletedAfterFinalLevel(t *testing.T) {
	s := newTestSession()
	s.StartLevel(level.Count())
	killAllPigs(s)
	step(s, config.DefaultSlingConfig().Turns.LevelClearDelay+2)

	res := stepAction(s, core.ActionConfirm)
	if res.State.Phase != PhaseCompleted {
		t.Fatalf("phase = %q past the final level, expected completed", res.State.Phase)
	}
}

func TestStaleClearTaskDropped(t *testing.T) {
	s := newTestSession()
	s.StartLevel(1)
	killAllPigs(s)
	step(s, 5)

	// Rebuild before the debounce fires: the pending clear is stale.
	s.StartLevel(1)
	res := step(s, config.DefaultSlingConfig().Turns.LevelClearDelay+2)
	if res.State.Phase != PhasePlaying {
		t.Fatalf("stale clear fired after rebuild, phase = %q", res.State.Phase)
	}
}

func TestIdleBirdCollected(t *testing.T) {
	s := newTestSession()
	s.StartLevel(1)
	total := len(s.Registry().Birds())

	// A backward pull lobs the bird at the left wall, far from any pig,
	// so the level cannot clear before the idle timeout fires.
	dragAndRelease(s, core.V(40, 80))
	timeout := config.DefaultSlingConfig().Turns.BirdIdleTimeout
	step(s, timeout+2)

	if len(s.Registry().Birds()) != total-1 {
		t.Errorf("bird count = %d, expected idle launched bird collected", len(s.Registry().Birds()))
	}
	if cur := s.Launcher().Current(); cur == nil || cur.Launched {
		t.Error("sling should still hold the next bird")
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	s := newTestSession()
	s.StartLevel(1)
	dragAndRelease(s, core.V(-100, 30))

	stepAction(s, core.ActionPause)
	var launched *registry.Bird
	for _, b := range s.Registry().Birds() {
		if b.Launched {
			launched = b
		}
	}
	if launched == nil {
		t.Fatal("expected a launched bird in flight")
	}
	before := launched.Body.Pos

	res := step(s, 30)
	if !res.State.Paused {
		t.Fatal("state should report paused")
	}
	if launched.Body.Pos != before {
		t.Error("paused simulation must not advance bodies")
	}
}

func TestPauseDefersLevelClear(t *testing.T) {
	s := newTestSession()
	s.StartLevel(1)
	killAllPigs(s)
	step(s, 2)
	stepAction(s, core.ActionPause)

	// The pending clear must not fire while frozen, however long.
	delay := config.DefaultSlingConfig().Turns.LevelClearDelay
	res := step(s, delay*3)
	if res.State.Phase != PhasePlaying {
		t.Fatalf("clear fired during pause, phase = %q", res.State.Phase)
	}

	stepAction(s, core.ActionPause)
	res = step(s, delay+2)
	if res.State.Phase != PhaseLevelComplete {
		t.Fatalf("phase = %q after unpause, expected levelcomplete", res.State.Phase)
	}
}

func TestFallDamageOnHardLanding(t *testing.T) {
	s := newTestSession()
	s.StartLevel(1)
	pig := s.Registry().Pigs()[0]
	pig.Body.Pos = core.V(400, 100)
	pig.Body.Vel = core.Vec2{}
	pig.LastY = pig.Body.Pos.Y

	step(s, 240)

	if len(s.Registry().Pigs()) > 0 && pig.Health >= pig.MaxHealth {
		t.Error("a long uncontrolled drop should cost the pig health")
	}
}

func TestDeterministicReplay(t *testing.T) {
	script := func(s *Session) []uint64 {
		s.StartLevel(1)
		var hashes []uint64
		dragAndRelease(s, core.V(-120, 40))
		for i := 0; i < 300; i++ {
			s.Step(core.InputFrame{})
			hashes = append(hashes, s.Snapshot().Hash())
		}
		return hashes
	}

	a := script(New(config.DefaultSlingConfig(), 7, nil))
	b := script(New(config.DefaultSlingConfig(), 7, nil))

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("replay diverged at tick %d", i)
		}
	}
}

func TestScoreMonotonicDuringLevel(t *testing.T) {
	s := newTestSession()
	s.StartLevel(1)

	last := 0
	dragAndRelease(s, core.V(-140, 20))
	for i := 0; i < 600; i++ {
		res := s.Step(core.InputFrame{})
		if res.State.GlobalScore < last {
			t.Fatalf("global score decreased at tick %d", i)
		}
		last = res.State.GlobalScore
	}
}
