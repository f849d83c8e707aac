package tui

import "fmt"

// statusFlashTicks is how long one event flash stays on the HUD
// (1.5 seconds at the default tick rate).
const statusFlashTicks = 90

// statusSink receives game events and turns them into transient HUD
// flashes. It satisfies registry.EventSink; the session calls it from
// the simulation tick, the model ages and reads it on the same tick
// loop, so no locking is needed.
type statusSink struct {
	text string
	ttl  int
}

func (s *statusSink) flash(text string) {
	s.text = text
	s.ttl = statusFlashTicks
}

// age advances the flash lifetime by one tick.
func (s *statusSink) age() {
	if s.ttl > 0 {
		s.ttl--
	}
}

// current returns the live flash text, or "" once it expired.
func (s *statusSink) current() string {
	if s.ttl <= 0 {
		return ""
	}
	return s.text
}

func (s *statusSink) ScoreAwarded(amount int) { s.flash(fmt.Sprintf("+%d", amount)) }
func (s *statusSink) BirdLaunched()           { s.flash("away!") }
func (s *statusSink) LevelCompleted()         { s.flash("cleared!") }
func (s *statusSink) GameOver()               { s.flash("out of birds") }
