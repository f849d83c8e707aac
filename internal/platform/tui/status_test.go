package tui

import (
	"testing"

	"github.com/slingarcade/sling/internal/config"
	"github.com/slingarcade/sling/internal/core"
	"github.com/slingarcade/sling/internal/registry"
)

var _ registry.EventSink = (*statusSink)(nil)

func TestStatusSinkFlashExpires(t *testing.T) {
	var sink statusSink

	sink.ScoreAwarded(150)
	if sink.current() != "+150" {
		t.Fatalf("current() = %q, expected +150", sink.current())
	}

	for i := 0; i < statusFlashTicks-1; i++ {
		sink.age()
	}
	if sink.current() == "" {
		t.Error("flash expired one tick early")
	}
	sink.age()
	if sink.current() != "" {
		t.Error("flash should expire after its lifetime")
	}
}

func TestStatusSinkLatestEventWins(t *testing.T) {
	var sink statusSink
	sink.BirdLaunched()
	sink.ScoreAwarded(50)
	if sink.current() != "+50" {
		t.Errorf("current() = %q, a later event should replace the flash", sink.current())
	}
}

func TestModelWiresEventSink(t *testing.T) {
	runtime := core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60, Seed: 1}
	m := NewModel(nil, runtime, config.DefaultSlingConfig())

	// Session events must land in the HUD sink, not a no-op.
	m.session.Registry().AwardScore(50)
	if m.sink.current() != "+50" {
		t.Errorf("sink saw %q after a score award, expected +50", m.sink.current())
	}
}
