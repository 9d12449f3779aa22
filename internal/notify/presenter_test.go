package notify

import (
	"bytes"
	"strings"
	"testing"

	"github.com/AlexCorreaDJ/task-tame/internal/reminder"
	"github.com/AlexCorreaDJ/task-tame/internal/ui"
)

type stubChannel struct {
	name      string
	delivers  bool
	panics    bool
	attempted *[]string
}

func (c *stubChannel) Name() string { return c.name }

func (c *stubChannel) Deliver(r reminder.Reminder) bool {
	*c.attempted = append(*c.attempted, c.name)
	if c.panics {
		panic("channel exploded")
	}
	return c.delivers
}

func testSound(buf *bytes.Buffer) *Sound {
	s := &Sound{
		bell: buf,
		run: func(name string, args ...string) error {
			return nil
		},
		lookPath: func(string) (string, error) {
			return "", nil
		},
	}
	s.Arm()
	return s
}

func fire() reminder.Reminder {
	return reminder.Reminder{ID: "r1", Title: "Study", Time: "14:30", Type: reminder.TypeReading, IsActive: true}
}

func TestPresentStopsAtFirstSuccess(t *testing.T) {
	var attempted []string
	p := NewPresenter(nil,
		&stubChannel{name: "first", delivers: false, attempted: &attempted},
		&stubChannel{name: "second", delivers: true, attempted: &attempted},
		&stubChannel{name: "third", delivers: true, attempted: &attempted},
	)

	p.Present(fire())

	want := []string{"first", "second"}
	if strings.Join(attempted, ",") != strings.Join(want, ",") {
		t.Errorf("attempted = %v, want %v", attempted, want)
	}
}

func TestPresentSurvivesPanickingChannel(t *testing.T) {
	var attempted []string
	p := NewPresenter(nil,
		&stubChannel{name: "bad", panics: true, attempted: &attempted},
		&stubChannel{name: "good", delivers: true, attempted: &attempted},
	)

	p.Present(fire())

	if len(attempted) != 2 || attempted[1] != "good" {
		t.Errorf("attempted = %v, want panic isolated and chain continued", attempted)
	}
}

func TestPresentPlaysSoundRegardlessOfChannel(t *testing.T) {
	var attempted []string
	var bell bytes.Buffer
	p := NewPresenter(testSound(&bell),
		&stubChannel{name: "only", delivers: true, attempted: &attempted},
	)

	p.Present(fire())

	if !bytes.Contains(bell.Bytes(), []byte{'\a'}) {
		t.Error("audio cue was not attempted")
	}
}

// With the push channel unavailable and terminal notifications denied,
// a firing produces exactly one in-app banner and an attempted audio
// cue, and nothing escapes.
func TestFallbackEndsInSingleToast(t *testing.T) {
	var out bytes.Buffer
	var bell bytes.Buffer

	p := NewPresenter(testSound(&bell),
		NewBalloonChannel(nil),
		NewTerminalChannel(&out, false, false),
		NewToastChannel(&out, ui.NewFormatter(false)),
	)

	r := fire()
	r.UseBalloonStyle = true
	p.Present(r)

	if got := strings.Count(out.String(), "Study"); got != 1 {
		t.Errorf("banner rendered %d times, want exactly 1", got)
	}
	if !bytes.Contains(bell.Bytes(), []byte{'\a'}) {
		t.Error("audio cue was not attempted")
	}
}

func TestSoundNotArmedIsSilent(t *testing.T) {
	var bell bytes.Buffer
	s := &Sound{
		bell:     &bell,
		run:      func(string, ...string) error { return nil },
		lookPath: func(string) (string, error) { return "", nil },
	}

	s.Play()

	if bell.Len() != 0 {
		t.Error("unarmed sound produced output")
	}
}

func TestSoundPrefersPlayerForAsset(t *testing.T) {
	var played []string
	s := &Sound{
		asset:  "/tmp/ding.ogg",
		player: "/usr/bin/paplay",
		run: func(name string, args ...string) error {
			played = append(played, name)
			return nil
		},
	}
	s.Arm()
	s.Play()

	if len(played) != 1 || played[0] != "/usr/bin/paplay" {
		t.Errorf("played = %v, want the probed player", played)
	}
}
