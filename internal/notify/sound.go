package notify

import (
	"fmt"
	"io"
	"log"
	"os/exec"
	"sync"
)

// playerCommands are tried in order when probing for an audio player.
var playerCommands = []string{"paplay", "aplay", "afplay"}

// Sound plays the short audio cue accompanying every firing. Playback
// must be armed by a prior interactive session before autonomous cues
// are attempted; every failure is logged and swallowed, never surfaced.
type Sound struct {
	asset    string
	player   string
	bell     io.Writer
	run      func(name string, args ...string) error
	lookPath func(string) (string, error)

	mu    sync.Mutex
	armed bool
}

// NewSound probes for a player. asset may be empty, in which case the
// terminal bell is the only cue. bell receives the BEL byte, typically
// os.Stdout.
func NewSound(asset string, bell io.Writer) *Sound {
	s := &Sound{
		asset: asset,
		bell:  bell,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
		lookPath: exec.LookPath,
	}
	s.probe()
	return s
}

func (s *Sound) probe() {
	for _, cmd := range playerCommands {
		if path, err := s.lookPath(cmd); err == nil {
			s.player = path
			return
		}
	}
}

// Arm permits playback. Called once the session is known to be
// interactive (the first user input or a tty at startup).
func (s *Sound) Arm() {
	s.mu.Lock()
	s.armed = true
	s.mu.Unlock()
}

// Play attempts the cue. Not yet armed, missing player, missing asset
// and write failures all degrade silently.
func (s *Sound) Play() {
	s.mu.Lock()
	armed := s.armed
	s.mu.Unlock()

	if !armed {
		log.Println("[sound] not armed yet, skipping cue")
		return
	}

	if s.player != "" && s.asset != "" {
		if err := s.run(s.player, s.asset); err != nil {
			log.Printf("[sound] playback failed: %v", err)
		}
		return
	}

	if s.bell != nil {
		if _, err := fmt.Fprint(s.bell, "\a"); err != nil {
			log.Printf("[sound] bell failed: %v", err)
		}
	}
}
