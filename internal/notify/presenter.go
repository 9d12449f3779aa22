// Package notify renders firing reminders. The fallback order is a
// first-class list of channels; the presenter walks it and stops at the
// first one that both exists and succeeds.
package notify

import (
	"log"

	"github.com/AlexCorreaDJ/task-tame/internal/reminder"
)

// Channel is one way of showing a reminder to the user. Deliver reports
// whether the reminder was actually shown; a channel that does not apply
// to this reminder or platform simply returns false and the presenter
// moves on.
type Channel interface {
	Name() string
	Deliver(r reminder.Reminder) bool
}

// Presenter renders one firing reminder through the best available
// channel. The final channel in a well-formed chain (the in-app toast)
// always succeeds, so every firing produces exactly one visual delivery.
type Presenter struct {
	channels []Channel
	sound    *Sound
}

// NewPresenter builds a presenter over the given chain. sound may be
// nil to disable the audio cue entirely.
func NewPresenter(sound *Sound, channels ...Channel) *Presenter {
	return &Presenter{channels: channels, sound: sound}
}

// Present walks the chain. The audio cue is attempted on every firing
// independent of which visual channel wins; its failures never surface.
// Nothing escapes Present as a panic.
func (p *Presenter) Present(r reminder.Reminder) {
	if p.sound != nil {
		p.sound.Play()
	}

	for _, ch := range p.channels {
		if p.deliver(ch, r) {
			log.Printf("[notify] reminder %s delivered via %s", r.ID, ch.Name())
			return
		}
	}

	log.Printf("[notify] reminder %s: no channel delivered", r.ID)
}

// deliver isolates a single channel attempt; a panicking channel counts
// as not delivered and the chain continues.
func (p *Presenter) deliver(ch Channel, r reminder.Reminder) (ok bool) {
	defer func() {
		if err := recover(); err != nil {
			log.Printf("[notify] channel %s panicked: %v", ch.Name(), err)
			ok = false
		}
	}()
	return ch.Deliver(r)
}
