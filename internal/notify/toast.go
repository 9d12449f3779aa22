package notify

import (
	"fmt"
	"io"
	"log"

	"github.com/AlexCorreaDJ/task-tame/internal/reminder"
	"github.com/AlexCorreaDJ/task-tame/internal/ui"
)

// ToastChannel prints an in-app banner. It is the terminal element of
// the chain: it works everywhere, but only while the app is in the
// foreground.
type ToastChannel struct {
	w         io.Writer
	formatter *ui.Formatter
}

// NewToastChannel renders banners to w with the given formatter.
func NewToastChannel(w io.Writer, formatter *ui.Formatter) *ToastChannel {
	return &ToastChannel{w: w, formatter: formatter}
}

func (c *ToastChannel) Name() string { return "toast" }

func (c *ToastChannel) Deliver(r reminder.Reminder) bool {
	if _, err := fmt.Fprintln(c.w, c.formatter.FormatToast(r.Title, r.Description, r.Type)); err != nil {
		log.Printf("[notify] toast write failed: %v", err)
	}
	// Writing a banner has no meaningful failure mode worth falling
	// past; the toast always counts as delivered.
	return true
}
