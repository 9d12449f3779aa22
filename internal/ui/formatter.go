package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Modern color palette
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")). // Bright cyan
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")). // Coral red
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")) // Warm yellow

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // Dim gray

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")). // Green
			Bold(true)

	CategoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("183")). // Soft purple
			Italic(true)

	ToastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("222")).
			Padding(0, 1)
)

type Formatter struct {
	colored bool
}

func NewFormatter(colored bool) *Formatter {
	return &Formatter{colored: colored}
}

// FormatToast renders the in-app reminder banner.
func (f *Formatter) FormatToast(title, description, category string) string {
	var b strings.Builder

	if f.colored {
		b.WriteString(TitleStyle.Render("⏰ " + title))
	} else {
		b.WriteString("⏰ " + title)
	}

	if description != "" {
		b.WriteString("\n" + description)
	}

	cat := "[" + category + "]"
	if f.colored {
		cat = CategoryStyle.Render(cat)
	}
	b.WriteString("\n" + cat)

	if f.colored {
		return ToastStyle.Render(b.String())
	}
	return b.String()
}

// FormatError renders an error line.
func (f *Formatter) FormatError(err error) string {
	msg := fmt.Sprintf("Error: %v", err)
	if f.colored {
		return ErrorStyle.Render(msg)
	}
	return msg
}

// FormatInfo renders an informational line.
func (f *Formatter) FormatInfo(msg string) string {
	if f.colored {
		return InfoStyle.Render(msg)
	}
	return msg
}

// FormatSuccess renders a confirmation line.
func (f *Formatter) FormatSuccess(msg string) string {
	if f.colored {
		return SuccessStyle.Render(msg)
	}
	return msg
}

// FormatHint renders secondary text (remediation hints, ids).
func (f *Formatter) FormatHint(msg string) string {
	if f.colored {
		return DimStyle.Render(msg)
	}
	return msg
}
