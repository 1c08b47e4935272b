package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// printer writes status lines styled for w. Writers that are not terminals
// get plain text.
type printer struct {
	w       io.Writer
	success lipgloss.Style
	warn    lipgloss.Style
	fail    lipgloss.Style
	dim     lipgloss.Style
}

func newPrinter(w io.Writer) *printer {
	r := lipgloss.NewRenderer(w)
	return &printer{
		w:       w,
		success: r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		warn:    r.NewStyle().Foreground(lipgloss.Color("3")),
		fail:    r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		dim:     r.NewStyle().Foreground(lipgloss.Color("244")),
	}
}

func (p *printer) Success(msg string) { p.render(p.success, msg) }
func (p *printer) Warn(msg string)    { p.render(p.warn, msg) }
func (p *printer) Error(msg string)   { p.render(p.fail, msg) }
func (p *printer) Dim(msg string)     { p.render(p.dim, msg) }
func (p *printer) Plain(msg string)   { fmt.Fprintln(p.w, msg) }

// render styles msg line by line; lipgloss pads multi-line blocks to a
// common width otherwise.
func (p *printer) render(style lipgloss.Style, msg string) {
	for _, line := range strings.Split(msg, "\n") {
		fmt.Fprintln(p.w, style.Render(line))
	}
}
