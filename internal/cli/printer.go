package cli

// This file holds the terminal output helpers shared by every command.

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
)

// Printer writes user-facing output. Quiet suppresses progress output but
// never tables or errors.
type Printer struct {
	Quiet  bool
	Writer io.Writer
}

func (p *Printer) out() io.Writer {
	if p.Writer == nil {
		return os.Stdout
	}
	return p.Writer
}

// Section prints a section heading.
func (p *Printer) Section(title string) {
	if p.Quiet {
		return
	}
	fmt.Fprint(p.out(), pterm.DefaultSection.Sprint(title))
}

// Info prints an informational line.
func (p *Printer) Info(msg string) {
	if p.Quiet {
		return
	}
	fmt.Fprint(p.out(), pterm.Info.Sprintln(msg))
}

// Printf writes formatted output regardless of Quiet.
func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.out(), format, args...)
}

// Table prints data as a table with the first row as header.
func (p *Printer) Table(data [][]string) {
	p.table(data, false)
}

// TableBoxed is Table with a border.
func (p *Printer) TableBoxed(data [][]string) {
	p.table(data, true)
}

func (p *Printer) table(data [][]string, boxed bool) {
	if len(data) == 0 {
		return
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithBoxed(boxed).WithData(pterm.TableData(data)).Srender()
	if err != nil {
		fmt.Fprintln(p.out(), err)
		return
	}
	fmt.Fprintln(p.out(), out)
}

// Warn prints a warning to stderr.
func Warn(msg string) { fmt.Fprint(os.Stderr, pterm.Warning.Sprintln(msg)) }

// Error prints an error message to stderr.
func Error(msg string) { fmt.Fprint(os.Stderr, pterm.Error.Sprintln(msg)) }
