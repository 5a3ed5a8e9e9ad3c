package main

import (
	"fmt"
	"io"
	"sync"

	"bennypowers.dev/livesrv/internal/live"
	"github.com/fatih/color"
)

// consoleReporter prints coordinator messages to the terminal
type consoleReporter struct {
	mu     sync.Mutex
	out    io.Writer
	info   *color.Color
	err    *color.Color
	active *color.Color
	dim    *color.Color
}

func newConsoleReporter(out io.Writer) *consoleReporter {
	return &consoleReporter{
		out:    out,
		info:   color.New(color.FgCyan),
		err:    color.New(color.FgRed, color.Bold),
		active: color.New(color.FgGreen, color.Bold),
		dim:    color.New(color.Faint),
	}
}

func (r *consoleReporter) ShowInfo(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.info.Fprintln(r.out, message)
}

func (r *consoleReporter) ShowError(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err.Fprintln(r.out, message)
}

func (r *consoleReporter) SetStatus(status live.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch status.Kind {
	case live.StatusLive:
		r.active.Fprintf(r.out, "● %s\n", status.Text())
	case live.StatusWorking:
		r.dim.Fprintf(r.out, "… %s\n", status.Text())
	default:
		r.dim.Fprintf(r.out, "○ %s\n", status.Text())
	}
}

// serving prints the address to open and how to stop
func (r *consoleReporter) serving(url string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "Serving at %s\n", r.active.Sprint(url))
	r.dim.Fprintln(r.out, "Press Ctrl+C to stop")
}
