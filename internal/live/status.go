package live

import "fmt"

// StatusKind is the state shown by the editor's status indicator
type StatusKind int

const (
	// StatusOffline offers to go live
	StatusOffline StatusKind = iota
	// StatusWorking shows an operation in progress
	StatusWorking
	// StatusLive shows the port being served
	StatusLive
)

func (k StatusKind) String() string {
	switch k {
	case StatusWorking:
		return "working"
	case StatusLive:
		return "live"
	default:
		return "offline"
	}
}

// Status is one state of the status indicator
type Status struct {
	Kind StatusKind
	// Label is set for StatusWorking
	Label string
	// Port is the configured port when offline and the bound port when live
	Port int
}

// Working returns a busy status with label, e.g. "Starting..."
func Working(label string) Status {
	return Status{Kind: StatusWorking, Label: label}
}

// Offline returns the idle status for the configured port
func Offline(port int) Status {
	return Status{Kind: StatusOffline, Port: port}
}

// Live returns the serving status for the bound port
func Live(port int) Status {
	return Status{Kind: StatusLive, Port: port}
}

// Text is the status indicator text
func (s Status) Text() string {
	switch s.Kind {
	case StatusWorking:
		return s.Label
	case StatusLive:
		return fmt.Sprintf("Port : %d", s.Port)
	default:
		return "Go Live"
	}
}

// Tooltip describes what clicking the indicator does
func (s Status) Tooltip() string {
	switch s.Kind {
	case StatusLive:
		return "Click to close server"
	case StatusOffline:
		return "Click to run live server"
	default:
		return ""
	}
}

// Command is the command the indicator runs when clicked, if any
func (s Status) Command() string {
	switch s.Kind {
	case StatusLive:
		return CommandGoOffline
	case StatusOffline:
		return CommandGoLive
	default:
		return ""
	}
}
