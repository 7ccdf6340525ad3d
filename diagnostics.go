package mda

import (
	"fmt"
	"strings"
)

// Level is the severity of a Diagnostic.
type Level int

const (
	Info Level = iota
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Diagnostic is one message reported by a pipeline stage.
type Diagnostic struct {
	Stage   string
	Level   Level
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s: %s", d.Level, d.Stage, d.Message)
}

// Diagnostics is the ordered list of messages reported by one or more stages.
// Its zero value is ready to use.
type Diagnostics []Diagnostic

func (ds *Diagnostics) add(stage string, level Level, format string, args ...any) {
	*ds = append(*ds, Diagnostic{Stage: stage, Level: level, Message: fmt.Sprintf(format, args...)})
}

// Infof records an informational message.
func (ds *Diagnostics) Infof(stage, format string, args ...any) { ds.add(stage, Info, format, args...) }

// Warnf records a recoverable anomaly.
func (ds *Diagnostics) Warnf(stage, format string, args ...any) { ds.add(stage, Warn, format, args...) }

// Errorf records a failure that was skipped.
func (ds *Diagnostics) Errorf(stage, format string, args ...any) {
	ds.add(stage, Error, format, args...)
}

// Append adds all the diagnostics of other.
func (ds *Diagnostics) Append(other Diagnostics) { *ds = append(*ds, other...) }

// Filter returns the diagnostics at or above level.
func (ds Diagnostics) Filter(level Level) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Level >= level {
			out = append(out, d)
		}
	}
	return out
}

// Contains reports whether a diagnostic of that level has a message containing substr.
func (ds Diagnostics) Contains(level Level, substr string) bool {
	for _, d := range ds {
		if d.Level == level && strings.Contains(d.Message, substr) {
			return true
		}
	}
	return false
}
