package core

// Logger reports app events to stdout and, depending on the
// implementation, to an external error tracker.
//
// expected args fmt: error | map[string]interface{} | Actor
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// Actor identifies the authenticated caller attached to a log entry.
type Actor struct {
	ID   string
	Name string
}
