package track

// Category classifies where a diagnostic originated.
type Category string

const (
	CategoryRendering Category = "rendering"
	CategoryMedia     Category = "media"
	CategoryStorage   Category = "storage"
)

// Level is the severity of a diagnostic message.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// DiagnosticPoster is the contract a track's owning context must satisfy to
// receive diagnostics. A track tolerates having no context attached; in that
// case diagnostics are dropped.
type DiagnosticPoster interface {
	PostDiagnostic(category Category, level Level, message string)
}
