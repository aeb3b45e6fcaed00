package i

// Logger is the leveled logger used by services.
type Logger interface {
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}
