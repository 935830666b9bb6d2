package output

// LoggerPort takes structured key-value pairs after the message.
type LoggerPort interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	WithField(key string, value any) LoggerPort
	WithFields(fields map[string]any) LoggerPort
	// Named tags every entry with the component that wrote it.
	Named(component string) LoggerPort

	Close() error
}
