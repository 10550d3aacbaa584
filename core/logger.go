package core

// Logger is any leveled logger.
// expected args: error, map[string]interface{} or any value worth printing with `%+v`.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
