// Package log provides the logging abstraction used by pagemark components.
//
// The core never writes to a console directly. Every diagnostic line goes
// through a Logger, which the host supplies. A zerolog adapter and a no-op
// logger are included.
//
// # Usage
//
//	logger := log.NewZerologAdapterWithLogger(zerolog.New(os.Stderr))
//
// or, when diagnostics are not wanted:
//
//	logger := log.NewNoopLogger()
//
// Custom sinks implement the four level methods:
//
//	type MyLogger struct { ... }
//
//	func (l *MyLogger) Debug(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Info(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Warn(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Error(msg string, fields ...log.Field) { ... }
package log
