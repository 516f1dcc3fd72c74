// Package logger provides leveled logging for Vellum commands and the
// document session.
//
// Output is formatted with colored prefixes from fatih/color.
//
// # Verbosity Levels
//
//   - default: warnings and errors only
//   - --verbose: adds info messages
//   - --debug: adds debug details
//
// # Log Methods
//
//	Logger.Infof()           // Shown with --verbose
//	Logger.Debugf()          // Shown with --debug
//	Logger.Warnf()           // Always shown, on stderr
//	Logger.Errorf()          // Always shown, on stderr
//	Logger.ErrorfAndReturn() // Debug-logs the message, then returns it as an error
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Sealing %d files", count)
//
// The zero Logger drops info and debug output, which is what library code
// such as the session manager receives in tests.
package logger
