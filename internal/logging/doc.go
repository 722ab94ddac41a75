// Package logging builds the slog loggers used across the CLI.
//
// Commands log to a file under the configured log directory so diagnostic
// output never interleaves with the text a command writes to stdout. The
// console format favors short scannable lines; the json format is for
// machine consumption.
package logging
