// Package logging builds slog loggers for setscan.
//
// Two handler formats are supported: a human-oriented console handler that
// promotes the component attribute into the message prefix, and a JSON
// handler for machine consumption. Output can fan out to stdout/stderr and
// a log file under the configured log directory.
package logging
