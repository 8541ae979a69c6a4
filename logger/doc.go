// Package logger provides structured logging for the LaMetric client,
// built on zerolog.
//
// The client never logs failures; it emits debug-level events around each
// device call. Clients default to a disabled logger:
//
//	log := logger.New(&logger.Config{Level: "debug", Format: "console"}, "lametric")
//	client, err := lametric.New(lametric.WithLogger(log))
//
// Applications that already use zerolog can hand their logger over:
//
//	log := logger.FromZerolog(zerolog.New(os.Stderr))
package logger
