// Package glog is a tiny wrapper over the standard logger, matching
// the bracket-tagged style used throughout this codebase
// (e.g. "[issuance] ...").
package glog

import "log"

// Logger prefixes every line with a fixed tag.
type Logger struct {
	tag string
}

// New returns a Logger that prefixes messages with "[tag] ".
func New(tag string) Logger { return Logger{tag: tag} }

// Printf logs a formatted message under this logger's tag.
func (l Logger) Printf(format string, args ...any) {
	log.Printf("["+l.tag+"] "+format, args...)
}
