// Package logging provides the console implementation of the normhash.Logger
// interface. ConsoleLogger writes prefixed messages to any io.Writer and is
// safe for concurrent use by multiple goroutines.
package logging
