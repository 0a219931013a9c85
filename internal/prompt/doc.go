// Package prompt obtains numeric input from the operator.
//
// NumberProvider is injected into the run pipeline so tests and
// non-interactive runs can substitute a fixed value for console I/O. Input is
// coerced with ParseNumber, which never fails: text that is not a number
// becomes NaN and is forwarded as such.
package prompt
