package domain

import "errors"

// ErrKeypairNotFound is returned by keypair stores when the file does not exist.
var ErrKeypairNotFound = errors.New("keypair file not found")
