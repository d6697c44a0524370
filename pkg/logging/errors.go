package logging

import "errors"

// The destination rejected or could not take the bytes
var ErrSinkWrite = errors.New("sink write failed")

// A buffer sink could not grow to hold the bytes
var ErrOutOfMemory = errors.New("out of memory")

var ErrInvalidArgument = errors.New("invalid argument")
