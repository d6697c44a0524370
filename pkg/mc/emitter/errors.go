package emitter

import "errors"

var ErrUnknownLabel = errors.New("unknown label")
var ErrDuplicateLabel = errors.New("duplicate label")
var ErrLabelAlreadyBound = errors.New("label already bound")
var ErrUnknownVirtReg = errors.New("unknown virtual register")
var ErrInvalidAlignment = errors.New("invalid alignment")
var ErrInvalidEncoding = errors.New("invalid encoding")
