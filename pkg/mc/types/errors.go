package types

import "errors"

var ErrUnknownType = errors.New("unknown type")
