package builder

import "errors"

var ErrUnknownNode = errors.New("unknown node")
