package console

import "errors"

var ErrRoleMismatch = errors.New("role not allowed for this operation")
