package handoff

import "errors"

var ErrMalformedToken = errors.New("malformed handoff token")
