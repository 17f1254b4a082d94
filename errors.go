package yakker

import "errors"

// ErrNoMessages is returned when a request is built from an empty message list.
// This is a pre-flight construction error: it aborts the call before any
// network activity.
var ErrNoMessages = errors.New("yakker: messages list cannot be empty")
