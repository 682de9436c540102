package mqtt

import "errors"

// ErrNotConnected is returned when a publish is attempted on a closed client.
var ErrNotConnected = errors.New("mqtt client not connected")
