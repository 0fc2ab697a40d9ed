package handler

import "errors"

// errNoHandlersAreCreated means the configuration enables no transport.
var errNoHandlersAreCreated = errors.New("no handlers are created: set an HTTP or gRPC address")
