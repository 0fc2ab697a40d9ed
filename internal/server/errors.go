package server

import "errors"

var (
	// errNoServersAreCreated means no handler was given to NewServer.
	errNoServersAreCreated = errors.New("no servers are created")

	errNoServersToRun = errors.New("no servers to run")
)
