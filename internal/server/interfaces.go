package server

// Server runs the transports that expose the sync API.
type Server interface {
	// RunServer serves HTTP and gRPC until a stop signal arrives, then
	// shuts both down. It blocks for the lifetime of the process.
	RunServer()

	// Shutdown stops every transport, letting in-flight syncs finish.
	Shutdown()
}
