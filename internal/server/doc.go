// Package server runs the HTTP and gRPC transports.
//
// It owns listener setup, signal handling and graceful shutdown of every
// enabled transport.
package server
