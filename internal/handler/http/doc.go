// Package http implements the REST transport of the sync server.
//
// It wires the chi router, request handlers and middleware. Tracing,
// access logging, compression, authentication and the optional body
// integrity check run here before requests reach the service layer.
package http
