package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the server command line.
//
// Flags:
//
//	-a HTTP server address in format [host]:[port]
//	-grpc-address gRPC server address in format [host]:[port]
//	-d database DSN
//	-c/-config JSON file path with configs
//	-token-sign-key session token signing key
//	-token-issuer session token issuer name
//	-token-duration session token duration (e.g. "1h")
//	-hash-key request integrity hash key
//	-sync-secret sync token secret
//	-sync-salt sync token salt
//	-max-limit maximum sync page size
//	-gate-wait maximum wait for a concurrent sync of the same account
//	-request-timeout request timeout (e.g. "30s")
//	-log-level log level
//	-log-file rotating log file path
func ParseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress, grpcServerAddress NetAddress
	var cfg StructuredConfig

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.Var(&serverAddress, "a", "HTTP net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "gRPC net address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "Session token signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "Session token issuer")
	fs.DurationVar(&cfg.App.TokenDuration, "token-duration", 0, "Session token duration (e.g., 1h, 30m)")
	fs.StringVar(&cfg.App.HashKey, "hash-key", "", "Request integrity hash key")
	fs.StringVar(&cfg.Sync.TokenSecret, "sync-secret", "", "Sync token secret")
	fs.StringVar(&cfg.Sync.TokenSalt, "sync-salt", "", "Sync token salt")
	fs.IntVar(&cfg.Sync.MaxLimit, "max-limit", 0, "Maximum number of items per sync page")
	fs.DurationVar(&cfg.Sync.GateWait, "gate-wait", 0, "Maximum wait for a concurrent sync of the same account")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&cfg.Log.Level, "log-level", "", "Log level")
	fs.StringVar(&cfg.Log.File, "log-file", "", "Rotating log file path")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg.Server.HTTPAddress = serverAddress.String()
	cfg.Server.GRPCAddress = grpcServerAddress.String()

	return &cfg, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// An empty host listens on all interfaces.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "" && host != "localhost" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
