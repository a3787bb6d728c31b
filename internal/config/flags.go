package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses all configuration flags from args. A nil args slice means
// the process arguments.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-base-url path prefix of the route table
//	-d database DSN
//	-c/-config json or yaml file path with configs
//	-driver backend driver ("firebase" or "sql")
//	-api-key backend API key
//	-auth-domain backend auth domain
//	-project-id backend project id
//	-storage-bucket backend storage bucket
//	-messaging-sender-id backend messaging sender id
//	-app-id backend app id
//	-measurement-id analytics measurement id
//	-token-sign-key token signing key
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-backend-timeout backend request timeout (e.g., "10s")
func parseFlags(args []string) (*StructuredConfig, error) {
	if args == nil {
		args = os.Args[1:]
	}

	fs := flag.NewFlagSet("mini-capstone", flag.ContinueOnError)

	var serverAddress NetAddress
	var baseURL, databaseDSN, configPath string
	var driver, apiKey, authDomain, projectID, storageBucket, messagingSenderID, appID, measurementID string
	var tokenSignKey string
	var tokenDuration, requestTimeout, backendTimeout time.Duration

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&baseURL, "base-url", "", "Path prefix of the route table")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&configPath, "c", "", "JSON or YAML config file path")
	fs.StringVar(&configPath, "config", "", "JSON or YAML config file path (alias)")
	fs.StringVar(&driver, "driver", "", "Backend driver (firebase, sql)")
	fs.StringVar(&apiKey, "api-key", "", "Backend API key")
	fs.StringVar(&authDomain, "auth-domain", "", "Backend auth domain")
	fs.StringVar(&projectID, "project-id", "", "Backend project id")
	fs.StringVar(&storageBucket, "storage-bucket", "", "Backend storage bucket")
	fs.StringVar(&messagingSenderID, "messaging-sender-id", "", "Backend messaging sender id")
	fs.StringVar(&appID, "app-id", "", "Backend app id")
	fs.StringVar(&measurementID, "measurement-id", "", "Analytics measurement id")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&backendTimeout, "backend-timeout", 0, "Backend request timeout (e.g., 10s)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenDuration: tokenDuration,
		},
		Backend: Backend{
			Driver:            driver,
			APIKey:            apiKey,
			AuthDomain:        authDomain,
			ProjectID:         projectID,
			StorageBucket:     storageBucket,
			MessagingSenderID: messagingSenderID,
			AppID:             appID,
			MeasurementID:     measurementID,
			RequestTimeout:    backendTimeout,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
			BaseURL:        baseURL,
		},
		FilePath: configPath,
	}, nil
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
// It validates the port range, checks IP correctness unless host is "localhost"
// or empty, and returns an error if the format or values are invalid.
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

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
