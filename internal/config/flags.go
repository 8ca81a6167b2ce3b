package config

import (
	"errors"
	"flag"
	"net"
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

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN (postgres URI or sqlite file path)
//	-key-file symmetric encryption key file path
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-inactivity-timeout session inactivity timeout (e.g., "60s")
//	-unmask-quota reveal operations allowed per window
//	-unmask-window reveal rate limit window (e.g., "60s")
//	-disclosure-ttl disclosure token lifetime (e.g., "30s")
//	-token-purge-interval expired token sweep interval
//	-expiry-scan-interval vault expiry scan interval
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var keyFile string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var inactivityTimeout time.Duration
	var unmaskQuota int
	var unmaskWindow time.Duration
	var disclosureTTL time.Duration
	var tokenPurgeInterval time.Duration
	var expiryScanInterval time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&keyFile, "key-file", "", "Encryption key file path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&inactivityTimeout, "inactivity-timeout", 0, "Session inactivity timeout (e.g., 60s)")
	flag.IntVar(&unmaskQuota, "unmask-quota", 0, "Reveal operations allowed per window")
	flag.DurationVar(&unmaskWindow, "unmask-window", 0, "Reveal rate limit window (e.g., 60s)")
	flag.DurationVar(&disclosureTTL, "disclosure-ttl", 0, "Disclosure token lifetime (e.g., 30s)")
	flag.DurationVar(&tokenPurgeInterval, "token-purge-interval", 0, "Expired token sweep interval")
	flag.DurationVar(&expiryScanInterval, "expiry-scan-interval", 0, "Vault expiry scan interval")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			KeyFile:       keyFile,
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
		},
		Session: Session{
			InactivityTimeout: inactivityTimeout,
			UnmaskQuota:       unmaskQuota,
			UnmaskWindow:      unmaskWindow,
			DisclosureTTL:     disclosureTTL,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			TokenPurgeInterval: tokenPurgeInterval,
			ExpiryScanInterval: expiryScanInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
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
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
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

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "" && host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
