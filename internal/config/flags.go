// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
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

// ParseFlags parses configuration flags from args (without the program
// name). Positional arguments after the flags are returned in
// [StructuredConfig.Args].
//
// Flags:
//
//	-d storage DSN (memory, bolt://<path> or SQLite file path)
//	-a item-storage server address in format [host]:[port]
//	-c/-config json file path with configs
//	-identity user identity keys are scoped to
//	-token item-storage access token
//	-kdf-iterations Argon2id time cost
//	-kdf-memory Argon2id memory cost in KiB
//	-kdf-parallelism Argon2id lanes
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-decrypt-concurrency bulk decryption workers
//	-log-file log file path
//	-log-level log level (debug, info, warn, error)
//	-yes skip confirmations
//	-o output file for exported artifacts
func ParseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var identity, token string
	var iterations, memoryKB, parallelism uint
	var requestTimeout time.Duration
	var decryptConcurrency int
	var logFile, logLevel string
	var assumeYes bool
	var output string

	fs := flag.NewFlagSet("go-key-keeper", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Storage DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&identity, "identity", "", "User identity")
	fs.StringVar(&token, "token", "", "Access token")
	fs.UintVar(&iterations, "kdf-iterations", 0, "Argon2id iterations")
	fs.UintVar(&memoryKB, "kdf-memory", 0, "Argon2id memory in KiB")
	fs.UintVar(&parallelism, "kdf-parallelism", 0, "Argon2id parallelism")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.IntVar(&decryptConcurrency, "decrypt-concurrency", 0, "Bulk decryption workers")
	fs.StringVar(&logFile, "log-file", "", "Log file path")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.BoolVar(&assumeYes, "yes", false, "Skip confirmations")
	fs.StringVar(&output, "o", "", "Output file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	if iterations > math.MaxUint32 || memoryKB > math.MaxUint32 {
		return nil, errors.New("error parsing flags: kdf cost out of range")
	}
	if parallelism > math.MaxUint8 {
		return nil, errors.New("error parsing flags: kdf parallelism must be at most 255")
	}

	return &StructuredConfig{
		Crypto: CryptoConfig{
			Iterations:  uint32(iterations),
			MemoryKB:    uint32(memoryKB),
			Parallelism: uint8(parallelism),
		},
		Storage: StorageConfig{
			DSN: databaseDSN,
		},
		Adapter: AdapterConfig{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Session: SessionConfig{
			Identity: identity,
			Token:    token,
		},
		Log: LogConfig{
			File:  logFile,
			Level: logLevel,
		},
		Workers: WorkersConfig{
			DecryptConcurrency: decryptConcurrency,
		},
		JSONFilePath: jsonConfigPath,
		AssumeYes:    assumeYes,
		Output:       output,
		Args:         fs.Args(),
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

	if port < 1 || port > 65535 {
		return errors.New("port number must be a positive integer up to 65535")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
