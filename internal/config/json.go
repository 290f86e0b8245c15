// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the JSON config file.
type StructuredJSONConfig struct {
	Crypto struct {
		Iterations  uint32 `json:"kdf_iterations"`
		MemoryKB    uint32 `json:"kdf_memory_kb"`
		Parallelism uint8  `json:"kdf_parallelism"`

		MaxIterations  uint32 `json:"kdf_max_iterations"`
		MaxMemoryKB    uint32 `json:"kdf_max_memory_kb"`
		MaxParallelism uint8  `json:"kdf_max_parallelism"`
	} `json:"crypto,omitempty"`

	Storage struct {
		DSN string `json:"dsn"`
	} `json:"storage,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Session struct {
		Identity string `json:"identity"`
	} `json:"session,omitempty"`

	Log struct {
		File  string `json:"file"`
		Level string `json:"level"`
	} `json:"log,omitempty"`

	Workers struct {
		DecryptConcurrency int `json:"decrypt_concurrency"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Crypto: CryptoConfig{
			Iterations:  jsonCfg.Crypto.Iterations,
			MemoryKB:    jsonCfg.Crypto.MemoryKB,
			Parallelism: jsonCfg.Crypto.Parallelism,

			MaxIterations:  jsonCfg.Crypto.MaxIterations,
			MaxMemoryKB:    jsonCfg.Crypto.MaxMemoryKB,
			MaxParallelism: jsonCfg.Crypto.MaxParallelism,
		},
		Storage: StorageConfig{
			DSN: jsonCfg.Storage.DSN,
		},
		Adapter: AdapterConfig{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Session: SessionConfig{
			Identity: jsonCfg.Session.Identity,
		},
		Log: LogConfig{
			File:  jsonCfg.Log.File,
			Level: jsonCfg.Log.Level,
		},
		Workers: WorkersConfig{
			DecryptConcurrency: jsonCfg.Workers.DecryptConcurrency,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
