package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// keyConfig is one API key entry in a gateway config file. Secret is the
// plaintext credential; it is bcrypt-hashed once at load time and never
// held onto in plaintext past that.
type keyConfig struct {
	Name   string `toml:"name"`
	ID     string `toml:"id"`
	Secret string `toml:"secret"`
}

// gatewayConfig is the shape of the TOML file --config points "vpagen serve"
// at, e.g.:
//
//	listen = "localhost:8080"
//	secret = "change-me"
//
//	[[keys]]
//	name = "ci"
//	id = "5c1a9e2e-4b1e-4f7a-9a1a-4a6b2e6d5c90"
//	secret = "hunter2"
type gatewayConfig struct {
	Listen string      `toml:"listen"`
	Secret string      `toml:"secret"`
	Keys   []keyConfig `toml:"keys"`
}

func loadGatewayConfig(path string) (gatewayConfig, error) {
	var cfg gatewayConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return gatewayConfig{}, fmt.Errorf("decode config file: %w", err)
	}
	return cfg, nil
}
