package main

import (
	"crypto/rand"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/dekarrin/vpagen/internal/vpagateway"
	"github.com/dekarrin/vpagen/internal/version"
	"github.com/google/uuid"
	"github.com/spf13/pflag"
)

const (
	envListen = "VPAGEN_LISTEN_ADDRESS"
	envSecret = "VPAGEN_TOKEN_SECRET"
	envConfig = "VPAGEN_CONFIG"
)

func serveCommand(args []string) error {
	fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	flagListen := fs.StringP("listen", "l", "", "Address to listen on, e.g. localhost:8080 or :8080")
	flagSecret := fs.StringP("secret", "s", "", "Secret used to sign bearer tokens")
	flagConfig := fs.StringP("config", "c", "", "TOML file defining the listen address, secret, and API keys")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var cfg gatewayConfig
	configPath := *flagConfig
	if configPath == "" {
		configPath = os.Getenv(envConfig)
	}
	if configPath != "" {
		var err error
		cfg, err = loadGatewayConfig(configPath)
		if err != nil {
			return err
		}
	}

	listen := cfg.Listen
	if v := os.Getenv(envListen); v != "" {
		listen = v
	}
	if *flagListen != "" {
		listen = *flagListen
	}
	if listen == "" {
		listen = "localhost:8080"
	}

	secretStr := cfg.Secret
	if v := os.Getenv(envSecret); v != "" {
		secretStr = v
	}
	if *flagSecret != "" {
		secretStr = *flagSecret
	}

	var secret []byte
	if secretStr == "" {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return fmt.Errorf("generate token secret: %w", err)
		}
		log.Printf("WARN  using generated token secret; all tokens issued will become invalid at shutdown")
	} else {
		secret = []byte(secretStr)
	}

	keys := make([]vpagateway.APIKey, 0, len(cfg.Keys))
	for _, k := range cfg.Keys {
		id, err := uuid.Parse(k.ID)
		if err != nil {
			return fmt.Errorf("key %q: invalid id %q: %w", k.Name, k.ID, err)
		}
		hash, err := vpagateway.HashSecret(k.Secret)
		if err != nil {
			return fmt.Errorf("key %q: hash secret: %w", k.Name, err)
		}
		keys = append(keys, vpagateway.APIKey{ID: id, Name: k.Name, HashedSecret: hash})
	}

	gw := vpagateway.New(secret, keys, time.Second)

	log.Printf("INFO  starting vpagen gateway %s on %s", version.Current, listen)
	return http.ListenAndServe(listen, gw.Router())
}
