// Package config loads process-level settings from the environment. No
// engine or room code consults the environment directly; only cmd/server
// reads a Config and wires it into its constructors.
package config

import "github.com/joeshaw/envdecode"

// Config holds the listen address and the websocket upgrader's tuning
// knobs, all overridable via environment variables.
type Config struct {
	Addr            string `env:"BELOTE_ADDR,default=:8000"`
	ReadBufferSize  int    `env:"BELOTE_READ_BUFFER_SIZE,default=1024"`
	WriteBufferSize int    `env:"BELOTE_WRITE_BUFFER_SIZE,default=1024"`
	AllowedOrigin   string `env:"BELOTE_ALLOWED_ORIGIN,default=*"`
}

// Load decodes a Config from the process environment.
func Load() (Config, error) {
	var c Config
	if err := envdecode.Decode(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}
