package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", Config{port: 8000}, false},
		{"tls pair", Config{port: 8000, tlsCert: "cert.pem", tlsKey: "key.pem"}, false},
		{"cert without key", Config{port: 8000, tlsCert: "cert.pem"}, true},
		{"key without cert", Config{port: 8000, tlsKey: "key.pem"}, true},
		{"port too low", Config{port: 0}, true},
		{"port too high", Config{port: 65536}, true},
		{"socket url ws", Config{port: 8000, socketURL: "ws://example.com/ws"}, false},
		{"socket url wss", Config{port: 8000, socketURL: "wss://example.com/ws"}, false},
		{"socket url http", Config{port: 8000, socketURL: "http://example.com/ws"}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigScheme(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, "http", cfg.scheme())

	cfg.tlsCert = "cert.pem"
	cfg.tlsKey = "key.pem"
	assert.Equal(t, "https", cfg.scheme())
}

func TestNewCmdDefaults(t *testing.T) {
	cfg := &Config{}
	cmd := newCmd(cfg)

	assert.Equal(t, "0.0.0.0", cfg.bind)
	assert.Equal(t, 8000, cfg.port)
	assert.Equal(t, 60*time.Minute, cfg.sessionTimeout)
	assert.False(t, cfg.verbose)

	assert.Equal(t, "8000", cmd.Flags().Lookup("port").DefValue)
	assert.NotNil(t, cmd.Flags().Lookup("session-timeout"))
	assert.NotNil(t, cmd.Flags().Lookup("socket-url"))
}

func TestNewCmdNormalizesUnderscores(t *testing.T) {
	cfg := &Config{}
	cmd := newCmd(cfg)

	assert.NoError(t, cmd.Flags().Parse([]string{"--session_timeout", "5m"}))
	assert.Equal(t, 5*time.Minute, cfg.sessionTimeout)
}
