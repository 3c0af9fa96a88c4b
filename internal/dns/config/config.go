// Package config loads the responder configuration from defaults and
// DNS_-prefixed environment variables.
package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// AppConfig holds configuration values parsed from environment variables.
type AppConfig struct {
	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// Host is the address the UDP socket binds to.
	Host string `koanf:"host" validate:"required,listen_host"`

	// Port is the UDP port the responder binds to.
	Port int `koanf:"port" validate:"required,gte=1,lte=65535"`

	// ReusePort sets SO_REUSEPORT before binding so a restarted process can
	// bind while the previous socket is still being torn down.
	ReusePort bool `koanf:"reuse_port"`

	// MaxWorkers bounds the number of datagrams handled concurrently.
	MaxWorkers int `koanf:"max_workers" validate:"required,gte=1,lte=65536"`
}

// Address returns Host and Port joined for net.Listen style APIs.
func (c AppConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// DEFAULT_APP_CONFIG defines the default application configuration settings.
var DEFAULT_APP_CONFIG = AppConfig{
	Env:        "prod",
	LogLevel:   "info",
	Host:       "0.0.0.0",
	Port:       2053,
	ReusePort:  true,
	MaxWorkers: 64,
}

// validListenHost accepts an IPv4 or IPv6 literal, or "localhost".
func validListenHost(fl validator.FieldLevel) bool {
	host := fl.Field().String()
	if host == "localhost" {
		return true
	}
	return net.ParseIP(host) != nil
}

// envLoader loads environment variables with the prefix "DNS_", lowercasing
// keys and stripping the prefix. It is a variable so tests can replace it.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: "DNS_",
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, "DNS_"))
			return key, strings.TrimSpace(value)
		},
	}), nil)
}

// defaultLoader loads DEFAULT_APP_CONFIG through the structs provider.
var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DEFAULT_APP_CONFIG, "koanf"), nil)
}

// registerValidation registers the "listen_host" tag with the validator.
var registerValidation = func(v *validator.Validate) error {
	return v.RegisterValidation("listen_host", validListenHost)
}

// Load parses environment variables and returns an AppConfig instance.
// It applies default values and runs validation automatically.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	err := defaultLoader(k)
	if err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}

	err = envLoader(k)
	if err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	err = registerValidation(validate)
	if err != nil {
		return nil, fmt.Errorf("error registering validation: %w", err)
	}

	err = validate.Struct(&cfg)
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
