// Package config holds process-level settings for the HTTP server.
package config

import (
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

// Server configures the listening HTTP server.
type Server struct {
	Port            string        `default:"8080" validate:"required,numeric"`
	ReadTimeout     time.Duration `default:"10s"`
	WriteTimeout    time.Duration `default:"90s"`
	ShutdownTimeout time.Duration `default:"30s"`
}

// LoadServer reads PORT on top of the defaults and validates the result.
func LoadServer() (Server, error) {
	var s Server
	if err := defaults.Set(&s); err != nil {
		return Server{}, err
	}
	if v := os.Getenv("PORT"); v != "" {
		s.Port = v
	}
	if err := validator.New().Struct(s); err != nil {
		return Server{}, err
	}
	return s, nil
}

// Addr returns the listen address.
func (s Server) Addr() string {
	return ":" + s.Port
}
