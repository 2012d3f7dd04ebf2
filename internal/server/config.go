package server

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/DjordjeVuckovic/bench-viewer/pkg/utils"
	"github.com/spf13/viper"
)

const DefaultPort = "5000"

// Config keys read from viper. Flags and VIEWER_ prefixed env vars bind to the same keys.
const (
	KeyPort        = "port"
	KeyHTTP2       = "http2"
	KeyCorsOrigins = "cors_origins"
)

type Config struct {
	Port        string
	UseHttp2    bool
	CorsOrigins []string
}

func LoadConfig(v *viper.Viper) (*Config, error) {
	v.SetDefault(KeyPort, DefaultPort)

	port := v.GetString(KeyPort)
	if err := validatePort(port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}

	origins := utils.SplitNonEmpty(v.GetString(KeyCorsOrigins), ",")
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return &Config{
		Port:        port,
		UseHttp2:    v.GetBool(KeyHTTP2),
		CorsOrigins: origins,
	}, nil
}

func (c *Config) Address() string {
	return ":" + c.Port
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)

	if err != nil {
		return errors.New("port must be a number")
	}

	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	return nil
}
