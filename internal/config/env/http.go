package env

import (
	"net"
	"os"

	"velvet_bite/internal/config"
)

const (
	httpHostEnvName = "HTTP_HOST"
	httpPortEnvName = "HTTP_PORT"
	edgeHostEnvName = "EDGE_HOST"
	edgePortEnvName = "EDGE_PORT"

	defaultHTTPPort = "8080"
	defaultEdgePort = "8081"
)

type httpConfig struct {
	host string
	port string
}

// NewHTTPConfig - адрес API сервера
func NewHTTPConfig() (config.HTTPConfig, error) {
	return newHTTPConfig(httpHostEnvName, httpPortEnvName, defaultHTTPPort), nil
}

// NewEdgeConfig - адрес edge-прокси с offline-кэшем
func NewEdgeConfig() (config.HTTPConfig, error) {
	return newHTTPConfig(edgeHostEnvName, edgePortEnvName, defaultEdgePort), nil
}

func newHTTPConfig(hostEnv, portEnv, defPort string) *httpConfig {
	port := os.Getenv(portEnv)
	if len(port) == 0 {
		port = defPort
	}
	return &httpConfig{
		host: os.Getenv(hostEnv),
		port: port,
	}
}

func (cfg *httpConfig) Address() string {
	return net.JoinHostPort(cfg.host, cfg.port)
}
