// Package config loads node configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/PMeeske/hypergrid/internal/domain"
)

// Config carries the environment-driven settings of one grid node.
type Config struct {
	NodeID      string
	NodeX       int
	NodeY       int
	NodeZ       int
	ComputeMode string
	ListenPort  string
	LogLevel    string

	// External text-generation provider; empty APIKey means the node
	// runs on the local environment.
	ProviderAPIKey  string
	ProviderBaseURL string
	ProviderModel   string

	// MeshPeers is the raw MESH_PEERS value, parsed by the mesh layer.
	MeshPeers string
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		NodeID:          getEnv("NODE_ID", "hypergrid-node"),
		NodeX:           getEnvInt("NODE_X", 0),
		NodeY:           getEnvInt("NODE_Y", 0),
		NodeZ:           getEnvInt("NODE_Z", 0),
		ComputeMode:     getEnv("COMPUTE_MODE", "cpu"),
		ListenPort:      getEnv("LISTEN_PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ProviderAPIKey:  getEnv("OPENAI_API_KEY", ""),
		ProviderBaseURL: getEnv("OPENAI_BASE_URL", ""),
		ProviderModel:   getEnv("OPENAI_MODEL", ""),
		MeshPeers:       getEnv("MESH_PEERS", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

// NodePosition returns the node's coordinate in the grid.
func (c *Config) NodePosition() domain.Coordinate {
	return domain.MustCoordinate(c.NodeX, c.NodeY, c.NodeZ)
}

// GetPortInt returns the listen port as an integer.
func (c *Config) GetPortInt() int {
	p, _ := strconv.Atoi(c.ListenPort)
	return p
}

// UseCPU reports whether the node should run the CPU backend. Unknown
// compute modes fall back to the CPU.
func (c *Config) UseCPU() bool {
	return !strings.EqualFold(c.ComputeMode, "gpu")
}

// HasProvider reports whether an external text-generation provider is
// configured.
func (c *Config) HasProvider() bool {
	return c.ProviderAPIKey != ""
}
