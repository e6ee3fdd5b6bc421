package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration.
type Config struct {
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	Auth struct {
		// Mode selects how bearer tokens are verified: "remote" calls
		// the identity service, "local" verifies HS256 JWTs in-process.
		Mode               string `yaml:"mode"`
		JWTSecret          string `yaml:"jwt_secret"`
		IdentityServiceURL string `yaml:"identity_service_url"`
	} `yaml:"auth"`
	Models struct {
		Acute     string `yaml:"acute"`
		Lifestyle string `yaml:"lifestyle"`
		Synthetic string `yaml:"synthetic"`
	} `yaml:"models"`
	SMTP struct {
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		From     string `yaml:"from"`
	} `yaml:"smtp"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
}

// LoadConfig reads configuration from the specified YAML file.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	return config, nil
}
