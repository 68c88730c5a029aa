package config

import (
	"fmt"

	"github.com/robfig/config"
)

// ConfigFilePath is the default path to the config file
const ConfigFilePath string = "/etc/registry/registry.conf"

// RegistrySection is the [registry] section of the config file
const RegistrySection string = "registry"

// Config file keys
const (
	Environment = "environment"

	DatabaseHost     = "database_host"
	DatabasePort     = "database_port"
	DatabaseName     = "database_database"
	DatabaseUsername = "database_username"
	DatabasePassword = "database_password"

	ListenPort = "listen_port"

	MemcachedHost = "memcached_host"
	MemcachedPort = "memcached_port"
)

var configRequiredStrings = []string{
	DatabaseHost,
	DatabaseName,
	DatabasePassword,
	DatabaseUsername,
	Environment,
	MemcachedHost,
}

var configRequiredInt64s = []string{
	DatabasePort,
	ListenPort,
	MemcachedPort,
}

// ConfigStrings contains the string values for the given config keys
var ConfigStrings = map[string]string{}

// ConfigInt64s contains the int64 values for the given config keys
var ConfigInt64s = map[string]int64{}

// Init reads the config file at path and populates ConfigStrings and
// ConfigInt64s. Every required key must be present.
func Init(path string) error {
	if path == "" {
		path = ConfigFilePath
	}

	c, err := config.ReadDefault(path)
	if err != nil {
		return fmt.Errorf("could not read config file %s: %v", path, err)
	}

	for _, key := range configRequiredStrings {
		s, err := c.String(RegistrySection, key)
		if err != nil {
			return fmt.Errorf("config key [%s] %s: %v", RegistrySection, key, err)
		}
		ConfigStrings[key] = s
	}

	for _, key := range configRequiredInt64s {
		i, err := c.Int(RegistrySection, key)
		if err != nil {
			return fmt.Errorf("config key [%s] %s: %v", RegistrySection, key, err)
		}
		ConfigInt64s[key] = int64(i)
	}

	return nil
}
