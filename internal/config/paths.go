package config

import "path/filepath"

const (
	// Layout under SKYLARK_HOME.
	ConfigFilePath  = "config.toml"
	EnvFilePath     = ".env"
	HistoryFilePath = "history"
)

func homeConfigPath(home string) string {
	return filepath.Join(home, ConfigFilePath)
}

func homeEnvPath(home string) string {
	return filepath.Join(home, EnvFilePath)
}

func defaultHomePath(home string) string {
	return filepath.Join(home, ".skylark")
}

func (c *Config) ConfigPath() string {
	return homeConfigPath(c.HomeDir)
}

func (c *Config) EnvPath() string {
	return homeEnvPath(c.HomeDir)
}

func (c *Config) HistoryPath() string {
	return filepath.Join(c.HomeDir, HistoryFilePath)
}
