package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	BackendURL string `mapstructure:"backend_url" json:"backend_url"`
	ListenPort int    `mapstructure:"listen_port" json:"listen_port"`
	Token      string `mapstructure:"token" json:"token"` // persisted session token
	PageSize   int    `mapstructure:"page_size" json:"page_size"`
	BaseDir    string `mapstructure:"base_dir" json:"base_dir"`
}

var GlobalConfig Config

func LoadConfig() error {
	viper.SetConfigName("user_config")
	viper.SetConfigType("json")
	viper.AddConfigPath(".")

	// Set defaults
	viper.SetDefault("backend_url", "http://127.0.0.1:8000")
	viper.SetDefault("listen_port", 3000)
	viper.SetDefault("token", "")
	viper.SetDefault("page_size", 24)
	viper.SetDefault("base_dir", "")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create a default one
			fmt.Println("Config file not found, using defaults")
			viper.WriteConfigAs("user_config.json")
		} else {
			// Config file was found but another error was produced
			return fmt.Errorf("fatal error config file: %w", err)
		}
	}

	// Unmarshal
	// automatically maps config values to the struct fields
	if err := viper.Unmarshal(&GlobalConfig); err != nil {
		return fmt.Errorf("unable to decode into struct: %w", err)
	}

	return nil
}

// UpdateToken persists the session token so a login survives restarts.
// Logout passes an empty string to clear it.
func UpdateToken(token string) error {
	GlobalConfig.Token = token
	viper.Set("token", token)
	if err := viper.WriteConfig(); err != nil {
		// First run may not have a config file on disk yet
		return viper.WriteConfigAs("user_config.json")
	}
	return nil
}

// GetBaseDir get the base directory of the application
func GetBaseDir() string {
	if GlobalConfig.BaseDir != "" {
		return GlobalConfig.BaseDir
	}

	ex, err := os.Executable()
	if err != nil {
		return "."
	}
	exPath := filepath.Dir(ex)

	// Heuristic to detect "go run" which builds into a temp directory.
	// We check for "go-build" which is used by go run, or if the path is inside the system temp directory
	if strings.Contains(exPath, "go-build") || strings.Contains(strings.ToLower(exPath), strings.ToLower(os.TempDir())) {
		wd, err := os.Getwd()
		if err == nil {
			return wd
		}
	}

	return exPath
}
