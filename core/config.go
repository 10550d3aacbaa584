package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host            string
		Address         string
		DebugHost       string
		ShutdownTimeout time.Duration
		AllowOrigins    []string
		DisableReqLogs  bool
	}

	AssistantConfig struct {
		Provider    string // anthropic | console
		APIKey      string
		BaseURL     string
		Model       string
		MaxTokens   int64
		Temperature float64
		Timeout     time.Duration
		CacheTTL    time.Duration
	}

	CLIConfig struct {
		BaseURL string
		Timeout time.Duration
	}

	Config struct {
		AppName      string
		Env          string // DEV (local; default), TEST, QA, PROD
		Build        string
		Debug        bool
		TestMode     bool
		RollbarToken string
		WorkDir      string

		Server    ServerConfig
		Assistant AssistantConfig
		CLI       CLIConfig
	}
)

// NewConfig loads the app configuration from defaults, config/.env.<env> and the environment.
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Trackademics")
	conf.SetDefault("build", "dev")
	conf.SetDefault("testMode", false)
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("server.host", "localhost")
	conf.SetDefault("server.address", ":8000")
	conf.SetDefault("server.debugHost", ":4000")
	conf.SetDefault("server.shutdownTimeout", 5*time.Second)
	conf.SetDefault("server.allowOrigins", []string{"*"})
	conf.SetDefault("server.disableReqLogs", false)
	conf.SetDefault("assistant.provider", "console")
	conf.SetDefault("assistant.apiKey", "")
	conf.SetDefault("assistant.baseURL", "")
	conf.SetDefault("assistant.model", "claude-3-5-haiku-latest")
	conf.SetDefault("assistant.maxTokens", 1024)
	conf.SetDefault("assistant.temperature", 0.7)
	conf.SetDefault("assistant.timeout", 30*time.Second)
	conf.SetDefault("assistant.cacheTTL", 10*time.Minute)
	conf.SetDefault("cli.baseURL", "http://127.0.0.1:8000")
	conf.SetDefault("cli.timeout", 60*time.Second)

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	wd := Getwd()
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		AppName:      conf.GetString("appName"),
		Env:          env,
		Build:        conf.GetString("build"),
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		RollbarToken: conf.GetString("rollbarToken"),
		WorkDir:      wd,
		Server: ServerConfig{
			Host:            conf.GetString("server.host"),
			Address:         conf.GetString("server.address"),
			DebugHost:       conf.GetString("server.debugHost"),
			ShutdownTimeout: conf.GetDuration("server.shutdownTimeout"),
			AllowOrigins:    conf.GetStringSlice("server.allowOrigins"),
			DisableReqLogs:  conf.GetBool("server.disableReqLogs"),
		},
		Assistant: AssistantConfig{
			Provider:    strings.ToLower(conf.GetString("assistant.provider")),
			APIKey:      conf.GetString("assistant.apiKey"),
			BaseURL:     conf.GetString("assistant.baseURL"),
			Model:       conf.GetString("assistant.model"),
			MaxTokens:   conf.GetInt64("assistant.maxTokens"),
			Temperature: conf.GetFloat64("assistant.temperature"),
			Timeout:     conf.GetDuration("assistant.timeout"),
			CacheTTL:    conf.GetDuration("assistant.cacheTTL"),
		},
		CLI: CLIConfig{
			BaseURL: conf.GetString("cli.baseURL"),
			Timeout: conf.GetDuration("cli.timeout"),
		},
	}
}
