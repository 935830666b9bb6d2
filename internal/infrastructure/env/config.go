package env

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv    string          `mapstructure:"app_env"`
	Ollama    OllamaConfig    `mapstructure:"ollama"`
	MCPServer MCPServerConfig `mapstructure:"mcp_server"`
	Agent     AgentConfig     `mapstructure:"agent"`
	Log       LogConfig       `mapstructure:"log"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type OllamaConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type MCPServerConfig struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
	Env     []string `mapstructure:"env"`
}

type AgentConfig struct {
	MaxTurns     int     `mapstructure:"max_turns"`
	SystemPrompt string  `mapstructure:"system_prompt"`
	Temperature  float32 `mapstructure:"temperature"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Dir   string `mapstructure:"dir"`
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// FlagBindings maps config keys to command-line flag names.
var FlagBindings = map[string]string{
	"ollama.model":       "model",
	"ollama.base_url":    "ollama-url",
	"mcp_server.command": "mcp-command",
	"mcp_server.args":    "mcp-arg",
	"agent.max_turns":    "max-turns",
	"log.level":          "log-level",
	"metrics.addr":       "metrics-addr",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "dev")
	v.SetDefault("ollama.base_url", "http://localhost:11434/v1")
	v.SetDefault("ollama.model", "mistral:latest")
	v.SetDefault("ollama.api_key", "ollama")
	v.SetDefault("ollama.timeout", 60*time.Second)
	v.SetDefault("mcp_server.command", "")
	v.SetDefault("mcp_server.args", []string{})
	v.SetDefault("mcp_server.env", []string{})
	v.SetDefault("agent.max_turns", 10)
	v.SetDefault("agent.system_prompt", "")
	v.SetDefault("agent.temperature", 0.0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.dir", "log")
	v.SetDefault("metrics.addr", "")
}

// Load assembles the configuration from defaults, an optional config file,
// the environment (OLLAMA_MODEL, MCP_SERVER_COMMAND, ...) and flags, in
// increasing priority. An empty configFile looks for ./agent.yaml.
func Load(configFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("agent")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for key, name := range FlagBindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Ollama.BaseURL == "" {
		return errors.New("config: ollama.base_url is required")
	}
	if c.Ollama.Model == "" {
		return errors.New("config: ollama.model is required")
	}
	if c.Agent.MaxTurns <= 0 {
		return fmt.Errorf("config: agent.max_turns must be positive, got %d", c.Agent.MaxTurns)
	}
	return nil
}
