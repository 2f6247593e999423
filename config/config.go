package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is loaded from configs/config.<env>.yaml.
type Config struct {
	App    *App    `json:"app" yaml:"app"`
	Server *Server `json:"server" yaml:"server"`
	MySQL  *MySQL  `json:"mysql" yaml:"mysql"`
	Redis  *Redis  `json:"redis" yaml:"redis"`
	Jwt    *Jwt    `json:"jwt" yaml:"jwt"`
	Feed   *Feed   `json:"feed" yaml:"feed"`
	Cursor *Cursor `json:"cursor" yaml:"cursor"`
}

type Server struct {
	Http int `json:"http" yaml:"http"`
}

func New(filename string) *Config {
	content, err := os.ReadFile(filename)
	if err != nil {
		panic(err)
	}

	conf, err := Parse(content)
	if err != nil {
		panic(fmt.Sprintf("parse %s: %v", filename, err))
	}
	return conf
}

// Parse decodes a YAML document and fills in defaults for omitted sections.
func Parse(content []byte) (*Config, error) {
	var conf Config
	if err := yaml.Unmarshal(content, &conf); err != nil {
		return nil, err
	}
	conf.withDefaults()
	return &conf, nil
}

func (c *Config) withDefaults() {
	if c.App == nil {
		c.App = &App{Env: "dev"}
	}
	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Http == 0 {
		c.Server.Http = 8080
	}
	if c.MySQL == nil {
		c.MySQL = &MySQL{}
	}
	if c.Redis == nil {
		c.Redis = &Redis{}
	}
	if c.Jwt == nil {
		c.Jwt = &Jwt{}
	}
	if c.Feed == nil {
		c.Feed = &Feed{}
	}
	c.Feed.withDefaults()
	if c.Cursor == nil {
		c.Cursor = &Cursor{}
	}
	if c.Cursor.Salt == "" {
		c.Cursor.Salt = "inkwell-feed"
	}
	if c.Cursor.MinLength == 0 {
		c.Cursor.MinLength = 12
	}
}

// Debug 调试模式
func (c *Config) Debug() bool {
	return c.App.Debug
}

func ProvideFeedConfig(cfg *Config) *Feed {
	return cfg.Feed
}

func ProvideCursorConfig(cfg *Config) *Cursor {
	return cfg.Cursor
}
