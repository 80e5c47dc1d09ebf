package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	API struct {
		BaseURL        string  `yaml:"base_url"`
		SiteBase       string  `yaml:"site_base"`
		MaxPages       int     `yaml:"max_pages"`
		TimeoutSeconds int     `yaml:"timeout_seconds"`
		RatePerSec     float64 `yaml:"rate_per_sec"`
		RateBurst      int     `yaml:"rate_burst"`
		Hydrate        bool    `yaml:"hydrate"`
	} `yaml:"api"`

	SMTP struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Username string `yaml:"username"`
		To       string `yaml:"to"`
	} `yaml:"smtp"`

	App struct {
		DataDir string `yaml:"data_dir"`
		Debug   bool   `yaml:"debug"`
	} `yaml:"app"`
}

func Defaults() Config {
	var cfg Config
	cfg.API.BaseURL = "https://vtuapi.internyet.in/api/v1/internships"
	cfg.API.SiteBase = "https://vtu.internyet.in"
	cfg.API.MaxPages = 5
	cfg.API.TimeoutSeconds = 20
	cfg.API.RatePerSec = 1.0
	cfg.API.RateBurst = 2
	cfg.SMTP.Host = "smtp.gmail.com"
	cfg.SMTP.Port = 587
	cfg.App.DataDir = "."
	return cfg
}

func Load(path string) (Config, error) {
	cfg := Defaults()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
