package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Crawler   CrawlerConfig   `yaml:"crawler"`
	Anonymize AnonymizeConfig `yaml:"anonymize"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// CrawlerConfig holds collection defaults that are not per-run parameters.
type CrawlerConfig struct {
	// BaseDir is the directory the sink writes posts.<ext> / comments.<ext> to.
	BaseDir string `yaml:"base_dir"`

	// SortBy is the default listing sort mode when the CLI does not set one.
	SortBy string `yaml:"sort_by"`
}

// AnonymizeConfig selects, per entity type, whether author names are
// replaced with salted one-way hashes. The defaults reproduce the original
// crawler: post authors hashed, comment authors stored in plain text.
type AnonymizeConfig struct {
	Posts    bool `yaml:"posts"`
	Comments bool `yaml:"comments"`
}

var config *AppConfig

func defaults() AppConfig {
	return AppConfig{
		Logging: LoggingConfig{Level: "info"},
		Crawler: CrawlerConfig{
			BaseDir: "./data",
			SortBy:  "top",
		},
		Anonymize: AnonymizeConfig{
			Posts:    true,
			Comments: false,
		},
	}
}

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	c := defaults()

	// the config file is optional; defaults cover a bare checkout
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err == nil {
		if err := yaml.Unmarshal(data, &c); err != nil {
			panic(err)
		}
	}

	config = &c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
