package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/CodMac/ng-di-transform/logger"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Scheme            []string `yaml:"scheme"`
	Constr            bool     `yaml:"constr"`
	Project           string   `yaml:"project"`
	DeclarationOrder  bool     `yaml:"declaration_order"`
	MinAngularVersion string   `yaml:"min_angular_version"`
	Report            string   `yaml:"report"`
}

var FileNames = []string{".ng-di-transform.yaml", "ng-di-transform.yaml"}

func Default() *Config {
	return &Config{
		Project:           "tsconfig.json",
		MinAngularVersion: "v14.0.0",
	}
}

// Load 读取 dir 下的配置文件；explicit 非空时只读取该文件且必须存在。
// 文件中未出现的键保持默认值。
func Load(dir, explicit string) (*Config, error) {
	var filePath string
	if explicit != "" {
		filePath = explicit
		if !filepath.IsAbs(filePath) {
			filePath = filepath.Join(dir, filePath)
		}
	} else {
		for _, name := range FileNames {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				filePath = p
				break
			}
		}
	}

	if filePath == "" {
		logger.Debug("No config file found, using default config")
		return Default(), nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filePath, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	if cfg.Project == "" {
		cfg.Project = Default().Project
	}
	if cfg.MinAngularVersion == "" {
		cfg.MinAngularVersion = Default().MinAngularVersion
	}
	logger.Debug("Config file found: %s", filePath)
	if logger.IsVerbose() {
		logger.Debug("Config: %+v", *cfg)
	}

	return cfg, nil
}
