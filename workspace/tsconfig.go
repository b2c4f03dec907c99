package workspace

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/CodMac/ng-di-transform/logger"
	"github.com/CodMac/ng-di-transform/model"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/tailscale/hujson"
)

// TSConfig 是 tsconfig.json 中与文件发现相关的部分
type TSConfig struct {
	Files           []string `json:"files"`
	Include         []string `json:"include"`
	Exclude         []string `json:"exclude"`
	CompilerOptions struct {
		OutDir string `json:"outDir"`
	} `json:"compilerOptions"`

	// tsconfig.json 所在目录
	Dir string `json:"-"`
}

var defaultExcludes = []string{"node_modules", "bower_components", "jspm_packages"}

// LoadTSConfig 读取 tsconfig.json，允许注释与结尾逗号
func LoadTSConfig(configPath string) (*TSConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", configPath, err)
	}

	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
	}

	var cfg TSConfig
	if err := json.Unmarshal(std, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", configPath, err)
	}

	abs, err := filepath.Abs(filepath.Dir(configPath))
	if err != nil {
		return nil, err
	}
	cfg.Dir = abs
	return &cfg, nil
}

// SourceFiles 返回 tsconfig 覆盖的 TypeScript 源文件（绝对路径，有序，去重）
func (c *TSConfig) SourceFiles() ([]string, error) {
	seen := make(map[string]bool)
	var result []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			result = append(result, p)
		}
	}

	for _, f := range c.Files {
		p := f
		if !filepath.IsAbs(p) {
			p = filepath.Join(c.Dir, p)
		}
		if isSourceFile(p) {
			add(filepath.Clean(p))
		}
	}

	include := c.includePatterns()
	exclude := c.excludePatterns()
	if len(include) == 0 {
		sort.Strings(result)
		return result, nil
	}

	err := filepath.WalkDir(c.Dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != c.Dir && (d.Name() == "node_modules" || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !isSourceFile(p) {
			return nil
		}

		rel, err := filepath.Rel(c.Dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if matchAny(include, rel) && !matchAny(exclude, rel) {
			add(p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", c.Dir, err)
	}

	sort.Strings(result)
	logger.Debug("tsconfig in %s matched %d source file(s)", c.Dir, len(result))
	return result, nil
}

func (c *TSConfig) includePatterns() []string {
	if len(c.Include) > 0 {
		return normalizePatterns(c.Include)
	}
	if len(c.Files) > 0 {
		return nil
	}
	return []string{"**/*"}
}

func (c *TSConfig) excludePatterns() []string {
	if len(c.Exclude) > 0 {
		return normalizePatterns(c.Exclude)
	}
	patterns := append([]string(nil), defaultExcludes...)
	if c.CompilerOptions.OutDir != "" {
		patterns = append(patterns, c.CompilerOptions.OutDir)
	}
	return normalizePatterns(patterns)
}

func normalizePatterns(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimPrefix(path.Clean(filepath.ToSlash(p)), "./")
		if p == "" || p == "." {
			p = "**/*"
		}
		out = append(out, p)
	}
	return out
}

// matchAny 模式既可以匹配文件，也可以匹配其所在目录
func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(p+"/**", rel); ok {
			return true
		}
	}
	return false
}

func isSourceFile(p string) bool {
	if model.IsDeclarationFile(p) {
		return false
	}
	switch filepath.Ext(p) {
	case ".ts", ".tsx", ".mts", ".cts":
		return true
	}
	return false
}
