package filter

import (
	"path/filepath"
	"strings"
)

// FileFilter 决定一个文件是否参与改写
type FileFilter interface {
	Accept(filePath string) bool
}

// NewSchemeFilter 根据 --scheme 构造过滤器；未配置时不过滤
func NewSchemeFilter(patterns []string) FileFilter {
	if len(patterns) == 0 {
		return &DefaultFilter{}
	}
	return &SchemeFilter{Patterns: patterns}
}

// SchemeFilter 文件名（不含目录）包含任一子串即通过，区分大小写
type SchemeFilter struct {
	Patterns []string
}

func (f *SchemeFilter) Accept(filePath string) bool {
	base := filepath.Base(filePath)
	for _, p := range f.Patterns {
		if strings.Contains(base, p) {
			return true
		}
	}
	return false
}

// DefaultFilter 默认过滤器：接受所有文件
type DefaultFilter struct{}

func (d *DefaultFilter) Accept(string) bool { return true }
