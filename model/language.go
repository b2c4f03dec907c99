package model

import (
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Language 标识支持的源码语言
type Language string

const (
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
)

// langMap 存储语言标识到 Tree-sitter 语言对象的映射
var langMap = make(map[Language]*sitter.Language)

// RegisterLanguage 用于注册 Tree-sitter 语言库
func RegisterLanguage(lang Language, tsLang *sitter.Language) {
	langMap[lang] = tsLang
}

// GetLanguage 获取已注册的 Tree-sitter 语言对象
func GetLanguage(lang Language) (*sitter.Language, error) {
	tsLang, ok := langMap[lang]
	if !ok {
		return nil, fmt.Errorf("language %s not registered", lang)
	}

	return tsLang, nil
}

// LanguageForPath 根据文件扩展名判断语言。声明文件 (.d.ts) 不参与改写。
func LanguageForPath(filePath string) (Language, error) {
	base := filepath.Base(filePath)
	if IsDeclarationFile(base) {
		return "", fmt.Errorf("declaration file %s is not rewritable", base)
	}

	switch filepath.Ext(base) {
	case ".ts", ".mts", ".cts":
		return LangTypeScript, nil
	case ".tsx":
		return LangTSX, nil
	default:
		return "", fmt.Errorf("unsupported file extension %q", filepath.Ext(base))
	}
}

// IsDeclarationFile 判断是否为声明文件 (.d.ts / .d.mts / .d.cts)
func IsDeclarationFile(filePath string) bool {
	base := filepath.Base(filePath)
	ext := filepath.Ext(base)
	switch ext {
	case ".ts", ".mts", ".cts":
		return strings.HasSuffix(strings.TrimSuffix(base, ext), ".d")
	}
	return false
}
