package parser

import (
	"fmt"
	"os"

	"github.com/CodMac/ng-di-transform/model"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Parser 定义了所有语言解析器的通用能力
type Parser interface {
	// ParseFile 读取文件内容并解析，返回语法树与源码
	ParseFile(filePath string) (*sitter.Tree, []byte, error)
	// Parse 解析内存中的源码，改写后重新解析时使用
	Parse(source []byte) (*sitter.Tree, error)
	Close()
}

// TreeSitterParser 是 Parser 的具体实现
type TreeSitterParser struct {
	Language model.Language
	tsParser *sitter.Parser
}

// NewParser 创建一个新的 TreeSitterParser 实例
func NewParser(lang model.Language) (*TreeSitterParser, error) {
	tsLang, err := model.GetLanguage(lang)
	if err != nil {
		return nil, err
	}

	tsParser := sitter.NewParser()
	if err := tsParser.SetLanguage(tsLang); err != nil {
		tsParser.Close()
		return nil, fmt.Errorf("failed to set language %s: %w", lang, err)
	}

	return &TreeSitterParser{
		Language: lang,
		tsParser: tsParser,
	}, nil
}

func (p *TreeSitterParser) ParseFile(filePath string) (*sitter.Tree, []byte, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	tree, err := p.Parse(content)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return tree, content, nil
}

func (p *TreeSitterParser) Parse(source []byte) (*sitter.Tree, error) {
	tree := p.tsParser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter failed to parse %s source", p.Language)
	}
	return tree, nil
}

// Close 释放 Tree-sitter 内部资源
func (p *TreeSitterParser) Close() {
	if p.tsParser != nil {
		p.tsParser.Close()
	}
}
