package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/CodMac/ng-di-transform/model"
	"github.com/CodMac/ng-di-transform/parser"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

var ErrSyntax = errors.New("source contains syntax errors")

// FileContext 是一次运行中单个源文件的内存表示。
// Classes 与 Imports 由 Collector 根据当前语法树填充，每次 Apply 之后需要重新收集。
type FileContext struct {
	FilePath string
	Language model.Language
	Source   []byte
	RootNode *sitter.Node
	Classes  []*model.ClassDecl
	Imports  *model.ImportSet
	Modified bool

	mode   fs.FileMode
	parser parser.Parser
	tree   *sitter.Tree
}

func NewFileContext(filePath string, lang model.Language, source []byte, p parser.Parser) *FileContext {
	return &FileContext{
		FilePath: filePath,
		Language: lang,
		Source:   source,
		Imports:  model.NewImportSet(),
		mode:     0o644,
		parser:   p,
	}
}

// LoadFileContext 读取文件内容，保留文件权限以便写回
func LoadFileContext(filePath string, lang model.Language, p parser.Parser) (*FileContext, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file %s: %w", filePath, err)
	}
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	fc := NewFileContext(filePath, lang, content, p)
	fc.mode = info.Mode().Perm()
	return fc, nil
}

// Parse 解析当前源码；存在语法错误的文件不做改写
func (fc *FileContext) Parse() error {
	tree, err := fc.parser.Parse(fc.Source)
	if err != nil {
		return err
	}

	root := tree.RootNode()
	if root.HasError() {
		tree.Close()
		return fmt.Errorf("%w (first at %s)", ErrSyntax, firstErrorPosition(root))
	}

	fc.replaceTree(tree)
	return nil
}

// Apply 应用一组文本编辑并重新解析。
// 编辑结果无法解析时回滚，源码保持调用前的状态。
func (fc *FileContext) Apply(edits []TextEdit) error {
	if len(edits) == 0 {
		return nil
	}

	updated, err := ApplyEdits(fc.Source, edits)
	if err != nil {
		return err
	}

	tree, err := fc.parser.Parse(updated)
	if err != nil {
		return err
	}
	if root := tree.RootNode(); root.HasError() {
		tree.Close()
		return fmt.Errorf("rewrite produced invalid source: %w (first at %s)", ErrSyntax, firstErrorPosition(root))
	}

	fc.Source = updated
	fc.Modified = true
	fc.replaceTree(tree)
	return nil
}

// Close 释放语法树
func (fc *FileContext) Close() {
	if fc.tree != nil {
		fc.tree.Close()
		fc.tree = nil
		fc.RootNode = nil
	}
}

func (fc *FileContext) replaceTree(tree *sitter.Tree) {
	fc.Close()
	fc.tree = tree
	fc.RootNode = tree.RootNode()
}

// firstErrorPosition 找到第一个 ERROR 或 MISSING 节点的位置，便于定位
func firstErrorPosition(node *sitter.Node) string {
	if node.IsError() || node.IsMissing() {
		pos := node.StartPosition()
		return fmt.Sprintf("%d:%d", pos.Row+1, pos.Column+1)
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.HasError() {
			return firstErrorPosition(child)
		}
	}
	pos := node.StartPosition()
	return fmt.Sprintf("%d:%d", pos.Row+1, pos.Column+1)
}
