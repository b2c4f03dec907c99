package typescript

import (
	"github.com/CodMac/ng-di-transform/collector"
	"github.com/CodMac/ng-di-transform/model"
	"github.com/CodMac/ng-di-transform/rewriter"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

func init() {
	// 注册 Tree-sitter TypeScript / TSX 语言对象
	model.RegisterLanguage(model.LangTypeScript, sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()))
	model.RegisterLanguage(model.LangTSX, sitter.NewLanguage(tree_sitter_typescript.LanguageTSX()))

	// 两种方言的节点结构一致，共用同一套 Collector / Rewriter
	col := NewCollector()
	for _, lang := range []model.Language{model.LangTypeScript, model.LangTSX} {
		collector.RegisterCollector(lang, col)
		rewriter.RegisterRewriter(lang, func() rewriter.Rewriter { return NewRewriter(col) })
	}
}
