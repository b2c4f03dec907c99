package rewriter

import (
	"fmt"

	"github.com/CodMac/ng-di-transform/core"
	"github.com/CodMac/ng-di-transform/model"
)

const (
	DefaultInjectFunction = "inject"
	DefaultInjectModule   = "@angular/core"
)

// Options 控制构造函数改写行为
type Options struct {
	// Force 即使构造函数体包含语句也进行改写 (--constr)
	Force bool
	// DeclarationOrder 按参数声明顺序插入字段；默认总是插入到类体开头
	DeclarationOrder bool
	InjectFunction   string
	InjectModule     string
}

func DefaultOptions() Options {
	return Options{
		InjectFunction: DefaultInjectFunction,
		InjectModule:   DefaultInjectModule,
	}
}

// Rewriter 将构造函数参数注入改写为 inject() 字段注入。
type Rewriter interface {
	// Rewrite 原地修改 fc，返回本文件的改写统计。
	// 出错时 fc 保留出错前已经提交的改写。
	Rewrite(fc *core.FileContext, opts Options) (*model.RewriteStats, error)
}

// LanguageRewriterFactory 是一个工厂函数类型，用于创建特定语言的 Rewriter 实例。
type LanguageRewriterFactory func() Rewriter

var rewriterFactories = make(map[model.Language]LanguageRewriterFactory)

// RegisterRewriter 注册一个语言与其对应的 Rewriter 工厂函数。
func RegisterRewriter(lang model.Language, factory LanguageRewriterFactory) {
	rewriterFactories[lang] = factory
}

// GetRewriter 根据语言类型获取对应的 Rewriter 实例。
func GetRewriter(lang model.Language) (Rewriter, error) {
	factory, ok := rewriterFactories[lang]
	if !ok {
		return nil, fmt.Errorf("no rewriter registered for language: %s", lang)
	}
	return factory(), nil
}
