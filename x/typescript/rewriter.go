package typescript

import (
	"fmt"
	"path/filepath"

	"github.com/CodMac/ng-di-transform/core"
	"github.com/CodMac/ng-di-transform/logger"
	"github.com/CodMac/ng-di-transform/model"
	"github.com/CodMac/ng-di-transform/rewriter"
)

// Rewriter 逐个参数改写构造函数：每处理一个参数就提交编辑并重新收集，
// 后续参数总是基于最新的源码定位。
type Rewriter struct {
	collector *Collector
}

func NewRewriter(c *Collector) *Rewriter {
	return &Rewriter{collector: c}
}

func (r *Rewriter) Rewrite(fc *core.FileContext, opts rewriter.Options) (*model.RewriteStats, error) {
	if opts.InjectFunction == "" {
		opts.InjectFunction = rewriter.DefaultInjectFunction
	}
	if opts.InjectModule == "" {
		opts.InjectModule = rewriter.DefaultInjectModule
	}

	stats := &model.RewriteStats{}
	base := filepath.Base(fc.FilePath)

	for ci := 0; ci < len(fc.Classes); ci++ {
		ki := 0
		for ki < len(fc.Classes[ci].Constructors) {
			ctor := fc.Classes[ci].Constructors[ki]

			if !ctor.IsEmpty() && !opts.Force {
				if hasEligibleParameter(ctor) {
					logger.Warn("Constructor of %s has descendant statements. Skipping refactoring of constructor. You can disable this behaviour with the -c option", base)
					stats.SkippedConstructors++
				}
				ki++
				continue
			}

			removed, err := r.rewriteConstructor(fc, ci, ki, opts, stats)
			if err != nil {
				return stats, fmt.Errorf("class %s: %w", className(fc.Classes[ci]), err)
			}
			if !removed {
				ki++
			}
		}
	}
	return stats, nil
}

// rewriteConstructor 改写第 ci 个类的第 ki 个构造函数，返回构造函数是否已被删除
func (r *Rewriter) rewriteConstructor(fc *core.FileContext, ci, ki int, opts rewriter.Options, stats *model.RewriteStats) (bool, error) {
	pos, inserted := 0, 0

	for {
		cls, ctor, err := constructorAt(fc, ci, ki)
		if err != nil {
			return false, err
		}
		if pos >= len(ctor.Parameters) {
			break
		}

		p := ctor.Parameters[pos]
		if !p.Eligible() {
			logger.Debug("Keeping parameter at %s:%d, no type or not a plain identifier", fc.FilePath, p.Location.StartLine)
			pos++
			continue
		}

		if err := r.rewriteParameter(fc, cls, ctor, pos, inserted, opts); err != nil {
			return false, fmt.Errorf("parameter %s: %w", p.Name, err)
		}
		logger.Debug("Rewrote parameter %s: %s in %s", p.Name, p.Type, fc.FilePath)
		inserted++
		stats.RewrittenParameters++
	}

	if inserted == 0 {
		return false, nil
	}

	_, ctor, err := constructorAt(fc, ci, ki)
	if err != nil {
		return false, err
	}
	if len(ctor.Parameters) > 0 || !ctor.IsEmpty() {
		return false, nil
	}

	b := core.NewEditBuilder()
	span := removalRange(fc.Source, ctor.RemovalSpan())
	b.Delete(span.Start, span.End)
	if err := r.commit(fc, b); err != nil {
		return false, fmt.Errorf("remove constructor: %w", err)
	}
	stats.RemovedConstructors++
	return true, nil
}

// rewriteParameter 把一个参数改写为字段：补充 import、插入字段、删除参数，一次提交
func (r *Rewriter) rewriteParameter(fc *core.FileContext, cls *model.ClassDecl, ctor *model.ConstructorDecl, pos, inserted int, opts rewriter.Options) error {
	p := ctor.Parameters[pos]
	b := core.NewEditBuilder()

	// 已有别名导入时字段使用别名
	local := addImportEdits(b, fc, opts.InjectModule, opts.InjectFunction)
	insertField(b, fc.Source, cls, model.NewInjectedField(p, local), inserted, opts.DeclarationOrder)
	removeParameter(b, ctor, pos)

	return r.commit(fc, b)
}

func (r *Rewriter) commit(fc *core.FileContext, b *core.EditBuilder) error {
	if err := fc.Apply(b.Edits); err != nil {
		return err
	}
	return r.collector.Collect(fc)
}

// insertField 默认插入到类体开头，后插入的字段在前；
// declarationOrder 时插入到上一个生成的字段之后。
func insertField(b *core.EditBuilder, src []byte, cls *model.ClassDecl, field *model.FieldDecl, inserted int, declarationOrder bool) {
	nl := lineBreak(src, cls.Body.Start)
	offset := cls.Body.Start + 1
	if declarationOrder && inserted > 0 && inserted <= len(cls.Members) {
		offset = cls.Members[inserted-1].End
	}

	next := offset
	for next < cls.Body.End-1 && isHorizontalSpace(src[next]) {
		next++
	}
	line := nl + cls.BodyIndent + field.String()
	switch {
	case cls.SingleLine:
		b.Insert(offset, line)
	case src[next] != '\n' && src[next] != '\r' && src[next] != '}':
		// 同一行后面还有成员，把它移到下一行
		b.ReplaceRange(offset, next, line+nl+cls.BodyIndent)
	default:
		b.Insert(offset, line)
	}

	if cls.SingleLine {
		closing := cls.Body.End - 1
		from := closing
		for from > cls.Body.Start+1 && isHorizontalSpace(src[from-1]) {
			from--
		}
		b.ReplaceRange(from, closing, nl+cls.LineIndent)
	}
}

// removeParameter 删除参数及其分隔符
func removeParameter(b *core.EditBuilder, ctor *model.ConstructorDecl, pos int) {
	params := ctor.Parameters
	p := params[pos]
	switch {
	case len(params) == 1:
		b.ReplaceRange(ctor.ParamList.Start, ctor.ParamList.End, "()")
	case pos < len(params)-1:
		b.Delete(p.Span.Start, params[pos+1].Span.Start)
	default:
		b.Delete(params[pos-1].Span.End, p.Span.End)
	}
}

func constructorAt(fc *core.FileContext, ci, ki int) (*model.ClassDecl, *model.ConstructorDecl, error) {
	if ci >= len(fc.Classes) || ki >= len(fc.Classes[ci].Constructors) {
		return nil, nil, fmt.Errorf("constructor #%d of class #%d not found after rewrite", ki, ci)
	}
	cls := fc.Classes[ci]
	return cls, cls.Constructors[ki], nil
}

func hasEligibleParameter(ctor *model.ConstructorDecl) bool {
	for _, p := range ctor.Parameters {
		if p.Eligible() {
			return true
		}
	}
	return false
}

func className(cls *model.ClassDecl) string {
	if cls.Name == "" {
		return "<anonymous>"
	}
	return cls.Name
}
