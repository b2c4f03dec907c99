package processor

import (
	"context"
	"fmt"

	"github.com/CodMac/ng-di-transform/collector"
	"github.com/CodMac/ng-di-transform/core"
	"github.com/CodMac/ng-di-transform/filter"
	"github.com/CodMac/ng-di-transform/logger"
	"github.com/CodMac/ng-di-transform/model"
	"github.com/CodMac/ng-di-transform/parser"
	"github.com/CodMac/ng-di-transform/rewriter"
)

// FileProcessor 逐个文件执行 过滤 → 解析 → 收集 → 改写，并汇总结果。
// 改写以"一次编辑、一次重新解析"为单位，文件之间不共享状态，因此顺序执行。
type FileProcessor struct {
	Filter  filter.FileFilter
	Options rewriter.Options

	parsers map[model.Language]parser.Parser
}

// NewFileProcessor 创建 FileProcessor 实例
func NewFileProcessor(f filter.FileFilter, opts rewriter.Options) *FileProcessor {
	if f == nil {
		f = &filter.DefaultFilter{}
	}
	return &FileProcessor{
		Filter:  f,
		Options: opts,
		parsers: make(map[model.Language]parser.Parser),
	}
}

// ProcessFiles 处理文件列表。单个文件的错误只记录在结果中，不会中断循环；
// 已改写的文件保留在返回的 Project 中，由调用方决定是否保存。
func (fp *FileProcessor) ProcessFiles(ctx context.Context, filePaths []string) (*core.Project, *model.Summary, error) {
	defer fp.closeParsers()

	project := core.NewProject()
	summary := model.NewSummary()

	for _, filePath := range filePaths {
		if err := ctx.Err(); err != nil {
			return project, summary, err
		}

		if !fp.Filter.Accept(filePath) {
			logger.Debug("Skipping %s, does not match scheme", filePath)
			summary.Record(&model.FileOutcome{FilePath: filePath, Status: model.StatusFiltered})
			continue
		}

		outcome := &model.FileOutcome{FilePath: filePath}
		fc, stats, err := fp.processFile(filePath)
		if fc != nil {
			project.Add(fc)
		}
		if stats != nil {
			outcome.RewriteStats = *stats
		}

		switch {
		case err != nil:
			logger.Error("Error processing file %s: %v", filePath, err)
			outcome.Status = model.StatusFailed
			outcome.Error = err.Error()
		case outcome.RewrittenParameters > 0:
			logger.Info("Rewrote %d parameter(s) in %s", outcome.RewrittenParameters, filePath)
			outcome.Status = model.StatusRewritten
		default:
			outcome.Status = model.StatusUnchanged
		}
		summary.Record(outcome)
	}
	return project, summary, nil
}

// processFile 处理单个文件；解析器遇到意外语法树结构导致的 panic 也转为错误
func (fp *FileProcessor) processFile(filePath string) (fc *core.FileContext, stats *model.RewriteStats, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while rewriting: %v", r)
		}
	}()

	lang, err := model.LanguageForPath(filePath)
	if err != nil {
		return nil, nil, err
	}

	p, err := fp.parserFor(lang)
	if err != nil {
		return nil, nil, err
	}
	col, err := collector.GetCollector(lang)
	if err != nil {
		return nil, nil, err
	}
	rw, err := rewriter.GetRewriter(lang)
	if err != nil {
		return nil, nil, err
	}

	fc, err = core.LoadFileContext(filePath, lang, p)
	if err != nil {
		return nil, nil, err
	}
	if err := fc.Parse(); err != nil {
		return nil, nil, err
	}
	if err := col.Collect(fc); err != nil {
		return fc, nil, fmt.Errorf("failed to collect declarations: %w", err)
	}

	stats, err = rw.Rewrite(fc, fp.Options)
	return fc, stats, err
}

// parserFor 每种语言复用同一个 tree-sitter 解析器
func (fp *FileProcessor) parserFor(lang model.Language) (parser.Parser, error) {
	if p, ok := fp.parsers[lang]; ok {
		return p, nil
	}
	p, err := parser.NewParser(lang)
	if err != nil {
		return nil, fmt.Errorf("failed to create parser for %s: %w", lang, err)
	}
	fp.parsers[lang] = p
	return p, nil
}

func (fp *FileProcessor) closeParsers() {
	for lang, p := range fp.parsers {
		p.Close()
		delete(fp.parsers, lang)
	}
}
