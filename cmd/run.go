package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/CodMac/ng-di-transform/config"
	"github.com/CodMac/ng-di-transform/filter"
	"github.com/CodMac/ng-di-transform/logger"
	"github.com/CodMac/ng-di-transform/model"
	"github.com/CodMac/ng-di-transform/output"
	"github.com/CodMac/ng-di-transform/processor"
	"github.com/CodMac/ng-di-transform/rewriter"
	"github.com/CodMac/ng-di-transform/workspace"

	_ "github.com/CodMac/ng-di-transform/x/typescript" // 注册 TypeScript / TSX
)

// Runner 执行一次完整的迁移：前置检查、文件发现、改写、保存与报告
type Runner struct {
	Dir      string
	Config   *config.Config
	Worktree workspace.WorktreeChecker
	DryRun   bool
}

func (r *Runner) Run(ctx context.Context) (*model.Summary, error) {
	cfg := r.Config
	if cfg == nil {
		cfg = config.Default()
	}

	if err := r.checkPreconditions(ctx, cfg); err != nil {
		return nil, err
	}

	tsconfig, err := workspace.LoadTSConfig(r.resolve(cfg.Project))
	if err != nil {
		return nil, err
	}
	files, err := tsconfig.SourceFiles()
	if err != nil {
		return nil, err
	}
	logger.Debug("Found %d source file(s) in %s", len(files), cfg.Project)

	opts := rewriter.DefaultOptions()
	opts.Force = cfg.Constr
	opts.DeclarationOrder = cfg.DeclarationOrder

	fp := processor.NewFileProcessor(filter.NewSchemeFilter(cfg.Scheme), opts)
	project, summary, err := fp.ProcessFiles(ctx, files)
	defer project.Close()
	if err != nil {
		return summary, err
	}

	written, err := project.Save(r.DryRun)
	if err != nil {
		return summary, err
	}
	for _, path := range written {
		if r.DryRun {
			logger.Info("Would rewrite %s", r.relative(path))
		} else {
			logger.Debug("Saved %s", path)
		}
	}

	t := summary.Totals
	logger.Info("%d file(s) rewritten, %d unchanged, %d filtered, %d failed. %d parameter(s) rewritten, %d constructor(s) removed, %d skipped",
		summary.Count(model.StatusRewritten), summary.Count(model.StatusUnchanged), summary.Count(model.StatusFiltered), summary.Count(model.StatusFailed),
		t.RewrittenParameters, t.RemovedConstructors, t.SkippedConstructors)
	logger.Success("All done")

	if cfg.Report != "" {
		n, err := output.ExportOutcomes(r.resolve(cfg.Report), summary)
		if err != nil {
			return summary, fmt.Errorf("failed to write report: %w", err)
		}
		logger.Debug("Wrote %d outcome(s) to %s", n, cfg.Report)
	}
	return summary, nil
}

// checkPreconditions 任何一项不满足都不会修改文件
func (r *Runner) checkPreconditions(ctx context.Context, cfg *config.Config) error {
	checker := r.Worktree
	if checker == nil {
		checker = workspace.NewGitWorktreeChecker()
	}

	clean, err := checker.IsClean(ctx, r.Dir)
	if err != nil {
		logger.Error("Error checking Git worktree status: %v", err)
		clean = false
	}
	if !clean {
		return fmt.Errorf("%w, please commit or stash your changes before running this script", workspace.ErrDirtyWorktree)
	}

	if err := workspace.CheckAngular(r.Dir, cfg.MinAngularVersion); err != nil {
		if errors.Is(err, workspace.ErrUnsupportedFramework) {
			return fmt.Errorf("please run this command inside of an Angular workspace with @angular/core >= %s: %w", cfg.MinAngularVersion, err)
		}
		return err
	}
	return nil
}

func (r *Runner) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(r.Dir, p)
}

func (r *Runner) relative(p string) string {
	if rel, err := filepath.Rel(r.Dir, p); err == nil {
		return rel
	}
	return p
}
