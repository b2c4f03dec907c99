package workspace

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/CodMac/ng-di-transform/logger"
)

var ErrDirtyWorktree = errors.New("git worktree is not clean")

// WorktreeChecker 判断工作目录是否干净
type WorktreeChecker interface {
	IsClean(ctx context.Context, dir string) (bool, error)
}

// CommandRunner 在 dir 中执行 git 子命令并返回标准输出
type CommandRunner func(ctx context.Context, dir string, args ...string) ([]byte, error)

// GitWorktreeChecker 通过 git status --porcelain 判断是否存在未提交的修改
type GitWorktreeChecker struct {
	Run CommandRunner
}

func NewGitWorktreeChecker() *GitWorktreeChecker {
	return &GitWorktreeChecker{Run: runGit}
}

func (g *GitWorktreeChecker) IsClean(ctx context.Context, dir string) (bool, error) {
	run := g.Run
	if run == nil {
		run = runGit
	}

	out, err := run(ctx, dir, "status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("failed to check git worktree status: %w", err)
	}
	if len(bytes.TrimSpace(out)) > 0 {
		logger.Debug("git status --porcelain:\n%s", out)
		return false, nil
	}
	return true, nil
}

func runGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := bytes.TrimSpace(stderr.Bytes()); len(msg) > 0 {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return out, nil
}
