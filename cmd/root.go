package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/CodMac/ng-di-transform/config"
	"github.com/CodMac/ng-di-transform/logger"
	"github.com/CodMac/ng-di-transform/workspace"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ng-di-transform [flags]",
	Short: "Migrate Angular constructor injection to inject() fields.",
	Long: `ng-di-transform rewrites constructor parameter injection in an Angular project
into field injection with inject(). Every typed constructor parameter becomes a
private field initialized with inject(Type), the inject import from @angular/core
is added, and constructors left empty are removed.

Run it from the workspace root with a clean git worktree.`,
	Example: `  ng-di-transform
  ng-di-transform -s component service
  ng-di-transform -s .component.ts -c --dry-run`,
	Args:          validateArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTransform,
}

var (
	scheme           []string
	constr           bool
	projectFile      string
	dryRun           bool
	reportFile       string
	declarationOrder bool
	configFile       string
	verbose          bool
)

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error("%v", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringSliceVarP(&scheme, "scheme", "s", nil, "only process files whose name contains one of these substrings (e.g. component service)")
	rootCmd.Flags().BoolVarP(&constr, "constr", "c", false, "also rewrite constructors whose body contains statements")
	rootCmd.Flags().StringVarP(&projectFile, "project", "p", "tsconfig.json", "tsconfig used to discover source files")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "rewrite in memory only and list the files that would change")
	rootCmd.Flags().StringVar(&reportFile, "report", "", "write per-file outcomes as JSONL to this file")
	rootCmd.Flags().BoolVar(&declarationOrder, "declaration-order", false, "keep injected fields in parameter declaration order")
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file (default .ng-di-transform.yaml in the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// validateArgs 位置参数只能作为 -s 的补充
func validateArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 && !cmd.Flags().Changed("scheme") {
		return fmt.Errorf("unexpected arguments %v, file name patterns must follow -s/--scheme", args)
	}
	return nil
}

func runTransform(cmd *cobra.Command, args []string) error {
	logger.SetVerbose(verbose)

	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cannot determine working dir: %w", err)
	}

	cfg, err := config.Load(dir, configFile)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg, args)

	runner := &Runner{
		Dir:      dir,
		Config:   cfg,
		Worktree: workspace.NewGitWorktreeChecker(),
		DryRun:   dryRun,
	}
	_, err = runner.Run(cmd.Context())
	return err
}

// applyFlags 显式设置的命令行参数覆盖配置文件
func applyFlags(cmd *cobra.Command, cfg *config.Config, args []string) {
	flags := cmd.Flags()
	if flags.Changed("scheme") {
		cfg.Scheme = append(append([]string(nil), scheme...), args...)
	}
	if flags.Changed("constr") {
		cfg.Constr = constr
	}
	if flags.Changed("project") {
		cfg.Project = projectFile
	}
	if flags.Changed("report") {
		cfg.Report = reportFile
	}
	if flags.Changed("declaration-order") {
		cfg.DeclarationOrder = declarationOrder
	}
}
