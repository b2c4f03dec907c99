package main_test

import (
	"context"
	"os"
	"testing"

	"github.com/CodMac/ng-di-transform/filter"
	"github.com/CodMac/ng-di-transform/model"
	"github.com/CodMac/ng-di-transform/processor"
	"github.com/CodMac/ng-di-transform/rewriter"
)

func TestFileProcessor_ProcessFiles_TypeScript(t *testing.T) {
	componentPath := getTestFilePath("app.component.ts")
	servicePath := getTestFilePath("user.service.ts")
	widgetPath := getTestFilePath("widget.tsx")
	brokenPath := getTestFilePath("broken.component.ts")

	filePaths := []string{componentPath, servicePath, widgetPath, brokenPath}

	// 1. 初始化处理器
	proc := processor.NewFileProcessor(filter.NewSchemeFilter(nil), rewriter.DefaultOptions())

	// 2. 处理（只在内存中改写，不保存）
	project, summary, err := proc.ProcessFiles(context.Background(), filePaths)
	if err != nil {
		t.Fatalf("Processor failed to process files: %v", err)
	}
	defer project.Close()

	// 3. 验证结果
	expectedStatus := map[string]model.FileStatus{
		componentPath: model.StatusRewritten,
		servicePath:   model.StatusUnchanged,
		widgetPath:    model.StatusRewritten,
		brokenPath:    model.StatusFailed,
	}
	for _, outcome := range summary.Outcomes {
		if want := expectedStatus[outcome.FilePath]; want != outcome.Status {
			t.Errorf("Expected %s for %s, got %s (%s)", want, outcome.FilePath, outcome.Status, outcome.Error)
		}
	}

	if summary.Totals.RewrittenParameters != 3 {
		t.Errorf("Expected 3 rewritten parameters, got %d", summary.Totals.RewrittenParameters)
	}
	if summary.Totals.SkippedConstructors != 1 {
		t.Errorf("Expected 1 skipped constructor, got %d", summary.Totals.SkippedConstructors)
	}

	fc, ok := project.File(componentPath)
	if !ok {
		t.Fatalf("Expected %s in project", componentPath)
	}
	expected, err := os.ReadFile(getTestFilePath("app.component.expected.ts"))
	if err != nil {
		t.Fatal(err)
	}
	if string(fc.Source) != string(expected) {
		t.Errorf("Unexpected rewrite result:\n%s", fc.Source)
	}
}
