package processor_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/CodMac/ng-di-transform/filter"
	"github.com/CodMac/ng-di-transform/model"
	"github.com/CodMac/ng-di-transform/processor"
	"github.com/CodMac/ng-di-transform/rewriter"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/CodMac/ng-di-transform/x/typescript" // 确保注册 TypeScript
)

func init() {
	color.NoColor = true
}

const componentSource = `import { Component } from '@angular/core';

@Component({ selector: 'app-root', template: '' })
export class AppComponent {
  constructor(private http: HttpClient) {}
}
`

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileProcessor_ProcessFiles(t *testing.T) {
	dir := t.TempDir()
	component := writeFile(t, dir, "app.component.ts", componentSource)
	broken := writeFile(t, dir, "broken.component.ts", "export class Broken {\n  constructor(private a: A {}\n}\n")
	module := writeFile(t, dir, "app.module.ts", "export class AppModule {}\n")
	plain := writeFile(t, dir, "plain.component.ts", "export class Plain {}\n")

	fp := processor.NewFileProcessor(filter.NewSchemeFilter([]string{"component"}), rewriter.DefaultOptions())
	project, summary, err := fp.ProcessFiles(context.Background(), []string{broken, component, module, plain})
	require.NoError(t, err)
	defer project.Close()

	require.Len(t, summary.Outcomes, 4)
	statuses := make(map[string]model.FileStatus)
	for _, o := range summary.Outcomes {
		statuses[o.FilePath] = o.Status
	}
	assert.Equal(t, model.StatusFailed, statuses[broken])
	assert.Equal(t, model.StatusRewritten, statuses[component])
	assert.Equal(t, model.StatusFiltered, statuses[module])
	assert.Equal(t, model.StatusUnchanged, statuses[plain])

	failed := summary.Failed()
	require.Len(t, failed, 1)
	assert.Contains(t, failed[0].Error, "syntax errors")

	assert.Equal(t, []string{component}, project.ModifiedFiles())
	assert.Equal(t, 1, summary.Totals.RewrittenParameters)
	assert.Equal(t, 1, summary.Totals.RemovedConstructors)

	// 保存之前磁盘上的文件不变
	content, err := os.ReadFile(component)
	require.NoError(t, err)
	assert.Equal(t, componentSource, string(content))

	written, err := project.Save(false)
	require.NoError(t, err)
	assert.Equal(t, []string{component}, written)

	content, err = os.ReadFile(component)
	require.NoError(t, err)
	assert.Contains(t, string(content), "private http = inject(HttpClient);")
	assert.Contains(t, string(content), "import { Component, inject } from '@angular/core';")
}

func TestFileProcessor_UnsupportedFiles(t *testing.T) {
	dir := t.TempDir()
	decl := writeFile(t, dir, "typings.d.ts", "export declare class A { constructor(a: A); }\n")
	html := writeFile(t, dir, "app.component.html", "<div></div>\n")
	missing := filepath.Join(dir, "missing.ts")

	fp := processor.NewFileProcessor(nil, rewriter.DefaultOptions())
	project, summary, err := fp.ProcessFiles(context.Background(), []string{decl, html, missing})
	require.NoError(t, err)
	defer project.Close()

	assert.Equal(t, 3, summary.Count(model.StatusFailed))
	assert.Empty(t, project.Files())
}

func TestFileProcessor_DryRun(t *testing.T) {
	dir := t.TempDir()
	component := writeFile(t, dir, "app.component.ts", componentSource)

	fp := processor.NewFileProcessor(nil, rewriter.DefaultOptions())
	project, _, err := fp.ProcessFiles(context.Background(), []string{component})
	require.NoError(t, err)
	defer project.Close()

	written, err := project.Save(true)
	require.NoError(t, err)
	assert.Equal(t, []string{component}, written)

	content, err := os.ReadFile(component)
	require.NoError(t, err)
	assert.Equal(t, componentSource, string(content))
}

func TestFileProcessor_Cancelled(t *testing.T) {
	dir := t.TempDir()
	component := writeFile(t, dir, "app.component.ts", componentSource)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fp := processor.NewFileProcessor(nil, rewriter.DefaultOptions())
	project, summary, err := fp.ProcessFiles(ctx, []string{component})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, summary.Outcomes)
	assert.Empty(t, project.ModifiedFiles())
}
