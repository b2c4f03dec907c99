package workspace_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/CodMac/ng-di-transform/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePackageJSON(t *testing.T, dir, version string) {
	content := `{"name": "app", "dependencies": {"@angular/core": "` + version + `"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(content), 0o644))
}

func TestAngularCoreVersion(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "^16.2.0", want: "v16.2.0"},
		{raw: "~15.1", want: "v15.1.0"},
		{raw: ">=14 <18", want: "v14.0.0"},
		{raw: "17.0.0-rc.1", want: "v17.0.0"},
		{raw: "9.1.13", want: "v9.1.13"},
	}
	for _, tt := range tests {
		dir := t.TempDir()
		writePackageJSON(t, dir, tt.raw)

		got, err := workspace.AngularCoreVersion(dir)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestAngularCoreVersion_Missing(t *testing.T) {
	dir := t.TempDir()
	got, err := workspace.AngularCoreVersion(dir)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"dependencies": {"react": "18.0.0"}}`), 0o644))
	got, err = workspace.AngularCoreVersion(dir)
	require.NoError(t, err)
	assert.Empty(t, got)

	writePackageJSON(t, dir, "latest")
	_, err = workspace.AngularCoreVersion(dir)
	assert.Error(t, err)
}

func TestCheckAngular(t *testing.T) {
	t.Run("angular workspace", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "angular.json"), []byte("{}"), 0o644))
		writePackageJSON(t, dir, "^12.0.0")
		assert.True(t, workspace.IsAngularWorkspace(dir))
		assert.NoError(t, workspace.CheckAngular(dir, workspace.DefaultMinAngularVersion))
	})

	t.Run("supported version without angular.json", func(t *testing.T) {
		dir := t.TempDir()
		writePackageJSON(t, dir, "^16.2.0")
		assert.NoError(t, workspace.CheckAngular(dir, ""))
	})

	t.Run("old version", func(t *testing.T) {
		dir := t.TempDir()
		writePackageJSON(t, dir, "^13.3.0")
		err := workspace.CheckAngular(dir, "14.0.0")
		assert.ErrorIs(t, err, workspace.ErrUnsupportedFramework)
	})

	t.Run("no angular at all", func(t *testing.T) {
		err := workspace.CheckAngular(t.TempDir(), workspace.DefaultMinAngularVersion)
		assert.ErrorIs(t, err, workspace.ErrUnsupportedFramework)
	})

	t.Run("invalid minimum", func(t *testing.T) {
		dir := t.TempDir()
		writePackageJSON(t, dir, "^16.2.0")
		err := workspace.CheckAngular(dir, "latest")
		require.Error(t, err)
		assert.NotErrorIs(t, err, workspace.ErrUnsupportedFramework)
	})
}
