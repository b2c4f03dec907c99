package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/mod/semver"
)

const (
	AngularCorePackage = "@angular/core"
	// DefaultMinAngularVersion 是 inject() 可以在字段初始化器中使用的最低版本
	DefaultMinAngularVersion = "v14.0.0"
)

var ErrUnsupportedFramework = errors.New("not an Angular workspace with a supported @angular/core version")

var versionPattern = regexp.MustCompile(`\d+(\.\d+){0,2}`)

// IsAngularWorkspace dir 下是否存在 angular.json
func IsAngularWorkspace(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, "angular.json"))
	return err == nil && !info.IsDir()
}

type packageJSON struct {
	Dependencies map[string]string `json:"dependencies"`
}

// AngularCoreVersion 读取 package.json 中 @angular/core 的版本，返回 semver 格式 (v16.2.0)。
// 范围表达式取第一个出现的版本号；没有依赖时返回空字符串。
func AngularCoreVersion(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read package.json: %w", err)
	}

	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return "", fmt.Errorf("failed to parse package.json: %w", err)
	}

	raw := strings.TrimSpace(pkg.Dependencies[AngularCorePackage])
	if raw == "" {
		return "", nil
	}
	found := versionPattern.FindString(raw)
	if found == "" {
		return "", fmt.Errorf("unrecognized %s version %q", AngularCorePackage, raw)
	}

	v := semver.Canonical("v" + found)
	if v == "" {
		return "", fmt.Errorf("unrecognized %s version %q", AngularCorePackage, raw)
	}
	return v, nil
}

// CheckAngular 要求 dir 是 Angular 工作区，或者依赖的 @angular/core 不低于 minVersion
func CheckAngular(dir, minVersion string) error {
	if IsAngularWorkspace(dir) {
		return nil
	}

	if minVersion == "" {
		minVersion = DefaultMinAngularVersion
	}
	if !strings.HasPrefix(minVersion, "v") {
		minVersion = "v" + minVersion
	}
	if !semver.IsValid(minVersion) {
		return fmt.Errorf("invalid minimum Angular version %q", minVersion)
	}

	version, err := AngularCoreVersion(dir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedFramework, err)
	}
	if version == "" {
		return fmt.Errorf("%w: no angular.json and no %s dependency in %s", ErrUnsupportedFramework, AngularCorePackage, dir)
	}
	if semver.Compare(version, minVersion) < 0 {
		return fmt.Errorf("%w: %s %s is older than %s", ErrUnsupportedFramework, AngularCorePackage, version, minVersion)
	}
	return nil
}
