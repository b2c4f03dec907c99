package filter_test

import (
	"testing"

	"github.com/CodMac/ng-di-transform/filter"
	"github.com/stretchr/testify/assert"
)

func TestSchemeFilter_Accept(t *testing.T) {
	f := filter.NewSchemeFilter([]string{"component", "service"})

	assert.True(t, f.Accept("/src/app/app.component.ts"))
	assert.True(t, f.Accept("/src/app/user.service.ts"))
	assert.False(t, f.Accept("/src/app/app.module.ts"))
	// 只匹配文件名，不匹配目录
	assert.False(t, f.Accept("/src/components/button.ts"))
	// 区分大小写
	assert.False(t, f.Accept("/src/app/App.Component.ts"))
}

func TestNewSchemeFilter_NoPatterns(t *testing.T) {
	f := filter.NewSchemeFilter(nil)
	assert.IsType(t, &filter.DefaultFilter{}, f)
	assert.True(t, f.Accept("/src/anything.ts"))
}
