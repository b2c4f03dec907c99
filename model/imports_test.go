package model_test

import (
	"testing"

	"github.com/CodMac/ng-di-transform/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportSet_Upsert(t *testing.T) {
	set := model.NewImportSet()
	set.Add(&model.ImportStatement{Specifier: "@angular/core", Names: []string{"Type"}, TypeOnly: true})
	set.Add(&model.ImportStatement{Specifier: "@angular/core", Names: []string{"Component"}})

	action, stmt := set.Upsert("@angular/core", "inject")
	assert.Equal(t, model.ImportExtended, action)
	require.NotNil(t, stmt)
	assert.Equal(t, []string{"Component", "inject"}, stmt.Names)

	// 收敛
	action, stmt = set.Upsert("@angular/core", "inject")
	assert.Equal(t, model.ImportPresent, action)
	assert.Nil(t, stmt)
	assert.Len(t, set.Statements, 2)
}

func TestImportSet_UpsertAppends(t *testing.T) {
	set := model.NewImportSet()
	set.Add(&model.ImportStatement{Specifier: "@angular/core", Namespace: "ng"})
	set.Add(&model.ImportStatement{Specifier: "@angular/core/testing", Names: []string{"inject"}})

	assert.False(t, set.Has("@angular/core", "inject"))
	assert.Nil(t, set.Lookup("@angular/core"))

	action, stmt := set.Upsert("@angular/core", "inject")
	assert.Equal(t, model.ImportAppended, action)
	assert.True(t, stmt.Appended)
	assert.Equal(t, []string{"inject"}, stmt.Names)
	assert.Equal(t, -1, stmt.LastSpecifierEnd)
	assert.True(t, set.Has("@angular/core", "inject"))
	assert.Equal(t, "appended", action.String())
}

func TestImportSet_TypeOnlyDoesNotCount(t *testing.T) {
	set := model.NewImportSet()
	set.Add(&model.ImportStatement{Specifier: "@angular/core", Names: []string{"inject"}, TypeOnly: true})

	assert.False(t, set.Has("@angular/core", "inject"))
	action, _ := set.Upsert("@angular/core", "inject")
	assert.Equal(t, model.ImportAppended, action)
}

func TestNewImportSet_Defaults(t *testing.T) {
	set := model.NewImportSet()
	assert.Equal(t, -1, set.End)
	assert.Equal(t, `"`, set.Quote)
}

func TestImportSet_LocalName(t *testing.T) {
	set := model.NewImportSet()
	set.Add(&model.ImportStatement{Specifier: "@angular/core", Names: []string{"inject"}, Locals: []string{"di"}, TypeOnly: true})
	set.Add(&model.ImportStatement{Specifier: "@angular/core", Names: []string{"Component", "inject"}, Locals: []string{"Component", "ngInject"}})

	local, ok := set.LocalName("@angular/core", "inject")
	assert.True(t, ok)
	assert.Equal(t, "ngInject", local)

	// 没有别名信息时使用导入名
	set.Add(&model.ImportStatement{Specifier: "@ngrx/store", Names: []string{"Store"}})
	local, ok = set.LocalName("@ngrx/store", "Store")
	assert.True(t, ok)
	assert.Equal(t, "Store", local)

	_, ok = set.LocalName("@angular/core", "Injector")
	assert.False(t, ok)
}

func TestImportSet_UpsertKeepsLocalsAligned(t *testing.T) {
	set := model.NewImportSet()
	set.Add(&model.ImportStatement{Specifier: "@angular/core", Names: []string{"Component", "OnInit"}})

	_, stmt := set.Upsert("@angular/core", "inject")
	require.NotNil(t, stmt)
	assert.Equal(t, []string{"Component", "OnInit", "inject"}, stmt.Locals)
	assert.Equal(t, len(stmt.Names), len(stmt.Locals))
}
