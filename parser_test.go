package main_test

import (
	"path/filepath"
	"testing"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/CodMac/ng-di-transform/model"
	"github.com/CodMac/ng-di-transform/parser"
	_ "github.com/CodMac/ng-di-transform/x/typescript" // 确保注册 TypeScript 语言
)

// getTestFilePath 辅助函数，用于获取测试文件路径
func getTestFilePath(name string) string {
	currentDir, _ := filepath.Abs(filepath.Dir("."))
	return filepath.Join(currentDir, "x", "typescript", "testdata", name)
}

func TestTreeSitterParser_ParseFile(t *testing.T) {
	// 1. 获取并初始化 TypeScript 解析器
	tsParser, err := parser.NewParser(model.LangTypeScript)
	if err != nil {
		t.Fatalf("Failed to create TypeScript parser: %v", err)
	}
	defer tsParser.Close()

	// 2. 解析一个 TypeScript 文件
	filePath := getTestFilePath("user.service.ts")
	tree, sourceBytes, err := tsParser.ParseFile(filePath)
	if err != nil {
		t.Fatalf("ParseFile failed for %s: %v", filePath, err)
	}
	defer tree.Close()
	if len(sourceBytes) == 0 {
		t.Fatal("SourceBytes is empty after parsing")
	}

	rootNode := tree.RootNode()
	if rootNode.Kind() != "program" {
		t.Errorf("Expected root node kind 'program', got '%s'", rootNode.Kind())
	}
	if rootNode.HasError() {
		t.Errorf("Expected %s to parse without errors", filePath)
	}

	// 3. 查找 export 中的 class_declaration
	var classNode *sitter.Node
	cursor := rootNode.Walk()
	if cursor.GotoFirstChild() {
		for {
			node := cursor.Node()
			if node.Kind() == "export_statement" {
				if decl := node.ChildByFieldName("declaration"); decl != nil && decl.Kind() == "class_declaration" {
					classNode = decl
					break
				}
			}
			if !cursor.GotoNextSibling() {
				break
			}
		}
	}
	cursor.Close()

	if classNode == nil {
		t.Fatal("Could not find 'class_declaration' node.")
	}

	classNameNode := classNode.ChildByFieldName("name")
	if classNameNode == nil || classNameNode.Kind() != "type_identifier" || classNameNode.Utf8Text(sourceBytes) != "UserService" {
		t.Errorf("Expected class name 'UserService', got '%s'", classNameNode.Utf8Text(sourceBytes))
	}
}

func TestTreeSitterParser_TSX(t *testing.T) {
	tsxParser, err := parser.NewParser(model.LangTSX)
	if err != nil {
		t.Fatalf("Failed to create TSX parser: %v", err)
	}
	defer tsxParser.Close()

	tree, _, err := tsxParser.ParseFile(getTestFilePath("widget.tsx"))
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	defer tree.Close()
	if tree.RootNode().HasError() {
		t.Error("Expected widget.tsx to parse without errors")
	}
}

func TestTreeSitterParser_SyntaxError(t *testing.T) {
	tsParser, err := parser.NewParser(model.LangTypeScript)
	if err != nil {
		t.Fatalf("Failed to create TypeScript parser: %v", err)
	}
	defer tsParser.Close()

	tree, _, err := tsParser.ParseFile(getTestFilePath("broken.component.ts"))
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	defer tree.Close()
	if !tree.RootNode().HasError() {
		t.Error("Expected broken.component.ts to contain syntax errors")
	}
}
