package typescript

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/CodMac/ng-di-transform/core"
	"github.com/CodMac/ng-di-transform/model"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Collector 收集顶层类声明（含 export 的类）与 import 语句。
// 与 ts-morph 的 getClasses 一致，嵌套在函数或命名空间中的类不处理。
type Collector struct{}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Collect(fc *core.FileContext) error {
	if fc.RootNode == nil {
		return fmt.Errorf("file %s has not been parsed", fc.FilePath)
	}
	root := fc.RootNode
	if root.Kind() != KindProgram {
		return fmt.Errorf("unexpected root node %q in %s", root.Kind(), fc.FilePath)
	}

	imports := model.NewImportSet()
	imports.Anchor = 0
	var classes []*model.ClassDecl
	anchored := false

	for i := uint(0); i < root.NamedChildCount(); i++ {
		child := root.NamedChild(i)
		if child == nil {
			continue
		}
		kind := child.Kind()
		if kind == KindComment || kind == KindHashBangLine {
			continue
		}
		if !anchored {
			imports.Anchor = int(child.StartByte())
			anchored = true
		}

		switch kind {
		case KindImportStatement:
			stmt := c.collectImport(child, fc.Source)
			if len(imports.Statements) == 0 && stmt.SourceStart < len(fc.Source) {
				if q := fc.Source[stmt.SourceStart]; q == '\'' || q == '"' {
					imports.Quote = string(q)
				}
			}
			imports.Add(stmt)
			imports.End = int(child.EndByte())
		case KindClassDeclaration, KindAbstractClass:
			if cls := c.collectClass(child, fc); cls != nil {
				classes = append(classes, cls)
			}
		case KindExportStatement:
			if decl := exportedClass(child); decl != nil {
				if cls := c.collectClass(decl, fc); cls != nil {
					classes = append(classes, cls)
				}
			}
		}
	}

	fc.Classes = classes
	fc.Imports = imports
	return nil
}

// exportedClass 返回 export class / export default class 中的类节点
func exportedClass(node *sitter.Node) *sitter.Node {
	if decl := node.ChildByFieldName("declaration"); decl != nil && isClassKind(decl.Kind()) {
		return decl
	}
	if value := node.ChildByFieldName("value"); value != nil && value.Kind() == KindClassExpression {
		return value
	}
	return nil
}

func isClassKind(kind string) bool {
	return kind == KindClassDeclaration || kind == KindAbstractClass || kind == KindClassExpression
}

func (c *Collector) collectImport(node *sitter.Node, src []byte) *model.ImportStatement {
	stmt := &model.ImportStatement{
		Span:             spanOf(node),
		LastSpecifierEnd: -1,
		DefaultEnd:       -1,
	}

	if source := node.ChildByFieldName("source"); source != nil {
		stmt.SourceStart = int(source.StartByte())
		stmt.Specifier = unquote(c.getNodeContent(source, src))
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch {
		case !child.IsNamed() && child.Kind() == "type":
			stmt.TypeOnly = true
		case child.Kind() == KindImportClause:
			c.collectImportClause(child, src, stmt)
		}
	}
	return stmt
}

func (c *Collector) collectImportClause(clause *sitter.Node, src []byte, stmt *model.ImportStatement) {
	for i := uint(0); i < clause.NamedChildCount(); i++ {
		child := clause.NamedChild(i)
		switch child.Kind() {
		case KindIdentifier:
			stmt.Default = c.getNodeContent(child, src)
			stmt.DefaultEnd = int(child.EndByte())
		case KindNamespaceImport:
			stmt.Namespace = c.getNodeContent(c.findNamedChildOfType(child, KindIdentifier), src)
			if stmt.Namespace == "" {
				stmt.Namespace = "*"
			}
		case KindNamedImports:
			c.collectNamedImports(child, src, stmt)
		}
	}
}

func (c *Collector) collectNamedImports(node *sitter.Node, src []byte, stmt *model.ImportStatement) {
	braces := spanOf(node)
	stmt.NamedImports = &braces

	for i := uint(0); i < node.NamedChildCount(); i++ {
		spec := node.NamedChild(i)
		if spec.Kind() != KindImportSpecifier {
			continue
		}
		if len(stmt.Names) == 0 && bytes.ContainsRune(src[node.StartByte():spec.StartByte()], '\n') {
			stmt.SpecifierIndent = lineIndent(src, int(spec.StartByte()))
		}
		if name := spec.ChildByFieldName("name"); name != nil {
			imported := c.getNodeContent(name, src)
			local := imported
			if alias := spec.ChildByFieldName("alias"); alias != nil {
				local = c.getNodeContent(alias, src)
			}
			stmt.Names = append(stmt.Names, imported)
			stmt.Locals = append(stmt.Locals, local)
		}
		stmt.LastSpecifierEnd = int(spec.EndByte())
	}
}

func (c *Collector) collectClass(node *sitter.Node, fc *core.FileContext) *model.ClassDecl {
	src := fc.Source
	body := node.ChildByFieldName("body")
	if body == nil {
		return nil
	}

	cls := &model.ClassDecl{
		Location:   c.extractLocation(node, fc.FilePath),
		Body:       spanOf(body),
		LineIndent: lineIndent(src, int(body.StartByte())),
	}
	if name := node.ChildByFieldName("name"); name != nil {
		cls.Name = c.getNodeContent(name, src)
	}
	cls.SingleLine = !bytes.ContainsRune(src[cls.Body.Start:cls.Body.End], '\n')

	type ctorRef struct {
		node      *sitter.Node
		member    int
		overloads []*sitter.Node
	}
	var ctors []ctorRef
	var overloads []*sitter.Node
	pending := -1

	for i := uint(0); i < body.ChildCount(); i++ {
		child := body.Child(i)
		if child == nil {
			continue
		}
		kind := child.Kind()

		if !child.IsNamed() {
			// 成员后的分号归入该成员
			if (kind == ";" || kind == ",") && len(cls.Members) > 0 && pending < 0 {
				cls.Members[len(cls.Members)-1].End = int(child.EndByte())
			}
			continue
		}

		switch kind {
		case KindComment:
			continue
		case KindDecorator:
			// 方法装饰器是 class_body 的子节点，归入紧随其后的成员
			if pending < 0 {
				pending = int(child.StartByte())
			}
			continue
		}

		member := spanOf(child)
		if pending >= 0 {
			member.Start = pending
			pending = -1
		}
		cls.Members = append(cls.Members, member)

		switch kind {
		case KindPublicField:
			cls.Fields = append(cls.Fields, c.collectField(child, src, member))
		case KindMethodSignature:
			// 重载签名紧邻实现，实现之前的其他成员会打断这一组
			if c.isConstructor(child, src) {
				overloads = append(overloads, child)
				continue
			}
		case KindMethodDefinition:
			if c.isConstructor(child, src) {
				ctors = append(ctors, ctorRef{node: child, member: len(cls.Members) - 1, overloads: overloads})
			}
		}
		overloads = nil
	}

	for _, ref := range ctors {
		ctor := c.collectConstructor(ref.node, fc, cls.Members[ref.member])
		for _, sig := range ref.overloads {
			span := spanOf(sig)
			span.Start = c.docCommentStart(sig, src, span.Start)
			ctor.Overloads = append(ctor.Overloads, span)
		}
		cls.Constructors = append(cls.Constructors, ctor)
	}

	cls.BodyIndent = cls.LineIndent + defaultIndentUnit
	for _, member := range cls.Members {
		// 以独占一行的第一个成员为准
		if start := lineStart(src, member.Start); start > cls.Body.Start {
			cls.BodyIndent = lineIndent(src, member.Start)
			break
		}
	}
	return cls
}

func (c *Collector) isConstructor(node *sitter.Node, src []byte) bool {
	name := node.ChildByFieldName("name")
	if name == nil || name.Kind() != KindPropertyIdentifier || c.getNodeContent(name, src) != constructorName {
		return false
	}
	// static constructor() / get constructor() 只是普通方法
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && !child.IsNamed() {
			switch child.Kind() {
			case "static", "get", "set", "*", "async":
				return false
			}
		}
	}
	return true
}

func (c *Collector) collectField(node *sitter.Node, src []byte, member model.Span) *model.FieldDecl {
	field := &model.FieldDecl{Span: member}
	if name := node.ChildByFieldName("name"); name != nil {
		field.Name = c.getNodeContent(name, src)
	}
	if mod := c.findNamedChildOfType(node, KindAccessibility); mod != nil {
		field.Scope = c.getNodeContent(mod, src)
	}
	if value := node.ChildByFieldName("value"); value != nil {
		field.Initializer = c.getNodeContent(value, src)
	}
	return field
}

func (c *Collector) collectConstructor(node *sitter.Node, fc *core.FileContext, member model.Span) *model.ConstructorDecl {
	src := fc.Source
	ctor := &model.ConstructorDecl{
		Location: c.extractLocation(node, fc.FilePath),
		Span:     member,
	}

	if params := node.ChildByFieldName("parameters"); params != nil {
		ctor.ParamList = spanOf(params)
		for i := uint(0); i < params.NamedChildCount(); i++ {
			p := params.NamedChild(i)
			if p.Kind() == KindRequiredParameter || p.Kind() == KindOptionalParameter {
				ctor.Parameters = append(ctor.Parameters, c.collectParameter(p, fc))
			}
		}
	}

	if body := node.ChildByFieldName("body"); body != nil {
		ctor.HasBody = true
		for i := uint(0); i < body.NamedChildCount(); i++ {
			if body.NamedChild(i).Kind() != KindComment {
				ctor.StatementCount++
			}
		}
	}

	ctor.Span.Start = c.docCommentStart(node, src, member.Start)
	return ctor
}

// docCommentStart 删除成员时连同紧邻的 JSDoc 一起删除，返回新的起点
func (c *Collector) docCommentStart(node *sitter.Node, src []byte, start int) int {
	prev := node.PrevNamedSibling()
	if prev == nil || prev.Kind() != KindComment || int(prev.EndByte()) > start {
		return start
	}
	text := c.getNodeContent(prev, src)
	gap := src[prev.EndByte():start]
	if strings.HasPrefix(text, "/**") && len(bytes.TrimSpace(gap)) == 0 && bytes.Count(gap, []byte("\n")) <= 1 {
		return int(prev.StartByte())
	}
	return start
}

func (c *Collector) collectParameter(node *sitter.Node, fc *core.FileContext) *model.Parameter {
	src := fc.Source
	p := &model.Parameter{
		Span:     spanOf(node),
		Location: c.extractLocation(node, fc.FilePath),
		Optional: node.Kind() == KindOptionalParameter,
	}

	if pattern := node.ChildByFieldName("pattern"); pattern != nil {
		p.Pattern = pattern.Kind()
		if p.Pattern == KindIdentifier {
			p.Name = c.getNodeContent(pattern, src)
		}
	}

	if ann := node.ChildByFieldName("type"); ann != nil {
		for i := uint(0); i < ann.NamedChildCount(); i++ {
			if t := ann.NamedChild(i); t.Kind() != KindComment {
				p.Type = c.getNodeContent(t, src)
				break
			}
		}
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch {
		case child.Kind() == KindDecorator:
			p.Decorators = append(p.Decorators, c.getNodeContent(child, src))
		case child.Kind() == KindAccessibility, child.Kind() == KindOverrideModifier:
			p.Modifiers = append(p.Modifiers, c.getNodeContent(child, src))
		case !child.IsNamed() && child.Kind() == "readonly":
			p.Modifiers = append(p.Modifiers, "readonly")
		}
	}
	return p
}

func (c *Collector) extractLocation(n *sitter.Node, filePath string) *model.Location {
	if n == nil {
		return nil
	}
	return &model.Location{
		FilePath:    filePath,
		StartLine:   int(n.StartPosition().Row) + 1,
		EndLine:     int(n.EndPosition().Row) + 1,
		StartColumn: int(n.StartPosition().Column),
		EndColumn:   int(n.EndPosition().Column),
	}
}

func (c *Collector) getNodeContent(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	return n.Utf8Text(src)
}

func (c *Collector) findNamedChildOfType(n *sitter.Node, nodeType string) *sitter.Node {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child.Kind() == nodeType {
			return child
		}
	}
	return nil
}

func spanOf(n *sitter.Node) model.Span {
	return model.Span{Start: int(n.StartByte()), End: int(n.EndByte())}
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
