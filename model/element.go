package model

import "fmt"

// Location 描述了代码元素在源码中的位置
type Location struct {
	FilePath    string `json:"FilePath"`
	StartLine   int    `json:"StartLine"`
	EndLine     int    `json:"EndLine"`
	StartColumn int    `json:"StartColumn"`
	EndColumn   int    `json:"EndColumn"`
}

// Span 是源码中的字节区间 [Start, End)
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int { return s.End - s.Start }

// ClassDecl 描述一个类声明及其成员
type ClassDecl struct {
	Name       string    // 匿名类 (export default class {}) 为空
	Location   *Location // 类声明的位置
	Body       Span      // class_body，包含花括号
	LineIndent string    // 类声明所在行的缩进
	BodyIndent string    // 成员缩进
	SingleLine bool      // 类体是否写在一行内
	Members    []Span    // 所有成员（含装饰器与结尾分号），按源码顺序

	Fields       []*FieldDecl
	Constructors []*ConstructorDecl
}

// ConstructorDecl 描述一个构造函数实现（不含重载签名）
type ConstructorDecl struct {
	Location       *Location
	Span           Span   // 删除构造函数时使用的区间（含紧邻的 JSDoc 与结尾分号）
	Overloads      []Span // 紧邻实现之前的重载签名，删除构造函数时一并删除
	ParamList      Span   // formal_parameters，包含括号
	Parameters     []*Parameter
	HasBody        bool
	StatementCount int // 函数体内语句数量，注释不计
}

// IsEmpty 构造函数体存在且不含任何语句
func (c *ConstructorDecl) IsEmpty() bool {
	return c.HasBody && c.StatementCount == 0
}

// RemovalSpan 覆盖重载签名与实现
func (c *ConstructorDecl) RemovalSpan() Span {
	span := c.Span
	if len(c.Overloads) > 0 && c.Overloads[0].Start < span.Start {
		span.Start = c.Overloads[0].Start
	}
	return span
}

// Parameter 描述构造函数参数
type Parameter struct {
	Name       string // 仅当绑定模式为简单标识符时非空
	Type       string // 类型注解的源码文本（不含冒号），缺省为空
	Pattern    string // 绑定模式的节点类型 (identifier, object_pattern, rest_pattern ...)
	Optional   bool
	Modifiers  []string // accessibility / readonly / override
	Decorators []string
	Span       Span
	Location   *Location
}

// Eligible 只有声明了类型且为简单标识符的参数才可以改写
func (p *Parameter) Eligible() bool {
	return p.Type != "" && p.Name != ""
}

// FieldDecl 描述一个类字段；改写生成的字段总是 private
type FieldDecl struct {
	Scope       string
	Name        string
	Initializer string
	Span        Span
}

const ScopePrivate = "private"

// NewInjectedField 根据构造函数参数生成 inject() 字段
func NewInjectedField(p *Parameter, injectFunction string) *FieldDecl {
	return &FieldDecl{
		Scope:       ScopePrivate,
		Name:        p.Name,
		Initializer: fmt.Sprintf("%s(%s)", injectFunction, p.Type),
	}
}

func (f *FieldDecl) String() string {
	s := f.Name
	if f.Scope != "" {
		s = f.Scope + " " + s
	}
	if f.Initializer != "" {
		s += " = " + f.Initializer
	}
	return s + ";"
}
