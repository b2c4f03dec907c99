package model

// ImportStatement 描述一条 import 语句
type ImportStatement struct {
	Specifier string   // 模块说明符（去掉引号）
	Names     []string // 具名导入的原始名称（不是别名）
	Locals    []string // 与 Names 一一对应的本地名称（有别名时为别名）
	Default   string
	Namespace string
	TypeOnly  bool // import type {...}
	Span      Span

	// 以下位置信息用于生成文本编辑；新追加的语句没有位置
	NamedImports     *Span  // { ... } 的区间；没有具名导入时为 nil
	LastSpecifierEnd int    // 最后一个 import_specifier 的结束位置；{} 为空时为 -1
	SpecifierIndent  string // 多行具名导入时每行的缩进；单行为空
	DefaultEnd       int    // 默认导入标识符的结束位置；没有时为 -1
	SourceStart      int    // 模块字符串的起始位置
	Appended         bool   // 由 Upsert 追加，源码中尚不存在
}

// HasName 是否已经具名导入 name
func (s *ImportStatement) HasName(name string) bool {
	for _, n := range s.Names {
		if n == name {
			return true
		}
	}
	return false
}

// LocalName 返回 name 在本文件中的绑定名
func (s *ImportStatement) LocalName(name string) (string, bool) {
	for i, n := range s.Names {
		if n != name {
			continue
		}
		if i < len(s.Locals) && s.Locals[i] != "" {
			return s.Locals[i], true
		}
		return n, true
	}
	return "", false
}

// AcceptsNamed 该语句能否追加具名导入：类型导入与命名空间导入不能
func (s *ImportStatement) AcceptsNamed() bool {
	return !s.TypeOnly && s.Namespace == ""
}

// ImportAction 是 Upsert 的结果
type ImportAction int

const (
	ImportPresent  ImportAction = iota // 已存在，无需修改
	ImportExtended                     // 追加到已有语句
	ImportAppended                     // 新增一条语句
)

func (a ImportAction) String() string {
	switch a {
	case ImportPresent:
		return "present"
	case ImportExtended:
		return "extended"
	case ImportAppended:
		return "appended"
	default:
		return "unknown"
	}
}

// ImportSet 是文件内 import 语句的集合，按模块说明符索引
type ImportSet struct {
	Statements []*ImportStatement
	End        int    // 最后一条 import 语句的结束位置；没有 import 时为 -1
	Anchor     int    // 第一条非注释顶层语句的起始位置
	Quote      string // 文件使用的引号风格

	bySpecifier map[string][]*ImportStatement
}

func NewImportSet() *ImportSet {
	return &ImportSet{
		End:         -1,
		Quote:       `"`,
		bySpecifier: make(map[string][]*ImportStatement),
	}
}

// Add 按源码顺序登记一条 import 语句
func (s *ImportSet) Add(stmt *ImportStatement) {
	s.Statements = append(s.Statements, stmt)
	s.bySpecifier[stmt.Specifier] = append(s.bySpecifier[stmt.Specifier], stmt)
}

// Has 判断 specifier 是否已以值导入的方式导入 name
func (s *ImportSet) Has(specifier, name string) bool {
	_, ok := s.LocalName(specifier, name)
	return ok
}

// LocalName 返回 specifier 中值导入的 name 在本文件中的绑定名（import { inject as di } 返回 di）
func (s *ImportSet) LocalName(specifier, name string) (string, bool) {
	for _, stmt := range s.bySpecifier[specifier] {
		if stmt.TypeOnly {
			continue
		}
		if local, ok := stmt.LocalName(name); ok {
			return local, true
		}
	}
	return "", false
}

// Lookup 返回第一条可以追加具名导入的 specifier 语句
func (s *ImportSet) Lookup(specifier string) *ImportStatement {
	for _, stmt := range s.bySpecifier[specifier] {
		if stmt.AcceptsNamed() {
			return stmt
		}
	}
	return nil
}

// Upsert 保证 specifier 具名导入 name，多次调用结果收敛
func (s *ImportSet) Upsert(specifier, name string) (ImportAction, *ImportStatement) {
	if s.Has(specifier, name) {
		return ImportPresent, nil
	}

	if stmt := s.Lookup(specifier); stmt != nil {
		for len(stmt.Locals) < len(stmt.Names) {
			stmt.Locals = append(stmt.Locals, stmt.Names[len(stmt.Locals)])
		}
		stmt.Names = append(stmt.Names, name)
		stmt.Locals = append(stmt.Locals, name)
		return ImportExtended, stmt
	}

	stmt := &ImportStatement{
		Specifier:        specifier,
		Names:            []string{name},
		Locals:           []string{name},
		LastSpecifierEnd: -1,
		DefaultEnd:       -1,
		Appended:         true,
	}
	s.Add(stmt)
	return ImportAppended, stmt
}
