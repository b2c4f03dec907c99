package typescript

// tree-sitter-typescript 节点类型
const (
	KindProgram            = "program"
	KindComment            = "comment"
	KindHashBangLine       = "hash_bang_line"
	KindImportStatement    = "import_statement"
	KindImportClause       = "import_clause"
	KindNamedImports       = "named_imports"
	KindNamespaceImport    = "namespace_import"
	KindImportSpecifier    = "import_specifier"
	KindExportStatement    = "export_statement"
	KindClassDeclaration   = "class_declaration"
	KindAbstractClass      = "abstract_class_declaration"
	KindClassExpression    = "class"
	KindDecorator          = "decorator"
	KindMethodDefinition   = "method_definition"
	KindMethodSignature    = "method_signature"
	KindPublicField        = "public_field_definition"
	KindRequiredParameter  = "required_parameter"
	KindOptionalParameter  = "optional_parameter"
	KindAccessibility      = "accessibility_modifier"
	KindOverrideModifier   = "override_modifier"
	KindIdentifier         = "identifier"
	KindPropertyIdentifier = "property_identifier"
)

const constructorName = "constructor"

// 未指定缩进时沿用 4 空格
const defaultIndentUnit = "    "
