package typescript

import (
	"fmt"

	"github.com/CodMac/ng-di-transform/core"
	"github.com/CodMac/ng-di-transform/logger"
	"github.com/CodMac/ng-di-transform/model"
)

// addImportEdits 保证 module 具名导入 name，生成的编辑追加到 b。
// 返回 name 在本文件中的绑定名。
func addImportEdits(b *core.EditBuilder, fc *core.FileContext, module, name string) string {
	imports := fc.Imports
	if local, ok := imports.LocalName(module, name); ok {
		return local
	}
	action, stmt := imports.Upsert(module, name)
	nl := lineBreak(fc.Source, 0)

	switch action {
	case model.ImportExtended:
		switch {
		case stmt.NamedImports != nil && stmt.LastSpecifierEnd >= 0:
			if stmt.SpecifierIndent != "" {
				b.Insert(stmt.LastSpecifierEnd, ","+nl+stmt.SpecifierIndent+name)
			} else {
				b.Insert(stmt.LastSpecifierEnd, ", "+name)
			}
		case stmt.NamedImports != nil:
			// import {} from '...'
			b.ReplaceRange(stmt.NamedImports.Start, stmt.NamedImports.End, "{ "+name+" }")
		case stmt.DefaultEnd >= 0:
			b.Insert(stmt.DefaultEnd, ", { "+name+" }")
		default:
			// import '...'
			b.Insert(stmt.SourceStart, "{ "+name+" } from ")
		}
		logger.Debug("Added %s to existing import of %s in %s", name, module, fc.FilePath)
	case model.ImportAppended:
		text := importText(name, module, imports.Quote)
		if imports.End >= 0 {
			b.Insert(imports.End, nl+text)
		} else {
			b.Insert(imports.Anchor, text+nl+nl)
		}
		logger.Debug("Added import of %s from %s in %s", name, module, fc.FilePath)
	}
	return name
}

func importText(name, module, quote string) string {
	return fmt.Sprintf("import { %s } from %s%s%s;", name, quote, module, quote)
}
