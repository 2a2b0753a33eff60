package parser

import "github.com/crosslang/codegraph/internal/ir"

// backfillFilePath sets FilePath on every SourceLocation reachable from a
// freshly parsed file, so no SourceLocation with an empty FilePath ever
// reaches the resolver.
func backfillFilePath(file *ir.ParsedFile, filePath string) {
	for i := range file.Classes {
		backfillClass(&file.Classes[i], filePath)
	}
	for i := range file.TopLevelFunctions {
		backfillFunction(&file.TopLevelFunctions[i], filePath)
	}
	for i := range file.TopLevelProperties {
		file.TopLevelProperties[i].Location = file.TopLevelProperties[i].Location.WithFilePath(filePath)
	}
	for i := range file.TypeAliases {
		file.TypeAliases[i].Location = file.TypeAliases[i].Location.WithFilePath(filePath)
	}
	for i := range file.DestructuringDeclarations {
		file.DestructuringDeclarations[i].Location = file.DestructuringDeclarations[i].Location.WithFilePath(filePath)
	}
	for i := range file.ObjectExpressions {
		backfillObjectExpression(&file.ObjectExpressions[i], filePath)
	}
}

func backfillClass(class *ir.ParsedClass, filePath string) {
	class.Location = class.Location.WithFilePath(filePath)
	for i := range class.Properties {
		class.Properties[i].Location = class.Properties[i].Location.WithFilePath(filePath)
	}
	for i := range class.Functions {
		backfillFunction(&class.Functions[i], filePath)
	}
	for i := range class.NestedClasses {
		backfillClass(&class.NestedClasses[i], filePath)
	}
	if class.CompanionObject != nil {
		backfillClass(class.CompanionObject, filePath)
	}
	for i := range class.SecondaryCtors {
		class.SecondaryCtors[i].Location = class.SecondaryCtors[i].Location.WithFilePath(filePath)
	}
}

func backfillFunction(fn *ir.ParsedFunction, filePath string) {
	fn.Location = fn.Location.WithFilePath(filePath)
	for i := range fn.Calls {
		fn.Calls[i].Location = fn.Calls[i].Location.WithFilePath(filePath)
	}
}

func backfillObjectExpression(obj *ir.ObjectExpression, filePath string) {
	obj.Location = obj.Location.WithFilePath(filePath)
	for i := range obj.Functions {
		backfillFunction(&obj.Functions[i], filePath)
	}
	for i := range obj.Properties {
		obj.Properties[i].Location = obj.Properties[i].Location.WithFilePath(filePath)
	}
}
