package resolver

import "github.com/crosslang/codegraph/internal/ir"

// stdlibNames holds the small set of well-known types each language's
// standard library exposes without an explicit import, used as name
// resolution's last step when nothing in the symbol table matches. These
// are placeholders: a ClassSymbol with no FilePath, never written back to
// the symbol table.
var stdlibNames = map[ir.Language]map[string]string{
	ir.LanguageKotlin: {
		"String": "kotlin.String", "Int": "kotlin.Int", "Long": "kotlin.Long",
		"Float": "kotlin.Float", "Double": "kotlin.Double", "Boolean": "kotlin.Boolean",
		"Char": "kotlin.Char", "Any": "kotlin.Any", "Unit": "kotlin.Unit",
		"Nothing": "kotlin.Nothing", "Array": "kotlin.Array",
		"List": "kotlin.collections.List", "MutableList": "kotlin.collections.MutableList",
		"Map": "kotlin.collections.Map", "MutableMap": "kotlin.collections.MutableMap",
		"Set": "kotlin.collections.Set", "MutableSet": "kotlin.collections.MutableSet",
		"Pair": "kotlin.Pair", "Triple": "kotlin.Triple",
	},
	ir.LanguageJava: {
		"Object": "java.lang.Object", "String": "java.lang.String",
		"Integer": "java.lang.Integer", "Long": "java.lang.Long",
		"Boolean": "java.lang.Boolean", "Double": "java.lang.Double",
		"List": "java.util.List", "ArrayList": "java.util.ArrayList",
		"Map": "java.util.Map", "HashMap": "java.util.HashMap",
		"Set": "java.util.Set", "Optional": "java.util.Optional",
	},
	ir.LanguageTypeScript: {
		"Array": "ts/lib/Array", "Promise": "ts/lib/Promise", "Map": "ts/lib/Map",
		"Set": "ts/lib/Set", "Object": "ts/lib/Object", "String": "ts/lib/String",
		"Number": "ts/lib/Number", "Boolean": "ts/lib/Boolean", "console": "ts/lib/console",
	},
	ir.LanguageJavaScript: {
		"Array": "ts/lib/Array", "Promise": "ts/lib/Promise", "Map": "ts/lib/Map",
		"Set": "ts/lib/Set", "Object": "ts/lib/Object", "console": "ts/lib/console",
	},
}

// stdlibPlaceholder looks name up in the per-language stdlib table.
func stdlibPlaceholder(language ir.Language, name string) (ir.ClassSymbol, bool) {
	names, ok := stdlibNames[language]
	if !ok {
		return ir.ClassSymbol{}, false
	}
	fqn, ok := names[name]
	if !ok {
		return ir.ClassSymbol{}, false
	}
	return ir.ClassSymbol{SymbolBase: ir.SymbolBase{Name: name, FQN: fqn}}, true
}
