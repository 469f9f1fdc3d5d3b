// Package metadata reads exported .umeta trees back into typed documents.
//
// Each file holds one JSON document whose Kind key selects its shape:
//
//	UPackage                -> *Module
//	UObject, UInterface     -> *Class
//	UStruct                 -> *Struct
//	UEnum                   -> *Enum
//	UFunction, UDelegate    -> *Function
//
// LoadDir walks a tree and returns a Registry indexed by module and type
// name. Properties point back at their owning type and, for parameters, at
// their function. The Registry answers lookups, pattern searches and
// dependency queries; query results are kept in a bounded LRU cache.
//
// Loading a tree and printing what Foo depends on:
//
//	reg, err := metadata.LoadDir("Intermediate/DotNet/Metadata", "")
//	if err != nil {
//		return err
//	}
//	deps, err := reg.Dependencies("Game.Foo", metadata.DependencyOptions{Depth: 2})
//	if err != nil {
//		return err
//	}
//	fmt.Print(metadata.RenderMermaid(deps))
package metadata
