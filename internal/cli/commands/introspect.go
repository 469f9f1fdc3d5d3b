package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dotnet-in-ue/nativebinder/internal/cli/ui"
	"github.com/dotnet-in-ue/nativebinder/runtime/metadata"
	"github.com/spf13/cobra"
)

// Output formats accepted by --format.
const (
	formatTable   = "table"
	formatJSON    = "json"
	formatMermaid = "mermaid"
)

type introspectOptions struct {
	global *globalOptions
	format string
	dir    string
}

// registry loads the exported tree named by --dir, or the configured output
// directory of the project.
func (o *introspectOptions) registry() (*metadata.Registry, error) {
	p, err := o.global.loadProject()
	if err != nil {
		return nil, err
	}
	dir := o.dir
	if dir == "" {
		dir = p.resolve(p.cfg.OutputPath)
	}
	reg, err := metadata.LoadDir(dir, p.cfg.Extension)
	if err != nil {
		return nil, fmt.Errorf("failed to load exported metadata from %s: %w", dir, err)
	}
	return reg, nil
}

// checkFormat rejects formats the subcommand cannot render.
func (o *introspectOptions) checkFormat(allowed ...string) error {
	for _, f := range allowed {
		if o.format == f {
			return nil
		}
	}
	return fmt.Errorf("unsupported format %q (want %s)", o.format, strings.Join(allowed, ", "))
}

// NewIntrospectCommand creates the introspect command group
func NewIntrospectCommand(g *globalOptions) *cobra.Command {
	opts := &introspectOptions{global: g}

	cmd := &cobra.Command{
		Use:   "introspect",
		Short: "Query an exported metadata tree",
		Long: `Query an exported metadata tree.

The introspect command loads the .umeta documents written by export into a
registry, allowing you to explore modules, types, and the references between
them.

This is useful for:
  • Checking what an export produced
  • Finding which types reference a given type
  • Rendering dependency graphs for documentation`,
		Example: `  # List all modules
  nativebinder introspect modules

  # List the types whose name ends in Component
  nativebinder introspect types "*Component"

  # View detailed information about a type
  nativebinder introspect type Actor

  # Show what a type depends on, as a mermaid diagram
  nativebinder introspect deps Game.Foo --format mermaid

  # Output in JSON format for tooling
  nativebinder introspect types --format json`,
	}

	cmd.PersistentFlags().StringVarP(&opts.format, "format", "f", formatTable, "Output format: table, json, or mermaid (deps only)")
	cmd.PersistentFlags().StringVarP(&opts.dir, "dir", "d", "", "Exported tree to read (default: configured output path)")

	cmd.AddCommand(newIntrospectModulesCommand(opts))
	cmd.AddCommand(newIntrospectTypesCommand(opts))
	cmd.AddCommand(newIntrospectTypeCommand(opts))
	cmd.AddCommand(newIntrospectDepsCommand(opts))
	cmd.AddCommand(newIntrospectSignaturesCommand(opts))

	return cmd
}

// newIntrospectModulesCommand creates the 'introspect modules' command
func newIntrospectModulesCommand(opts *introspectOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "modules",
		Short: "List exported modules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.checkFormat(formatTable, formatJSON); err != nil {
				return err
			}
			reg, err := opts.registry()
			if err != nil {
				return err
			}

			modules := reg.Modules()
			w := cmd.OutOrStdout()
			if opts.format == formatJSON {
				return writeJSON(w, modules)
			}

			table := ui.NewTable(w, []string{"Module", "Type", "Types", "Folder"}, &ui.TableOptions{
				NoColor:    opts.global.noColor,
				RightAlign: []int{2},
			})
			for _, m := range modules {
				table.AddRow(m.Name, m.PackageType, strconv.Itoa(len(m.Types)), m.Folder)
			}
			table.Render()
			return nil
		},
	}
}

// newIntrospectTypesCommand creates the 'introspect types' command
func newIntrospectTypesCommand(opts *introspectOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "types [pattern]",
		Short: "List exported types",
		Long: `List exported types, optionally filtered by a wildcard pattern matched
against the type name.`,
		Example: `  nativebinder introspect types
  nativebinder introspect types "A*"
  nativebinder introspect types "*Component"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.checkFormat(formatTable, formatJSON); err != nil {
				return err
			}
			reg, err := opts.registry()
			if err != nil {
				return err
			}

			types := reg.Types()
			if len(args) == 1 {
				types = reg.TypesByPattern(args[0])
			}

			w := cmd.OutOrStdout()
			if opts.format == formatJSON {
				rows := make([]typeRow, 0, len(types))
				for _, t := range types {
					rows = append(rows, newTypeRow(t))
				}
				return writeJSON(w, rows)
			}

			table := ui.NewTable(w, []string{"Type", "Kind", "CppName"}, &ui.TableOptions{NoColor: opts.global.noColor})
			for _, t := range types {
				row := newTypeRow(t)
				table.AddRow(row.Name, row.Kind, row.CppName)
			}
			table.Render()
			return nil
		},
	}
}

type typeRow struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Module  string `json:"module"`
	CppName string `json:"cpp_name"`
}

func newTypeRow(t metadata.TypeDefinition) typeRow {
	row := typeRow{Name: t.QualifiedName(), Kind: t.TypeKind(), Module: t.ModuleName()}
	switch def := t.(type) {
	case *metadata.Class:
		row.CppName = def.CppName
	case *metadata.Struct:
		row.CppName = def.CppName
	case *metadata.Enum:
		row.CppName = def.CppName
	}
	return row
}

// newIntrospectTypeCommand creates the 'introspect type' command
func newIntrospectTypeCommand(opts *introspectOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "type <name>",
		Short: "Show one exported type",
		Long: `Show one exported type with its members and the properties that
reference it. The name is either Module.Name or a name unique across modules.`,
		Example: `  nativebinder introspect type Actor
  nativebinder introspect type Game.EWeapon --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.checkFormat(formatTable, formatJSON); err != nil {
				return err
			}
			reg, err := opts.registry()
			if err != nil {
				return err
			}

			t, err := lookupType(cmd, reg, args[0], opts.global.noColor)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if opts.format == formatJSON {
				return writeJSON(w, t)
			}

			refs, err := reg.ReferencesTo(t.QualifiedName())
			if err != nil {
				return err
			}
			renderType(w, reg, t, refs, opts.global.noColor)
			return nil
		},
	}
}

// lookupType resolves name and prints suggestions when nothing matches.
func lookupType(cmd *cobra.Command, reg *metadata.Registry, name string, noColor bool) (metadata.TypeDefinition, error) {
	t, err := reg.Type(name)
	if err == nil {
		return t, nil
	}
	if errors.Is(err, metadata.ErrTypeNotFound) {
		var candidates []string
		for _, def := range reg.Types() {
			candidates = append(candidates, def.TypeName(), def.QualifiedName())
		}
		suggestions := ui.FindSimilar(name, candidates, nil)
		fmt.Fprint(cmd.ErrOrStderr(), ui.TypeNotFoundError(name, suggestions, noColor))
	}
	return nil, err
}

func renderType(w io.Writer, reg *metadata.Registry, t metadata.TypeDefinition, refs []*metadata.Property, noColor bool) {
	ui.Header(w, t.QualifiedName(), noColor)

	kv := ui.NewKeyValueTable(w, noColor)
	kv.AddRow("Kind", t.TypeKind())

	var props []*metadata.Property
	var functions []*metadata.Function
	var values []metadata.EnumValue

	switch def := t.(type) {
	case *metadata.Class:
		kv.AddRow("CppName", def.CppName)
		kv.AddRow("Size", strconv.Itoa(def.Size))
		if def.Parent != nil {
			kv.AddRow("Parent", parentLabel(reg, def.Parent))
		}
		kv.AddRow("Flags", fmt.Sprintf("%#x %s", def.Flags, def.FlagsText))
		if len(def.Interfaces) > 0 {
			kv.AddRow("Interfaces", strings.Join(def.Interfaces, ", "))
		}
		props, functions = def.Properties, def.Functions
	case *metadata.Struct:
		kv.AddRow("CppName", def.CppName)
		kv.AddRow("Size", strconv.Itoa(def.Size))
		if def.Parent != nil {
			kv.AddRow("Parent", parentLabel(reg, def.Parent))
		}
		props = def.Properties
	case *metadata.Enum:
		kv.AddRow("CppName", def.CppName)
		kv.AddRow("EnumKind", def.EnumKind)
		kv.AddRow("IsFlags", strconv.FormatBool(def.IsFlags))
		kv.AddRow("MaximumValue", strconv.FormatInt(def.MaximumValue, 10))
		values = def.Values
	}
	kv.Render()
	fmt.Fprintln(w)

	section := ui.NewSection(w, "Properties", noColor)
	for _, p := range props {
		section.AddLine("%s %s%s  @%d", p.PrettyType(), p.Name, dimSuffix(p), p.Offset)
	}
	section.Render()

	section = ui.NewSection(w, "Functions", noColor)
	for _, fn := range functions {
		section.AddLine("%s", signature(fn))
	}
	section.Render()

	section = ui.NewSection(w, "Values", noColor)
	for _, v := range values {
		section.AddLine("%s = %d", v.Name, v.Value)
	}
	section.Render()

	section = ui.NewSection(w, "Referenced by", noColor)
	for _, p := range refs {
		section.AddLine("%s", referrer(p))
	}
	section.Render()
}

// parentLabel names a parent with its kind, or marks it external when the
// tree does not contain it.
func parentLabel(reg *metadata.Registry, ref *metadata.TypeReference) string {
	if parent, ok := reg.Resolve(ref); ok {
		return fmt.Sprintf("%s (%s)", parent.QualifiedName(), parent.TypeKind())
	}
	return ref.QualifiedName() + " (external)"
}

func dimSuffix(p *metadata.Property) string {
	if p.Dim() > 1 {
		return fmt.Sprintf("[%d]", p.Dim())
	}
	return ""
}

// signature renders a function as "ret Name(type a, type b) const".
func signature(fn *metadata.Function) string {
	params := make([]string, len(fn.Parameters))
	for i, p := range fn.Parameters {
		params[i] = p.PrettyType() + " " + p.Name
	}
	s := fmt.Sprintf("%s %s(%s)", fn.ReturnOrVoid().PrettyType(), fn.Name, strings.Join(params, ", "))
	if fn.Static {
		s = "static " + s
	}
	if fn.Const {
		s += " const"
	}
	return s
}

// referrer names the member holding p, e.g. "Game.Foo.Path" or
// "Game.Foo.DoThing(Target)".
func referrer(p *metadata.Property) string {
	owner := ""
	if p.Owner != nil {
		owner = p.Owner.QualifiedName() + "."
	}
	if p.Function == nil {
		return owner + p.Name
	}
	if p.Name == "" {
		return owner + p.Function.Name + " return"
	}
	return fmt.Sprintf("%s%s(%s)", owner, p.Function.Name, p.Name)
}

// newIntrospectSignaturesCommand creates the 'introspect signatures' command
func newIntrospectSignaturesCommand(opts *introspectOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "signatures",
		Short: "List standalone function and delegate signatures",
		Long: `List the function and delegate documents of the tree that are not
declared inside a class.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.checkFormat(formatTable, formatJSON); err != nil {
				return err
			}
			reg, err := opts.registry()
			if err != nil {
				return err
			}

			sigs := reg.Signatures()
			w := cmd.OutOrStdout()
			if opts.format == formatJSON {
				return writeJSON(w, sigs)
			}

			table := ui.NewTable(w, []string{"Kind", "Signature"}, &ui.TableOptions{NoColor: opts.global.noColor})
			for _, fn := range sigs {
				table.AddRow(fn.Kind, signature(fn))
			}
			table.Render()
			return nil
		},
	}
}

// newIntrospectDepsCommand creates the 'introspect deps' command
func newIntrospectDepsCommand(opts *introspectOptions) *cobra.Command {
	var (
		depth   int
		reverse bool
		rels    []string
	)

	cmd := &cobra.Command{
		Use:   "deps <name>",
		Short: "Show dependencies of a type",
		Long: `Show dependencies of a type.

Displays the types a type references through inheritance, interfaces,
properties and function parameters, or with --reverse the types referencing
it. Types referenced but not exported appear as external nodes.`,
		Example: `  # Show direct dependencies of Foo
  nativebinder introspect deps Game.Foo

  # Show what depends on Actor, two levels deep
  nativebinder introspect deps Actor --reverse --depth 2

  # Only follow inheritance
  nativebinder introspect deps Game.Foo --type inherits --depth 0

  # Render as a mermaid flowchart
  nativebinder introspect deps Game.Foo --format mermaid`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.checkFormat(formatTable, formatJSON, formatMermaid); err != nil {
				return err
			}
			if depth < 0 {
				return fmt.Errorf("--depth must not be negative, got: %d", depth)
			}
			reg, err := opts.registry()
			if err != nil {
				return err
			}
			if _, err := lookupType(cmd, reg, args[0], opts.global.noColor); err != nil {
				return err
			}

			graph, err := reg.Dependencies(args[0], metadata.DependencyOptions{
				Depth:   depth,
				Reverse: reverse,
				Types:   rels,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch opts.format {
			case formatJSON:
				return writeJSON(w, graph)
			case formatMermaid:
				_, err := io.WriteString(w, metadata.RenderMermaid(graph))
				return err
			}

			renderGraph(w, graph, opts.global.noColor)
			return nil
		},
	}

	cmd.Flags().IntVar(&depth, "depth", 1, "Traversal depth (0 = unlimited)")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "Show what depends on the type instead")
	cmd.Flags().StringSliceVar(&rels, "type", nil, "Follow only these relationships: inherits, implements, property, parameter")

	return cmd
}

func renderGraph(w io.Writer, graph *metadata.DependencyGraph, noColor bool) {
	nodes := ui.NewTable(w, []string{"Type", "Kind"}, &ui.TableOptions{NoColor: noColor})
	for _, id := range graph.SortedNodeIDs() {
		nodes.AddRow(id, graph.Nodes[id].Kind)
	}
	nodes.Render()

	if len(graph.Edges) > 0 {
		fmt.Fprintln(w)
		edges := ui.NewTable(w, []string{"From", "Relationship", "To", "Weight"}, &ui.TableOptions{
			NoColor:    noColor,
			RightAlign: []int{3},
		})
		for _, e := range graph.Edges {
			edges.AddRow(e.From, e.Relationship, e.To, strconv.Itoa(e.Weight))
		}
		edges.Render()
	}

	cycles := metadata.DetectCycles(graph)
	if len(cycles) > 0 {
		fmt.Fprintln(w)
		section := ui.NewSection(w, "Cycles", noColor)
		for _, c := range cycles {
			section.AddLine("%s", strings.Join(c, " → "))
		}
		section.Render()
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
