package commands

import (
	"fmt"
	"strconv"

	"github.com/dotnet-in-ue/nativebinder/internal/cli/ui"
	"github.com/dotnet-in-ue/nativebinder/internal/flags"
	"github.com/spf13/cobra"
)

// NewFlagsCommand creates the flags command group
func NewFlagsCommand(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flags",
		Short: "Decode an engine flag mask",
		Long: `Decode a class, function or property flag mask into the text written to
the FlagsText key of exported documents. Masks are decimal, 0x-hex or
0b-binary.`,
		Example: `  nativebinder flags class 0x4001
  nativebinder flags function 0x04020401
  nativebinder flags property 0b101`,
	}

	for _, u := range flags.Universes() {
		cmd.AddCommand(newFlagsUniverseCommand(g, u))
	}
	return cmd
}

func newFlagsUniverseCommand(g *globalOptions, u flags.Universe) *cobra.Command {
	return &cobra.Command{
		Use:   string(u) + " <mask>",
		Short: fmt.Sprintf("Decode a %s flag mask", u),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mask, err := flags.ParseMask(args[0])
			if err != nil {
				return err
			}
			text, err := flags.FormatMask(u, mask)
			if err != nil {
				return err
			}
			if text == "" {
				text = "(none)"
			}

			kv := ui.NewKeyValueTable(cmd.OutOrStdout(), g.noColor)
			kv.AddRow("Mask", fmt.Sprintf("%#x", mask))
			kv.AddRow("Decimal", strconv.FormatUint(mask, 10))
			kv.AddRow("Flags", text)
			kv.Render()
			return nil
		},
	}
}
