// File: cmd/unpack.go
package cmd

import (
	"fmt"

	"ctxpack/pkg/unpack"

	"github.com/spf13/cobra"
)

func newUnpackCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "unpack <bundle.json|bundle.manifest.json> [output-dir]",
		Short: "Recreate a file tree from a structured bundle",
		Long: `Read a structured bundle, or a manifest whose parts are reassembled in
order, and write every file it contains. Without an output directory the
files go to <source>-unpacked. Existing files are overwritten.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts unpack.Options
			if len(args) == 2 {
				opts.OutputDir = args[1]
			}

			result, err := unpack.Unpack(args[0], opts, g.logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unpacked %d files into %s\n", result.FilesWritten, result.OutputDir)
			return nil
		},
	}
}
