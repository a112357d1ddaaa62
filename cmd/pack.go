// File: cmd/pack.go
package cmd

import (
	"errors"
	"fmt"
	"io"

	"ctxpack/pkg/bundle"
	"ctxpack/pkg/clipboard"
	"ctxpack/pkg/config"
	"ctxpack/pkg/pack"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newPackCommand(g *globalOptions) *cobra.Command {
	packCmd := &cobra.Command{
		Use:   "pack [directory]",
		Short: "Bundle a directory into a single file",
		Long: `Walk a directory, skip ignored files and write every remaining file into
one bundle. The structured format (JSON) can be restored with "ctxpack
unpack"; the flattened format is a readable tree plus file contents.

Examples:
  # Bundle the current directory to <name>-bundle.json
  ctxpack pack

  # Readable text for pasting, copied to the clipboard
  ctxpack pack ./service -f flattened -c

  # Split a large bundle into 500 kB parts with a manifest
  ctxpack pack -s --chunk-size 500000 -o out/bundle.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPack(cmd, args, g)
		},
	}

	packCmd.Flags().StringP("output", "o", "", "Output file (default <directory name>-bundle.json|.txt)")
	packCmd.Flags().StringP("format", "f", string(pack.FormatStructured), "Output format: structured or flattened")
	packCmd.Flags().BoolP("copy", "c", false, "Copy the output to the clipboard")
	packCmd.Flags().BoolP("split", "s", false, "Split the output into parts plus a manifest")
	packCmd.Flags().Int("chunk-size", bundle.DefaultChunkSize, "Maximum part size in bytes when splitting")
	packCmd.Flags().StringArrayP("ignore", "i", nil, "Additional ignore pattern (repeatable)")
	packCmd.Flags().Bool("no-binary", false, "Only include text files")
	packCmd.Flags().String("global-ignore", "", "Ignore file applied to every pack (env "+config.EnvGlobalIgnore+")")
	packCmd.Flags().Int("clipboard-limit", clipboard.DefaultLimit, "Largest output in bytes copied to the clipboard")
	return packCmd
}

func runPack(cmd *cobra.Command, args []string, g *globalOptions) error {
	opts, err := config.Load(g.configFile)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		opts.Directory = args[0]
	}
	if err := opts.ApplyFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("error reading flags: %w", err)
	}

	packArgs, err := opts.PackArguments()
	if err != nil {
		return err
	}

	result, err := pack.RunPack(packArgs, g.logger)
	if err != nil {
		return err
	}
	printPackSummary(cmd.OutOrStdout(), result)

	if opts.Copy {
		copier := clipboard.New(opts.ClipboardLimit, g.logger)
		switch err := copier.Copy(result.Text); {
		case err == nil:
			fmt.Fprintln(cmd.OutOrStdout(), "Copied output to clipboard.")
		case errors.Is(err, bundle.ErrCapacity):
			fmt.Fprintf(cmd.OutOrStdout(), "Output is too large for the clipboard; use the file at %s instead.\n", result.Output)
		default:
			g.logger.Warn("Clipboard copy failed", zap.Error(err))
			fmt.Fprintf(cmd.OutOrStdout(), "Could not copy to clipboard (%v); output is at %s.\n", err, result.Output)
		}
	}
	return nil
}

func printPackSummary(w io.Writer, result *pack.Result) {
	fmt.Fprintf(w, "Packed %d files (%d text, %d binary, %d bytes, ~%d tokens)\n",
		result.Files, result.Stats.TextFiles, result.Stats.BinaryFiles,
		result.Stats.TotalSize, result.Stats.EstimatedTokens)
	if len(result.Parts) > 0 {
		fmt.Fprintf(w, "Wrote %d parts, manifest: %s\n", len(result.Parts), result.Output)
		return
	}
	fmt.Fprintf(w, "Output: %s\n", result.Output)
}
