// File: cmd/version.go
package cmd

import (
	"fmt"

	"ctxpack/pkg/version"

	"github.com/spf13/cobra"
)

// newVersionCommand displays the current version of ctxpack.
// The --short flag prints only the version number.
func newVersionCommand() *cobra.Command {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Display the version of ctxpack",
		Long:  `Display the current version information of the ctxpack CLI tool.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			short, err := cmd.Flags().GetBool("short")
			if err != nil {
				return fmt.Errorf("error reading flags: %w", err)
			}

			if short {
				fmt.Fprintln(cmd.OutOrStdout(), version.Short())
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
			}
			return nil
		},
	}

	versionCmd.Flags().BoolP("short", "s", false, "Print the version number only")
	return versionCmd
}
