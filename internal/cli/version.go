package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/glexercises/newex/internal/branding"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	var (
		versionShort bool
		versionJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			version := displayVersion(buildVersion)

			if versionShort {
				fmt.Fprintln(cmd.OutOrStdout(), version)
				return nil
			}

			if versionJSON {
				info := map[string]string{
					"version": version,
					"commit":  buildCommit,
					"date":    buildDate,
					"module":  branding.GoModule(),
				}
				out, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling version info: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (commit: %s, built: %s)\n", branding.CLIName(), version, buildCommit, buildDate)
			return nil
		},
	}
	cmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	cmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	return cmd
}

// displayVersion normalizes release versions to "vMAJOR.MINOR.PATCH[-pre]".
// Anything that is not semver, such as "dev", is returned as is.
func displayVersion(v string) string {
	sv, err := semver.NewVersion(strings.TrimPrefix(v, "v"))
	if err != nil {
		return v
	}
	return "v" + sv.String()
}
