package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schemagen-labs/schemagen/internal/branding"
)

// buildInfo is the JSON form of version output.
type buildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Repo    string `json:"repo"`
}

func newVersionCmd() *cobra.Command {
	var short, asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch {
			case short:
				fmt.Fprintln(out, buildVersion)
			case asJSON:
				data, err := json.MarshalIndent(buildInfo{
					Version: buildVersion,
					Commit:  buildCommit,
					Date:    buildDate,
					Repo:    branding.GitHubRepo(),
				}, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding build info: %w", err)
				}
				fmt.Fprintln(out, string(data))
			default:
				fmt.Fprintf(out, "%s %s (%s, %s)\n", branding.CLIName(), buildVersion, buildCommit, buildDate)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print the version number only")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print build info as JSON")
	return cmd
}
