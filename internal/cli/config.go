package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schemagen-labs/schemagen/internal/branding"
	"github.com/schemagen-labs/schemagen/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and write flag defaults",
		Long: `Flag defaults live in ~/` + branding.HomeDir() + `/config.yaml and can be overridden
with ` + branding.EnvPrefix() + `_* environment variables (dots become underscores).

Keys:
  context, output, configuration, tfm, debug   defaults for the matching flags
  log_level                                    logrus level (default warn)
  module_extension                             module file extension (default .so)
  diagnostics.framework_prefixes               comma-separated module name prefixes hidden in --debug output`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a default",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Set(args[0], args[1]); err != nil {
				return fmt.Errorf("storing %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
			return nil
		},
	}, &cobra.Command{
		Use:   "get <key>",
		Short: "Print the effective value of a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
			return nil
		},
	})
	return cmd
}
