package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/schemagen-labs/schemagen/internal/branding"
	"github.com/schemagen-labs/schemagen/internal/build"
	"github.com/schemagen-labs/schemagen/internal/config"
	"github.com/schemagen-labs/schemagen/internal/loader"
	"github.com/schemagen-labs/schemagen/internal/pipeline"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// generateOptions holds the root flags that are not bound to config keys.
type generateOptions struct {
	assembly     string
	project      string
	listContexts bool
}

// newPipeline returns the pipeline the root command runs. Tests replace it.
var newPipeline = func(out io.Writer, log *logrus.Logger) *pipeline.Pipeline {
	return &pipeline.Pipeline{
		Fs:      afero.NewOsFs(),
		Opener:  loader.PluginOpener{},
		Builder: build.NewInvoker(),
		Log:     log,
		Out:     out,
	}
}

// newRootCmd builds the command tree. Each call returns fresh commands and
// flag sets.
func newRootCmd() *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   branding.CLIName() + " [flags] [-- <provider args>...]",
		Short: branding.Description(),
		Long: branding.DisplayName() + ` loads a compiled provider module (a Go plugin) and its sibling modules,
discovers types that can create a schema source, and writes Markdown, Mermaid,
and SQL DDL documentation for each selected source.

A provider implements provider.Factory[S]:

  CreateSource(args []string) (S, error)

Arguments after '--' are passed to CreateSource unchanged.`,
		Example: `  ` + branding.CLIName() + ` --assembly bin/app.so
  ` + branding.CLIName() + ` --project ./blogdata --configuration Release --context Blog
  ` + branding.CLIName() + ` --assembly bin/app.so --list-contexts
  ` + branding.CLIName() + ` --assembly bin/app.so -- --connection "host=localhost"`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.Load()
			return config.BindFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.assembly, "assembly", "", "Path to the primary provider module (.so)")
	f.StringVar(&opts.project, "project", "", "Go project directory or go.mod to build into a module first")
	f.String(config.KeyContext, pipeline.DefaultContext, "Source to generate: a context name or 'all'")
	f.String(config.KeyOutput, pipeline.DefaultOutput, "Output directory")
	f.BoolVar(&opts.listContexts, "list-contexts", false, "List available contexts and exit")
	f.Bool(config.KeyDebug, false, "Print discovery diagnostics and debug logs")
	f.String(config.KeyConfiguration, build.Debug, "Build configuration for --project (Debug or Release)")
	f.String(config.KeyTFM, "", "Build target platform for --project as GOOS_GOARCH (default host)")

	cmd.SetGlobalNormalizationFunc(normalizeFlagName)
	cmd.AddCommand(newVersionCmd(), newConfigCmd())
	return cmd
}

// normalizeFlagName makes flag names case-insensitive.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ToLower(name))
}

func runGenerate(cmd *cobra.Command, args []string, gen *generateOptions) error {
	positional, providerArgs := splitArgs(args, cmd.ArgsLenAtDash())
	if len(positional) > 0 {
		return fmt.Errorf("unexpected argument %q; pass provider arguments after '--'", positional[0])
	}

	debug := config.GetBool(config.KeyDebug)
	log := newLogger(cmd.ErrOrStderr(), config.Get(config.KeyLogLevel), debug)

	opts := pipeline.Options{
		Assembly:          gen.assembly,
		Project:           gen.project,
		Context:           config.Get(config.KeyContext),
		Output:            config.Get(config.KeyOutput),
		ListContexts:      gen.listContexts,
		Debug:             debug,
		Configuration:     config.Get(config.KeyConfiguration),
		TFM:               config.Get(config.KeyTFM),
		FactoryArgs:       providerArgs,
		Extension:         config.Get(config.KeyModuleExtension),
		FrameworkPrefixes: config.GetStringSlice(config.KeyFrameworkPrefixes),
	}
	if opts.Project != "" && opts.TFM == "" {
		opts.TFM = build.HostTFM()
	}

	out := cmd.OutOrStdout()
	if err := newPipeline(out, log).Run(context.Background(), opts); err != nil {
		return err
	}
	if !opts.ListContexts {
		fmt.Fprintln(out, "Schema generation completed successfully.")
	}
	return nil
}

// splitArgs separates positional arguments from those after "--". dash is
// cobra's ArgsLenAtDash: -1 when no "--" was given.
func splitArgs(args []string, dash int) (positional, passthrough []string) {
	if dash < 0 {
		return args, []string{}
	}
	return args[:dash], append([]string{}, args[dash:]...)
}

func newLogger(w io.Writer, level string, debug bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.WarnLevel
	}
	if debug {
		lvl = logrus.DebugLevel
	}
	log.SetLevel(lvl)
	return log
}

// Execute runs the root command with build info injected via ldflags.
// Errors are printed to stderr with a hint where one applies.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		if hint := pipeline.Guidance(err); hint != "" {
			fmt.Fprintf(os.Stderr, "\n%s\n", hint)
		}
	}
	return err
}
