package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/schemagen-labs/schemagen/internal/diagnostics"
	"github.com/schemagen-labs/schemagen/internal/extract"
	"github.com/schemagen-labs/schemagen/internal/loader"
	"github.com/schemagen-labs/schemagen/internal/registry"
	"github.com/schemagen-labs/schemagen/internal/render"
	"github.com/schemagen-labs/schemagen/internal/scanner"
	"github.com/schemagen-labs/schemagen/internal/selector"
)

// Defaults for Options.
const (
	DefaultContext = selector.All
	DefaultOutput  = "docs/database"
)

// Options configures a run.
type Options struct {
	Assembly      string
	Project       string
	Context       string
	Output        string
	ListContexts  bool
	Debug         bool
	Configuration string
	TFM           string
	FactoryArgs   []string

	Extension         string
	FrameworkPrefixes []string
}

// Builder builds a project into a module and returns the module path.
type Builder interface {
	Build(ctx context.Context, project, configuration, tfm string) (string, error)
}

// Pipeline holds the collaborators of a run.
type Pipeline struct {
	Fs      afero.Fs
	Opener  loader.Opener
	Builder Builder
	Log     *logrus.Logger
	Out     io.Writer
	Now     func() time.Time
}

// Run executes one invocation. Per-provider failures do not stop the other
// selected providers; they are returned together as a *multierror.Error.
func (p *Pipeline) Run(ctx context.Context, opts Options) error {
	opts = withDefaults(opts)
	out := p.Out
	if out == nil {
		out = io.Discard
	}

	assembly, err := p.resolveAssembly(ctx, opts, out)
	if err != nil {
		return err
	}

	reg := registry.New()
	l, err := loader.New(reg, p.loaderOptions(opts)...)
	if err != nil {
		return err
	}
	defer l.Close()

	if _, err := l.LoadPrimary(assembly); err != nil {
		return err
	}
	l.LoadSiblings(l.Dir())

	sc := scanner.New(p.Log)
	providers := sc.Scan(l.Modules())

	if opts.Debug {
		report := diagnostics.Build(l, sc, providers, diagnostics.Options{FrameworkPrefixes: opts.FrameworkPrefixes})
		if err := report.Write(out); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}

	if opts.ListContexts {
		listContexts(out, providers)
		return nil
	}

	selected, err := selector.Resolve(providers, opts.Context)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Output: %s\n\n", opts.Output)
	return p.renderAll(selected, opts, out)
}

func (p *Pipeline) resolveAssembly(ctx context.Context, opts Options, out io.Writer) (string, error) {
	if opts.Assembly != "" {
		return opts.Assembly, nil
	}
	if opts.Project == "" {
		return "", ErrNoInput
	}
	if p.Builder == nil {
		return "", fmt.Errorf("no builder configured for project %s", opts.Project)
	}

	fmt.Fprintf(out, "Building: %s (%s | %s)\n\n", opts.Project, opts.Configuration, opts.TFM)
	return p.Builder.Build(ctx, opts.Project, opts.Configuration, opts.TFM)
}

func (p *Pipeline) loaderOptions(opts Options) []loader.Option {
	var lo []loader.Option
	if p.Fs != nil {
		lo = append(lo, loader.WithFs(p.Fs))
	}
	if p.Opener != nil {
		lo = append(lo, loader.WithOpener(p.Opener))
	}
	if p.Log != nil {
		lo = append(lo, loader.WithLogger(p.Log))
	}
	if opts.Extension != "" {
		lo = append(lo, loader.WithExtension(opts.Extension))
	}
	return lo
}

// renderAll extracts and renders each provider in turn. Sources that
// implement io.Closer are closed once rendered.
func (p *Pipeline) renderAll(providers []scanner.Provider, opts Options, out io.Writer) error {
	fs := p.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	w := render.NewWriter(fs, out)
	if p.Now != nil {
		w.Now = p.Now
	}

	var result *multierror.Error
	for _, prov := range providers {
		src, err := extract.Extract(prov, opts.FactoryArgs)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}

		_, err = w.WriteAll(prov.TargetName(), src, opts.Output)
		if closer, ok := src.(io.Closer); ok {
			if cerr := closer.Close(); cerr != nil && p.Log != nil {
				p.Log.Debugf("Closing source %s: %v", prov.TargetName(), cerr)
			}
		}
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("rendering %s: %w", prov.TargetName(), err))
		}
	}
	return result.ErrorOrNil()
}

func listContexts(out io.Writer, providers []scanner.Provider) {
	if len(providers) == 0 {
		fmt.Fprintln(out, "No schema providers found.")
		fmt.Fprintln(out, "Expected: types with a CreateSource(args []string) (S, error) method returning a schema.Source.")
		return
	}

	fmt.Fprintln(out, "Available contexts:")
	seen := make(map[string]bool)
	for _, prov := range providers {
		name := prov.TargetQualifiedName()
		if seen[name] {
			continue
		}
		seen[name] = true
		fmt.Fprintf(out, "- %s\n", name)
	}
}

func withDefaults(opts Options) Options {
	if opts.Context == "" {
		opts.Context = DefaultContext
	}
	if opts.Output == "" {
		opts.Output = DefaultOutput
	}
	return opts
}
