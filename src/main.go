package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	gossa "golang.org/x/tools/go/ssa"
	gollvm "tinygo.org/x/go-llvm"

	"braids/src/ir/braid"
	"braids/src/ir/llvm"
	"braids/src/ir/ssa"
	"braids/src/util"
)

// Exit codes.
const (
	exitOK           = 0
	exitError        = 1 // Usage, configuration, load or output error.
	exitPrecondition = 2 // Malformed program representation detected during analysis.
)

// preconditionError carries a panic raised by the analysis of a malformed program representation.
type preconditionError struct {
	v any // Recovered panic value.
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs braids with command line arguments args and returns the exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			_, _ = fmt.Fprintf(stderr, "Analysis error: %v\n", r)
			code = exitPrecondition
		}
	}()

	opt := util.DefaultOptions()
	cmd := &cobra.Command{
		Use:           "braids [flags] <input>",
		Short:         "Partition the instructions of every basic block into braids",
		Long:          "Partition the instructions of every basic block of LLVM IR or Go SSA into braids, the connected\ncomponents of the block local use graph.",
		Version:       util.AppVersion,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := util.ParseArgs(cmd, opt, args)
			if err != nil {
				return fmt.Errorf("Command line argument error: %w", err)
			}
			return run(cmd.Context(), o, stdout, stderr)
		},
	}
	util.BindFlags(cmd, &opt)
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return exitCode(err)
	}
	return exitOK
}

// exitCode maps the error returned by run to the process exit code.
func exitCode(err error) int {
	var perr *preconditionError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &perr):
		return exitPrecondition
	default:
		return exitError
	}
}

func (e *preconditionError) Error() string {
	return fmt.Sprintf("Analysis error: %v", e.v)
}

// run loads the input described by opt, analyses every selected function and writes the reports.
func run(ctx context.Context, opt util.Options, stdout, stderr io.Writer) (err error) {
	log := util.NewLogger(opt, stderr)
	log.Debug("starting", "input", opt.Src, "host", opt.Host, "threads", opt.Threads, "format", opt.Format)

	out, err := util.OpenOutput(opt.Out, stdout)
	if err != nil {
		return fmt.Errorf("Output error: %w", err)
	}
	sink := util.Listen(out, opt.Threads)

	// Stop the output writer. Reports of functions analysed before a failure are still written.
	defer func() {
		if serr := sink.Close(); serr != nil && err == nil {
			err = fmt.Errorf("Output error: %w", serr)
		}
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("Output error: %w", cerr)
		}
	}()

	switch opt.Host {
	case util.HostLLVM:
		err = runLLVM(ctx, opt, log, sink)
	case util.HostGo:
		err = runGo(ctx, opt, log, sink)
	default:
		err = fmt.Errorf("Command line argument error: %w: %q", util.ErrHost, opt.Host)
	}
	return err
}

// runLLVM analyses an LLVM IR file. An LLVM context must not be used concurrently, so blocks are analysed
// sequentially.
func runLLVM(ctx context.Context, opt util.Options, log *slog.Logger, sink *util.Sink) error {
	m, err := llvm.Load(opt.Src)
	if err != nil {
		return fmt.Errorf("Load error: %w", err)
	}
	defer m.Dispose()
	if opt.Threads > 1 {
		log.Info("LLVM modules are analysed by a single thread", "threads", opt.Threads)
	}

	all, err := m.Functions()
	if err != nil {
		return fmt.Errorf("Load error: %w", err)
	}
	fns := make([]braid.Function[gollvm.Value], 0, len(all))
	found := make(map[string]bool, len(all))
	for _, e1 := range all {
		found[e1.Name()] = true
		if opt.Selected(e1.Name()) {
			fns = append(fns, e1)
		}
	}
	warnMissing(log, opt, found)
	log.Debug("loaded LLVM module", "module", m.Name, "functions", len(all), "selected", len(fns))
	return report(ctx, opt, log, sink, fns, 1)
}

// runGo analyses Go packages. opt.Src is either a directory holding a package, or a package pattern.
func runGo(ctx context.Context, opt util.Options, log *slog.Logger, sink *util.Sink) error {
	dir, pattern := "", opt.Src
	if fi, err := os.Stat(opt.Src); err == nil && fi.IsDir() {
		dir, pattern = opt.Src, "."
	}
	p, err := ssa.Load(ctx, dir, pattern)
	if err != nil {
		return fmt.Errorf("Load error: %w", err)
	}

	all := p.Functions()
	fns := make([]braid.Function[gossa.Instruction], 0, len(all))
	found := make(map[string]bool, 2*len(all))
	for _, e1 := range all {
		found[e1.Name()] = true
		found[e1.ShortName()] = true
		if opt.Selected(e1.Name(), e1.ShortName()) {
			fns = append(fns, e1)
		}
	}
	warnMissing(log, opt, found)
	log.Debug("loaded Go packages", "pattern", opt.Src, "functions", len(all), "selected", len(fns))
	return report(ctx, opt, log, sink, fns, opt.Threads)
}

// report analyses fns in order and sends one report per function to sink. A malformed function stops the analysis
// with a *preconditionError; reports of the functions before it have been sent.
func report[I comparable](ctx context.Context, opt util.Options, log *slog.Logger, sink *util.Sink,
	fns []braid.Function[I], workers int) error {
	for i1, e1 := range fns {
		r, err := analyse(ctx, e1, braid.Options{Workers: workers, Logger: log})
		if err != nil {
			return err
		}
		w := sink.NewWriter(i1)
		if opt.Format == util.FormatJSON {
			err = r.WriteJSON(w)
		} else {
			err = r.WriteText(w, opt.Listing)
		}
		if cerr := w.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("Output error: %w", err)
		}
	}
	return nil
}

// analyse runs the braid analysis of fn and turns a precondition panic into a *preconditionError.
func analyse[I comparable](ctx context.Context, fn braid.Function[I], opt braid.Options) (r braid.FunctionReport, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &preconditionError{v: p}
		}
	}()
	r, err = braid.AnalyzeFunction(ctx, fn, opt)
	if err != nil {
		return r, fmt.Errorf("Analysis error: %w", err)
	}
	return r, nil
}

// warnMissing logs every requested function name that is not defined by the input.
func warnMissing(log *slog.Logger, opt util.Options, found map[string]bool) {
	for _, e1 := range opt.Functions {
		if !found[e1] {
			log.Warn("function not found", "function", e1)
		}
	}
}
