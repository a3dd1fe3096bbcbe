package braid

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Options configures AnalyzeFunction.
type Options struct {
	Workers int          // Maximum number of blocks analysed concurrently. Values below 2 analyse sequentially.
	Logger  *slog.Logger // Optional logger for debug output.
}

// -------------------
// ----- globals -----
// -------------------

// errWorkerPanic cancels the remaining workers after one of them panicked.
var errWorkerPanic = errors.New("block analysis panicked")

// ---------------------
// ----- functions -----
// ---------------------

// AnalyzeBlock partitions Block b into braids and returns the report.
func AnalyzeBlock[I comparable](b Block[I]) BlockReport {
	v := NewView(b)
	return NewBlockReport(v, Compute(v))
}

// AnalyzeFunction partitions every block of Function fn. Blocks are independent, so with opt.Workers > 1 they are
// analysed concurrently; the report lists blocks in function order either way. AnalyzeFunction only fails if ctx is
// cancelled before every block has been analysed. A precondition panic of a block is raised on the calling goroutine
// whatever the number of workers.
func AnalyzeFunction[I comparable](ctx context.Context, fn Function[I], opt Options) (FunctionReport, error) {
	blocks := fn.Blocks()
	r := FunctionReport{
		Name:   fn.Name(),
		Params: fn.NumParams(),
		Blocks: make([]BlockReport, len(blocks)),
	}
	if opt.Logger != nil {
		opt.Logger.Debug("analysing function", "function", r.Name, "params", r.Params, "blocks", len(blocks))
	}

	if opt.Workers < 2 {
		// Sequential.
		for i1, e1 := range blocks {
			if err := ctx.Err(); err != nil {
				return FunctionReport{}, err
			}
			r.Blocks[i1] = AnalyzeBlock(e1)
			logBlock(opt.Logger, r.Name, &r.Blocks[i1])
		}
		return r, nil
	}

	// Parallel. Every worker writes only its own slot of r.Blocks. A panic in a worker stops the group and is raised
	// again on the calling goroutine.
	var mu sync.Mutex
	var failed any
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opt.Workers)
	for i1, e1 := range blocks {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() (err error) {
			defer func() {
				if p := recover(); p != nil {
					mu.Lock()
					if failed == nil {
						failed = p
					}
					mu.Unlock()
					err = errWorkerPanic
				}
			}()
			if err := gctx.Err(); err != nil {
				return err
			}
			r.Blocks[i1] = AnalyzeBlock(e1)
			logBlock(opt.Logger, r.Name, &r.Blocks[i1])
			return nil
		})
	}
	err := g.Wait()
	if failed != nil {
		panic(failed)
	}
	if err != nil {
		return FunctionReport{}, err
	}
	if err := ctx.Err(); err != nil {
		return FunctionReport{}, err
	}
	return r, nil
}

// logBlock logs the summary of a block report at debug level.
func logBlock(l *slog.Logger, fn string, r *BlockReport) {
	if l == nil {
		return
	}
	l.Debug("partitioned block", "function", fn, "block", r.Name,
		"instructions", len(r.Instructions), "braids", r.Count)
}
