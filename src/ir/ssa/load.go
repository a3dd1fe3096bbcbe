// Package ssa builds the SSA form of Go packages and exposes their functions to the braid analysis. Instructions are
// the ssa.Instruction values of each basic block.
package ssa

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

import (
	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

import (
	"braids/src/ir/braid"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Program is a set of Go packages in SSA form.
type Program struct {
	pkgs []*ssa.Package // Packages whose functions are analysed.
}

// Function is a Go function with a body.
type Function struct {
	fn *ssa.Function
}

// Block is a basic block of a Go function. It implements braid.Block.
type Block struct {
	b *ssa.BasicBlock
}

// ---------------------
// ----- Constants -----
// ---------------------

// loadMode requests everything ssautil needs to build the initial packages from source.
const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles | packages.NeedImports |
	packages.NeedDeps | packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo | packages.NeedTypesSizes

// maxLoadErrors limits the number of package errors included in the error returned by Load.
const maxLoadErrors = 10

// ---------------------
// ----- functions -----
// ---------------------

// Load loads the Go packages matching patterns, relative to directory dir, and builds their SSA form.
func Load(ctx context.Context, dir string, patterns ...string) (*Program, error) {
	if len(patterns) < 1 {
		patterns = []string{"."}
	}
	cfg := &packages.Config{
		Context: ctx,
		Dir:     dir,
		Mode:    loadMode,
	}
	initial, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("could not load packages %s: %w", strings.Join(patterns, " "), err)
	}
	if len(initial) < 1 {
		return nil, fmt.Errorf("no packages match %s", strings.Join(patterns, " "))
	}

	errs := make([]error, 0)
	packages.Visit(initial, nil, func(p *packages.Package) {
		for _, e1 := range p.Errors {
			if len(errs) < maxLoadErrors {
				errs = append(errs, e1)
			}
		}
	})
	if len(errs) > 0 {
		return nil, fmt.Errorf("could not load packages %s: %w", strings.Join(patterns, " "), errors.Join(errs...))
	}

	prog, pkgs := ssautil.Packages(initial, ssa.InstantiateGenerics)
	prog.Build()
	return FromPackages(pkgs...), nil
}

// FromPackages returns a Program of already created SSA packages. Packages that are <nil> are skipped. The packages
// are built if they have not been built already.
func FromPackages(pkgs ...*ssa.Package) *Program {
	p := &Program{pkgs: make([]*ssa.Package, 0, len(pkgs))}
	for _, e1 := range pkgs {
		if e1 == nil {
			continue
		}
		e1.Build()
		p.pkgs = append(p.pkgs, e1)
	}
	return p
}

// Functions returns every function with a body that belongs to the packages of Program p, including methods,
// closures and instances of generic functions. Other synthetic functions such as wrappers and package initialisers
// are skipped. Functions are ordered by source position, then name.
func (p *Program) Functions() []*Function {
	if len(p.pkgs) < 1 {
		return nil
	}
	members := make(map[*ssa.Package]bool, len(p.pkgs))
	for _, e1 := range p.pkgs {
		members[e1] = true
	}

	fns := make([]*ssa.Function, 0)
	for fn := range ssautil.AllFunctions(p.pkgs[0].Prog) {
		if len(fn.Blocks) < 1 {
			continue
		}
		// Instances of generic functions are synthetic but have a body written by the user.
		if fn.Synthetic != "" && fn.Origin() == nil {
			continue
		}
		pkg := fn.Pkg
		if pkg == nil && fn.Origin() != nil {
			pkg = fn.Origin().Pkg
		}
		if !members[pkg] {
			continue
		}
		fns = append(fns, fn)
	}
	sort.Slice(fns, func(i, j int) bool {
		if fns[i].Pos() != fns[j].Pos() {
			return fns[i].Pos() < fns[j].Pos()
		}
		return fns[i].String() < fns[j].String()
	})

	res := make([]*Function, len(fns))
	for i1, e1 := range fns {
		res[i1] = &Function{fn: e1}
	}
	return res
}

// Name returns the package qualified name of Function f.
func (f *Function) Name() string {
	return f.fn.String()
}

// ShortName returns the name of Function f without package qualifier.
func (f *Function) ShortName() string {
	return f.fn.Name()
}

// NumParams returns the number of parameters of Function f. The receiver of a method counts as a parameter.
func (f *Function) NumParams() int {
	return len(f.fn.Params)
}

// Blocks returns the basic blocks of Function f in index order.
func (f *Function) Blocks() []braid.Block[ssa.Instruction] {
	res := make([]braid.Block[ssa.Instruction], len(f.fn.Blocks))
	for i1, e1 := range f.fn.Blocks {
		res[i1] = &Block{b: e1}
	}
	return res
}

// Name returns the index of Block b followed by its comment, e.g. "0.entry".
func (b *Block) Name() string {
	return fmt.Sprintf("%d.%s", b.b.Index, b.b.Comment)
}

// Instructions returns the instructions of Block b in program order.
func (b *Block) Instructions() []ssa.Instruction {
	res := make([]ssa.Instruction, len(b.b.Instrs))
	copy(res, b.b.Instrs)
	return res
}

// Operands returns the operands of inst that are instructions, in operand slot order. Constants, parameters, free
// variables, globals and functions are dropped.
func (b *Block) Operands(inst ssa.Instruction) []ssa.Instruction {
	ops := inst.Operands(nil)
	res := make([]ssa.Instruction, 0, len(ops))
	for _, e1 := range ops {
		if e1 == nil || *e1 == nil {
			continue
		}
		if i, ok := (*e1).(ssa.Instruction); ok {
			res = append(res, i)
		}
	}
	return res
}

// Users returns the instructions referring to the value defined by inst. Instructions that define no value have
// no users.
func (b *Block) Users(inst ssa.Instruction) []ssa.Instruction {
	v, ok := inst.(ssa.Value)
	if !ok {
		return nil
	}
	refs := v.Referrers()
	if refs == nil {
		return nil
	}
	res := make([]ssa.Instruction, len(*refs))
	copy(res, *refs)
	return res
}

// Format returns the textual SSA representation of inst. Value defining instructions are prefixed by the name of the
// defined value, e.g. "t0 = a + b".
func (b *Block) Format(inst ssa.Instruction) string {
	if v, ok := inst.(ssa.Value); ok {
		return fmt.Sprintf("%s = %s", v.Name(), inst.String())
	}
	return inst.String()
}
