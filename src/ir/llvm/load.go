// Package llvm loads LLVM IR, textual or bitcode, through the system installed LLVM runtime and exposes its function
// definitions to the braid analysis.
package llvm

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

import (
	"tinygo.org/x/go-llvm"
)

import (
	"braids/src/ir/braid"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Module is a parsed LLVM module together with the context that owns it. A Module and every value obtained from it
// must only be used from one goroutine at a time, and not after Dispose.
type Module struct {
	Name string       // Name of the source, or "<stdin>".
	ctx  llvm.Context // Context owning mod.
	mod  llvm.Module  // Parsed module.
}

// Function is an LLVM function definition.
type Function struct {
	v llvm.Value // LLVM function.
}

// Block is an LLVM basic block. It implements braid.Block with instructions compared by their llvm.Value handle.
type Block struct {
	bb llvm.BasicBlock // LLVM basic block.
}

// ---------------------
// ----- Constants -----
// ---------------------

// Stdin is the source path that makes Load read from standard input.
const Stdin = "-"

// ---------------------
// ----- functions -----
// ---------------------

// Load parses the LLVM IR file at path. Both the textual format and bitcode are accepted. If path is Stdin the IR
// is read from standard input. The returned Module must be released with Dispose.
func Load(path string) (*Module, error) {
	var buf llvm.MemoryBuffer
	var err error
	name := path
	if path == Stdin {
		name = "<stdin>"
		buf, err = llvm.NewMemoryBufferFromStdin()
	} else {
		buf, err = llvm.NewMemoryBufferFromFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read LLVM IR from %s: %w", name, err)
	}

	ctx := llvm.NewContext()
	// ParseIR takes ownership of buf.
	mod, err := ctx.ParseIR(buf)
	if err != nil {
		ctx.Dispose()
		return nil, fmt.Errorf("could not parse LLVM IR from %s: %w", name, err)
	}
	if path != Stdin {
		name = filepath.Base(path)
	}
	return &Module{
		Name: name,
		ctx:  ctx,
		mod:  mod,
	}, nil
}

// Dispose releases the module and its context.
func (m *Module) Dispose() {
	if m == nil || m.mod.IsNil() {
		return
	}
	m.mod.Dispose()
	m.ctx.Dispose()
	m.mod = llvm.Module{}
}

// Functions returns the function definitions of Module m in module order. External declarations have no blocks
// and are skipped.
func (m *Module) Functions() ([]*Function, error) {
	if m == nil || m.mod.IsNil() {
		return nil, errors.New("LLVM module is disposed")
	}
	res := make([]*Function, 0)
	for fn := m.mod.FirstFunction(); !fn.IsNil(); fn = llvm.NextFunction(fn) {
		if fn.IsDeclaration() {
			continue
		}
		res = append(res, &Function{v: fn})
	}
	return res, nil
}

// Name returns the name of Function f.
func (f *Function) Name() string {
	return f.v.Name()
}

// NumParams returns the number of formal parameters of Function f.
func (f *Function) NumParams() int {
	return f.v.ParamsCount()
}

// Blocks returns the basic blocks of Function f in layout order.
func (f *Function) Blocks() []braid.Block[llvm.Value] {
	bbs := f.v.BasicBlocks()
	res := make([]braid.Block[llvm.Value], len(bbs))
	for i1, e1 := range bbs {
		res[i1] = &Block{bb: e1}
	}
	return res
}

// Name returns the label of Block b. Unnamed blocks have an empty name.
func (b *Block) Name() string {
	return b.bb.AsValue().Name()
}

// Instructions returns the instructions of Block b in program order.
func (b *Block) Instructions() []llvm.Value {
	res := make([]llvm.Value, 0)
	for inst := b.bb.FirstInstruction(); !inst.IsNil(); inst = llvm.NextInstruction(inst) {
		res = append(res, inst)
	}
	return res
}

// Operands returns the operands of inst that are instructions, in operand slot order. Constants, arguments, globals
// and basic block labels are dropped.
func (b *Block) Operands(inst llvm.Value) []llvm.Value {
	n := inst.OperandsCount()
	res := make([]llvm.Value, 0, n)
	for i1 := 0; i1 < n; i1++ {
		op := inst.Operand(i1)
		if op.IsNil() || op.IsAInstruction().IsNil() {
			continue
		}
		res = append(res, op)
	}
	return res
}

// Users returns the instructions that use inst, in the order of the use list of inst.
func (b *Block) Users(inst llvm.Value) []llvm.Value {
	res := make([]llvm.Value, 0)
	for u := inst.FirstUse(); !u.IsNil(); u = u.NextUse() {
		usr := u.User()
		if usr.IsAInstruction().IsNil() {
			continue
		}
		res = append(res, usr)
	}
	return res
}

// Format returns the textual LLVM IR of inst without leading indentation.
func (b *Block) Format(inst llvm.Value) string {
	return strings.TrimSpace(inst.String())
}
