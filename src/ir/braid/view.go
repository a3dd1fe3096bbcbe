// Package braid partitions the instructions of a basic block into braids: the connected components of the block
// local graph in which two instructions are adjacent if one uses the other as an operand.
//
// The package is independent of any particular program representation. A host representation supplies its blocks
// through the Block interface; the instruction type is a type parameter compared by identity.
package braid

import "fmt"

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Block is the read-only interface a program representation implements for each basic block.
type Block[I comparable] interface {
	Name() string         // Name of the block. May be empty.
	Instructions() []I    // Instructions of the block in program order.
	Operands(inst I) []I  // Operands of inst that are instructions, in operand slot order. May include other blocks.
	Users(inst I) []I     // Instructions that use inst as an operand. May include other blocks.
	Format(inst I) string // Textual representation of inst used in reports.
}

// Function is the read-only interface a program representation implements for functions.
type Function[I comparable] interface {
	Name() string
	NumParams() int
	Blocks() []Block[I]
}

// View is the dependency graph of one block. Instructions are addressed by their block local ordinal, their index in
// program order. Edges to instructions outside the block are invisible.
type View[I comparable] struct {
	b     Block[I]  // Viewed block.
	insts []I       // Instructions of b, indexed by ordinal.
	ord   map[I]int // Ordinal of each instruction of b.
}

// ---------------------
// ----- functions -----
// ---------------------

// NewView returns the dependency graph view of Block b. NewView panics if b lists the same instruction twice.
func NewView[I comparable](b Block[I]) *View[I] {
	insts := b.Instructions()
	v := &View[I]{
		b:     b,
		insts: insts,
		ord:   make(map[I]int, len(insts)),
	}
	for i1, e1 := range insts {
		if _, ok := v.ord[e1]; ok {
			panic(fmt.Sprintf("block %q lists instruction %s twice", b.Name(), b.Format(e1)))
		}
		v.ord[e1] = i1
	}
	return v
}

// Block returns the viewed block.
func (v *View[I]) Block() Block[I] {
	return v.b
}

// Len returns the number of instructions in the block.
func (v *View[I]) Len() int {
	return len(v.insts)
}

// Instruction returns the instruction with ordinal i.
func (v *View[I]) Instruction(i int) I {
	v.check(i)
	return v.insts[i]
}

// Ordinal returns the ordinal of inst and true, or false if inst is not a member of the block.
func (v *View[I]) Ordinal(inst I) (int, bool) {
	i, ok := v.ord[inst]
	return i, ok
}

// OperandNeighbors returns the ordinals of the operands of instruction i that are members of the block, in operand
// slot order. An operand used twice is reported twice.
func (v *View[I]) OperandNeighbors(i int) []int {
	v.check(i)
	return v.members(v.b.Operands(v.insts[i]))
}

// UserNeighbors returns the ordinals of the users of instruction i that are members of the block, in the order the
// host reports them.
func (v *View[I]) UserNeighbors(i int) []int {
	v.check(i)
	return v.members(v.b.Users(v.insts[i]))
}

// members maps the instructions in insts to ordinals, dropping non-members.
func (v *View[I]) members(insts []I) []int {
	res := make([]int, 0, len(insts))
	for _, e1 := range insts {
		if i1, ok := v.ord[e1]; ok {
			res = append(res, i1)
		}
	}
	return res
}

// check panics if i is not an ordinal of the block.
func (v *View[I]) check(i int) {
	if i < 0 || i >= len(v.insts) {
		panic(fmt.Sprintf("block %q: ordinal %d out of range [0, %d)", v.b.Name(), i, len(v.insts)))
	}
}
