package lir

import (
	"braids/src/ir/braid"
)

// braidFunction adapts a Function to braid.Function.
type braidFunction struct {
	f *Function
}

// Operands returns the operands of inst. The braid view drops those that are not instructions of Block b.
func (b *Block) Operands(inst Value) []Value {
	return inst.Operands()
}

// Users returns the instructions that use inst.
func (b *Block) Users(inst Value) []Value {
	return inst.Users()
}

// Format returns the textual LIR representation of inst.
func (b *Block) Format(inst Value) string {
	return inst.String()
}

// Braid returns Function f as input to the braid analysis.
func (f *Function) Braid() braid.Function[Value] {
	return braidFunction{f: f}
}

func (bf braidFunction) Name() string {
	return bf.f.name
}

func (bf braidFunction) NumParams() int {
	return len(bf.f.params)
}

func (bf braidFunction) Blocks() []braid.Block[Value] {
	res := make([]braid.Block[Value], len(bf.f.blocks))
	for i1, e1 := range bf.f.blocks {
		res[i1] = e1
	}
	return res
}
