// Package lir provides structures and functions for creating Lightweight Intermediate Representation.
//
// A Module holds global variables and functions. A Function holds parameters and basic blocks, and a Block holds
// instructions in program order. Every Value records the values that use it, so the def-use graph can be walked in
// both directions. Constants, parameters and globals are values but not instructions; they never belong to a block.
package lir

import (
	"fmt"

	"braids/src/ir/lir/types"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Value defines an LIR value: an instruction, a constant, a function parameter or a global variable.
type Value interface {
	Id() int                    // Unique identifier assigned to Value when it's created.
	Name() string               // Name of Value as it appears when used as an operand.
	Type() types.InstructionType // Kind of Value.
	DataType() types.DataType   // Data type of the result, types.Unknown if there is none.
	String() string             // LIR textual representation of Value.
	Block() *Block              // Basic block of an instruction, <nil> for other values.
	Operands() []Value          // Values used by Value, in operand order.
	Users() []Value             // Instructions that use Value, in creation order.
	addUser(u Value)
}

// node holds the bookkeeping shared by all values.
type node struct {
	id    int     // Unique identifier within the parent function or module.
	users []Value // Instructions using this value as an operand.
}

// ---------------------
// ----- Constants -----
// ---------------------

// labelDataInstruction defines the virtual register prefix for temporaries.
const labelDataInstruction = "%"

// ---------------------
// ----- Functions -----
// ---------------------

// Id returns the unique identifier of the value.
func (n *node) Id() int {
	return n.id
}

// Users returns the instructions that use the value as an operand. An instruction using the value twice is listed
// twice.
func (n *node) Users() []Value {
	res := make([]Value, len(n.users))
	copy(res, n.users)
	return res
}

// addUser registers u as a user of the value.
func (n *node) addUser(u Value) {
	n.users = append(n.users, u)
}

// use registers inst as a user of each of its operands.
func use(inst Value) {
	for _, e1 := range inst.Operands() {
		e1.addUser(inst)
	}
}

// checkValue panics if v cannot be used as an operand that produces data.
func checkValue(v Value, op string, n int) {
	if v == nil {
		panic(fmt.Sprintf("operand %d is <nil>, cannot use it as input to %s", n, op))
	}
	switch {
	case v.DataType() == types.Unknown, v.DataType() == types.String:
		panic(fmt.Sprintf("operand %d is not a value, cannot use %s as input to %s",
			n, v.Type().String(), op))
	case v.Type() == types.DeclareInstruction, v.Type() == types.Global:
		panic(fmt.Sprintf("operand %d is a variable, load %s before using it as input to %s",
			n, v.Name(), op))
	}
}

// checkVariable panics if v is not a memory allocated variable.
func checkVariable(v Value, op string) {
	if v == nil {
		panic(fmt.Sprintf("variable is <nil>, cannot use it as input to %s", op))
	}
	switch v.Type() {
	case types.Param, types.Global, types.DeclareInstruction:
		if v.DataType() == types.String {
			panic(fmt.Sprintf("cannot use string %s as input to %s", v.Name(), op))
		}
	default:
		panic(fmt.Sprintf("cannot use %s as a variable in %s", v.Type().String(), op))
	}
}

// names returns the operand names of values, comma separated.
func names(values []Value) string {
	s := ""
	for i1, e1 := range values {
		if i1 > 0 {
			s += ", "
		}
		s += e1.Name()
	}
	return s
}
