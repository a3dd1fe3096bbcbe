package lir

import (
	"fmt"

	"braids/src/ir/lir/types"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// DeclareInstruction declares a local variable on the stack.
type DeclareInstruction struct {
	instruction
	name string         // name defines the name of the local variable.
	typ  types.DataType // typ defines the variable's data type.
}

// LoadInstruction defines a load instruction that loads the data from a global variable, a parameter or a locally
// declared variable.
type LoadInstruction struct {
	instruction
	src Value // src defines the variable to load. Either global, param or local.
}

// StoreInstruction defines a store instruction that saves a value to a memory allocated variable. A variable may be
// a global variable, local variable or function parameter.
type StoreInstruction struct {
	instruction
	src Value // src defines the value to save.
	dst Value // dst defines the variable to store to. Either global, param or local.
}

// ---------------------
// ----- Constants -----
// ---------------------

// labelAllocPrefix defines the textual LIR representation of a declaration label.
const labelAllocPrefix = "var"

// ---------------------
// ----- Functions -----
// ---------------------

// Name returns the name of the declared variable.
func (inst *DeclareInstruction) Name() string {
	return inst.name
}

// Type returns types.DeclareInstruction.
func (inst *DeclareInstruction) Type() types.InstructionType {
	return types.DeclareInstruction
}

// DataType returns the data type of the declared variable.
func (inst *DeclareInstruction) DataType() types.DataType {
	return inst.typ
}

// String returns the textual LIR representation of the DeclareInstruction.
func (inst *DeclareInstruction) String() string {
	return fmt.Sprintf("declare %s: %s", inst.name, inst.typ.String())
}

// Operands returns <nil>, because a declaration has no operands.
func (inst *DeclareInstruction) Operands() []Value {
	return nil
}

// Name returns the textual representation of the virtual register of the LoadInstruction.
func (inst *LoadInstruction) Name() string {
	return fmt.Sprintf("%s%d", labelDataInstruction, inst.id)
}

// Type returns types.LoadInstruction.
func (inst *LoadInstruction) Type() types.InstructionType {
	return types.LoadInstruction
}

// DataType returns the data type of the loaded variable.
func (inst *LoadInstruction) DataType() types.DataType {
	return inst.src.DataType()
}

// String returns the textual LIR representation of the LoadInstruction.
func (inst *LoadInstruction) String() string {
	return fmt.Sprintf("%s = load %s", inst.Name(), inst.src.Name())
}

// Operands returns the loaded variable.
func (inst *LoadInstruction) Operands() []Value {
	return []Value{inst.src}
}

// Source returns the loaded variable.
func (inst *LoadInstruction) Source() Value {
	return inst.src
}

// Name returns the textual representation of the StoreInstruction.
func (inst *StoreInstruction) Name() string {
	return fmt.Sprintf("store%d", inst.id)
}

// Type returns types.StoreInstruction.
func (inst *StoreInstruction) Type() types.InstructionType {
	return types.StoreInstruction
}

// DataType returns types.Unknown, because a store doesn't produce a value.
func (inst *StoreInstruction) DataType() types.DataType {
	return types.Unknown
}

// String returns the textual LIR representation of the StoreInstruction.
func (inst *StoreInstruction) String() string {
	return fmt.Sprintf("store %s, %s", inst.src.Name(), inst.dst.Name())
}

// Operands returns the stored value followed by the destination variable.
func (inst *StoreInstruction) Operands() []Value {
	return []Value{inst.src, inst.dst}
}

// Destination returns the variable stored to.
func (inst *StoreInstruction) Destination() Value {
	return inst.dst
}
