package lir

import (
	"fmt"

	"braids/src/ir/lir/types"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// CallInstruction calls a function and leaves the returned value in a new virtual register.
type CallInstruction struct {
	instruction
	callee *Function // Called function.
	args   []Value   // Arguments in parameter order.
}

// PrintInstruction prints its arguments to stdout.
type PrintInstruction struct {
	instruction
	args []Value // Values and global strings to print.
}

// ---------------------
// ----- Functions -----
// ---------------------

// Name returns the textual representation of the virtual register of the CallInstruction.
func (inst *CallInstruction) Name() string {
	return fmt.Sprintf("%s%d", labelDataInstruction, inst.id)
}

// Type returns types.CallInstruction.
func (inst *CallInstruction) Type() types.InstructionType {
	return types.CallInstruction
}

// DataType returns the return type of the called function.
func (inst *CallInstruction) DataType() types.DataType {
	return inst.callee.typ
}

// String returns the textual LIR representation of the CallInstruction.
func (inst *CallInstruction) String() string {
	return fmt.Sprintf("%s = call %s(%s)", inst.Name(), inst.callee.Name(), names(inst.args))
}

// Operands returns the arguments of the call. The callee is not an operand.
func (inst *CallInstruction) Operands() []Value {
	res := make([]Value, len(inst.args))
	copy(res, inst.args)
	return res
}

// Callee returns the called function.
func (inst *CallInstruction) Callee() *Function {
	return inst.callee
}

// Name returns the textual representation of the PrintInstruction.
func (inst *PrintInstruction) Name() string {
	return fmt.Sprintf("print%d", inst.id)
}

// Type returns types.PrintInstruction.
func (inst *PrintInstruction) Type() types.InstructionType {
	return types.PrintInstruction
}

// DataType returns types.Unknown, because printing doesn't produce a value.
func (inst *PrintInstruction) DataType() types.DataType {
	return types.Unknown
}

// String returns the textual LIR representation of the PrintInstruction.
func (inst *PrintInstruction) String() string {
	return fmt.Sprintf("print %s", names(inst.args))
}

// Operands returns the printed values in order.
func (inst *PrintInstruction) Operands() []Value {
	res := make([]Value, len(inst.args))
	copy(res, inst.args)
	return res
}
