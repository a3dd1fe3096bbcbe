package lir

import (
	"fmt"

	"braids/src/ir/lir/types"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// DataInstruction defines an arithmetic instruction that leaves the result in a new virtual register.
type DataInstruction struct {
	instruction
	op       types.ArithmeticOperation // op defines the type of arithmetic operation of this instruction.
	op1, op2 Value                     // op1 and op2 holds the first and second operands respectively.
}

// ---------------------
// ----- Functions -----
// ---------------------

// Name returns the LIR textual representation of DataInstruction inst's virtual register.
func (inst *DataInstruction) Name() string {
	return fmt.Sprintf("%s%d", labelDataInstruction, inst.id)
}

// Type returns types.DataInstruction for the DataInstruction type.
func (inst *DataInstruction) Type() types.InstructionType {
	return types.DataInstruction
}

// DataType returns the resulting types.DataType of the DataInstruction inst.
func (inst *DataInstruction) DataType() types.DataType {
	if inst.op.IsUnary() || inst.op1.DataType() == inst.op2.DataType() {
		return inst.op1.DataType()
	}
	// If both operands are different the result is float.
	return types.Float
}

// String returns the LIR textual representation of the DataInstruction inst.
func (inst *DataInstruction) String() string {
	if inst.op.IsUnary() {
		return fmt.Sprintf("%s = %s %s", inst.Name(), inst.op.String(), inst.op1.Name())
	}
	return fmt.Sprintf("%s = %s %s, %s", inst.Name(), inst.op.String(), inst.op1.Name(), inst.op2.Name())
}

// Operands returns the operands of the DataInstruction inst, one for unary operations and two otherwise.
func (inst *DataInstruction) Operands() []Value {
	if inst.op.IsUnary() {
		return []Value{inst.op1}
	}
	return []Value{inst.op1, inst.op2}
}

// Operand1 returns the first operand of the DataInstruction inst.
func (inst *DataInstruction) Operand1() Value {
	return inst.op1
}

// Operand2 returns the second operand of the DataInstruction inst if it is a binary instruction. If it's a unary
// operation, <nil> is returned.
func (inst *DataInstruction) Operand2() Value {
	return inst.op2
}

// Operator returns the arithmetic operator of the data instruction.
func (inst *DataInstruction) Operator() types.ArithmeticOperation {
	return inst.op
}
