package lir

import (
	"fmt"

	"braids/src/ir/lir/types"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// BranchInstruction defines an unconditional or conditional branch instruction.
type BranchInstruction struct {
	instruction
	thn      *Block                    // thn is the target for unconditional and the target THEN block of conditional branches.
	els      *Block                    // els is the target for conditional ELSE block. Is <nil> for unconditional branches.
	op1, op2 Value                     // op1 and op2 are the Values to compare for conditional branches. Is <nil> for unconditional branches.
	op       types.RelationalOperation // op defines the type of relation operation of conditional branch.
}

// ReturnInstruction defines a return statement.
type ReturnInstruction struct {
	instruction
	val Value // val is the returned value of the return statement. May be <nil>.
}

// ---------------------
// ----- Functions -----
// ---------------------

// Name returns the textual representation of the BranchInstruction.
func (inst *BranchInstruction) Name() string {
	if inst.els == nil {
		return fmt.Sprintf("jump%d", inst.id)
	}
	return fmt.Sprintf("cond%d", inst.id)
}

// Type returns types.BranchInstruction.
func (inst *BranchInstruction) Type() types.InstructionType {
	return types.BranchInstruction
}

// DataType returns the DataType types.Unknown, because no result is generated for a branch instruction.
func (inst *BranchInstruction) DataType() types.DataType {
	return types.Unknown
}

// String returns the textual LIR representation of the BranchInstruction.
func (inst *BranchInstruction) String() string {
	if inst.els == nil {
		// Unconditional branch.
		return fmt.Sprintf("br %s", blockName(inst.thn))
	}
	// Conditional branch.
	return fmt.Sprintf("br %s %s, %s ? %s : %s", inst.op.String(), inst.op1.Name(), inst.op2.Name(),
		blockName(inst.thn), blockName(inst.els))
}

// Operands returns the compared values of a conditional branch, and <nil> for unconditional branches.
func (inst *BranchInstruction) Operands() []Value {
	if inst.op1 == nil {
		return nil
	}
	return []Value{inst.op1, inst.op2}
}

// Operator returns the relational operator of a conditional branch.
func (inst *BranchInstruction) Operator() types.RelationalOperation {
	return inst.op
}

// Then returns the branch target, or the THEN target of a conditional branch.
func (inst *BranchInstruction) Then() *Block {
	return inst.thn
}

// Else returns the ELSE target of a conditional branch, <nil> for unconditional branches.
func (inst *BranchInstruction) Else() *Block {
	return inst.els
}

// Name returns the textual representation of the ReturnInstruction.
func (inst *ReturnInstruction) Name() string {
	return fmt.Sprintf("ret%d", inst.id)
}

// Type returns types.ReturnInstruction.
func (inst *ReturnInstruction) Type() types.InstructionType {
	return types.ReturnInstruction
}

// DataType returns types.Unknown, because the return instruction itself yields no value.
func (inst *ReturnInstruction) DataType() types.DataType {
	return types.Unknown
}

// String returns the textual LIR representation of the ReturnInstruction.
func (inst *ReturnInstruction) String() string {
	if inst.val == nil {
		return "ret"
	}
	return fmt.Sprintf("ret %s", inst.val.Name())
}

// Operands returns the returned value, if any.
func (inst *ReturnInstruction) Operands() []Value {
	if inst.val == nil {
		return nil
	}
	return []Value{inst.val}
}

// blockName returns the label of b, tolerating branches to blocks that are not created yet.
func blockName(b *Block) string {
	if b == nil {
		return "<nil>"
	}
	return b.Name()
}
