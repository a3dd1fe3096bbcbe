package lir

import (
	"fmt"
	"strings"

	"braids/src/ir/lir/types"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Block defines a basic block. A basic block is a sequence of instructions that is terminated by a branch
// instruction or a return instruction.
type Block struct {
	f            *Function // Parent function that owns the basic block.
	id           int       // Unique identifier of basic block.
	term         Value     // Branch instruction or return instruction.
	instructions []Value   // Instructions in the basic block.
}

// instruction holds the fields shared by all values that reside in a basic block.
type instruction struct {
	node
	b *Block // b is the basic block element that owns this instruction.
}

// ---------------------
// ----- Constants -----
// ---------------------

// labelBlockPrefix defines the textual LIR representation of a basic block label.
const labelBlockPrefix = "block"

// ---------------------
// ----- functions -----
// ---------------------

// Block returns the basic block that owns the instruction.
func (inst *instruction) Block() *Block {
	return inst.b
}

// Id returns the uniquely assigned identifier of Block b.
func (b *Block) Id() int {
	return b.id
}

// Name returns the textual LIR label name of Block b.
func (b *Block) Name() string {
	return fmt.Sprintf("%s%d", labelBlockPrefix, b.id)
}

// Function returns the function that owns Block b.
func (b *Block) Function() *Function {
	return b.f
}

// Terminator returns the branch or return instruction that terminates Block b, or <nil> if b is open.
func (b *Block) Terminator() Value {
	return b.term
}

// String returns the textual LIR representation of all instructions in Block b.
func (b *Block) String() string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("%s:\n", b.Name()))
	for _, e1 := range b.instructions {
		sb.WriteRune('\t')
		sb.WriteString(e1.String())
		sb.WriteRune('\n')
	}
	if b.term == nil {
		sb.WriteString(fmt.Sprintf("// Error: basic block %s is not terminated. Terminate using return statement or branch statement.\n",
			b.Name()))
	}
	return sb.String()
}

// Instructions returns the instructions of the basic Block b in program order.
func (b *Block) Instructions() []Value {
	res := make([]Value, len(b.instructions))
	copy(res, b.instructions)
	return res
}

// Len returns the number of instructions in Block b.
func (b *Block) Len() int {
	return len(b.instructions)
}

// newInstruction returns the common part of a new instruction of Block b.
func (b *Block) newInstruction() instruction {
	if b.term != nil {
		panic(fmt.Sprintf("function %s, block %s: cannot append instruction to terminated block",
			b.f.Name(), b.Name()))
	}
	return instruction{
		node: node{id: b.f.getId()},
		b:    b,
	}
}

// add appends inst to Block b and registers it with its operands.
func (b *Block) add(inst Value) {
	b.instructions = append(b.instructions, inst)
	use(inst)
}

// ------------------------------
// ----- Branch instruction -----
// ------------------------------

// CreateConditionalBranch creates a conditional branch of type IF-THEN-ELSE that compares op1 and op2 using the
// relational operator op.
func (b *Block) CreateConditionalBranch(op types.RelationalOperation, op1, op2 Value, thn, els *Block) *BranchInstruction {
	if op > types.GreaterThanOrEqual {
		panic(fmt.Sprintf("function %s, block %s: unexpected relational operation %d",
			b.f.Name(), b.Name(), op))
	}
	if thn == nil || els == nil {
		panic(fmt.Sprintf("function %s, block %s: conditional branch needs two targets", b.f.Name(), b.Name()))
	}
	checkValue(op1, "CreateConditionalBranch", 1)
	checkValue(op2, "CreateConditionalBranch", 2)
	br := &BranchInstruction{
		instruction: b.newInstruction(),
		op:          op,
		op1:         op1,
		op2:         op2,
		thn:         thn,
		els:         els,
	}
	b.add(br)
	b.term = br
	return br
}

// CreateBranch creates an unconditional branch instruction, effectively terminating Block b.
func (b *Block) CreateBranch(dst *Block) *BranchInstruction {
	br := &BranchInstruction{
		instruction: b.newInstruction(),
		thn:         dst,
	}
	b.add(br)
	b.term = br
	return br
}

// CreateReturn creates a return instruction, effectively terminating Block b. val may be <nil> for functions
// without a result.
func (b *Block) CreateReturn(val Value) *ReturnInstruction {
	if val != nil {
		checkValue(val, "CreateReturn", 1)
	}
	ret := &ReturnInstruction{
		instruction: b.newInstruction(),
		val:         val,
	}
	b.add(ret)
	b.term = ret
	return ret
}

// -----------------------------------
// ----- Arithmetic instructions -----
// -----------------------------------

// CreateAdd creates an add instruction. The resulting DataInstruction = op1 + op2.
func (b *Block) CreateAdd(op1, op2 Value) *DataInstruction {
	return b.createBinary(types.Add, op1, op2)
}

// CreateSub creates a subtract instruction. The resulting DataInstruction = op1 - op2.
func (b *Block) CreateSub(op1, op2 Value) *DataInstruction {
	return b.createBinary(types.Sub, op1, op2)
}

// CreateMul creates a multiply instruction. The resulting DataInstruction = op1 * op2.
func (b *Block) CreateMul(op1, op2 Value) *DataInstruction {
	return b.createBinary(types.Mul, op1, op2)
}

// CreateDiv creates a divide instruction. The resulting DataInstruction = op1 / op2.
func (b *Block) CreateDiv(op1, op2 Value) *DataInstruction {
	return b.createBinary(types.Div, op1, op2)
}

// CreateRem creates a remainder instruction. The resulting DataInstruction = op1 % op2.
func (b *Block) CreateRem(op1, op2 Value) *DataInstruction {
	return b.createBinary(types.Rem, op1, op2)
}

// CreateLShift creates a left shift instruction. The resulting DataInstruction = op1 << op2.
func (b *Block) CreateLShift(op1, op2 Value) *DataInstruction {
	return b.createBinary(types.LShift, op1, op2)
}

// CreateRShift creates a right shift instruction. The resulting DataInstruction = op1 >> op2.
func (b *Block) CreateRShift(op1, op2 Value) *DataInstruction {
	return b.createBinary(types.RShift, op1, op2)
}

// CreateXOR creates a bitwise XOR instruction. The resulting DataInstruction = op1 ^ op2.
func (b *Block) CreateXOR(op1, op2 Value) *DataInstruction {
	return b.createBinary(types.Xor, op1, op2)
}

// CreateOR creates a bitwise OR instruction. The resulting DataInstruction = op1 | op2.
func (b *Block) CreateOR(op1, op2 Value) *DataInstruction {
	return b.createBinary(types.Or, op1, op2)
}

// CreateAND creates a bitwise AND instruction. The resulting DataInstruction = op1 & op2.
func (b *Block) CreateAND(op1, op2 Value) *DataInstruction {
	return b.createBinary(types.And, op1, op2)
}

// CreateNOT creates a bitwise NOT instruction. The resulting DataInstruction = ~op1.
func (b *Block) CreateNOT(op1 Value) *DataInstruction {
	return b.createUnary(types.Not, op1)
}

// CreateNeg creates a negation instruction. The resulting DataInstruction = -op1.
func (b *Block) CreateNeg(op1 Value) *DataInstruction {
	return b.createUnary(types.Neg, op1)
}

// createBinary creates a DataInstruction with two operands.
func (b *Block) createBinary(op types.ArithmeticOperation, op1, op2 Value) *DataInstruction {
	checkValue(op1, op.String(), 1)
	checkValue(op2, op.String(), 2)
	if !expCompatible(op, op1.DataType(), op2.DataType()) {
		panic(fmt.Sprintf("function %s, block %s: cannot %s %s and %s",
			b.f.Name(), b.Name(), op.String(), op1.DataType().String(), op2.DataType().String()))
	}
	inst := &DataInstruction{
		instruction: b.newInstruction(),
		op:          op,
		op1:         op1,
		op2:         op2,
	}
	b.add(inst)
	return inst
}

// createUnary creates a DataInstruction with one operand.
func (b *Block) createUnary(op types.ArithmeticOperation, op1 Value) *DataInstruction {
	checkValue(op1, op.String(), 1)
	if op == types.Not && op1.DataType() != types.Int {
		panic(fmt.Sprintf("function %s, block %s: cannot %s %s",
			b.f.Name(), b.Name(), op.String(), op1.DataType().String()))
	}
	inst := &DataInstruction{
		instruction: b.newInstruction(),
		op:          op,
		op1:         op1,
	}
	b.add(inst)
	return inst
}

// -------------------------------
// ----- Memory instructions -----
// -------------------------------

// CreateDeclareInt creates a new types.Int variable on the stack.
func (b *Block) CreateDeclareInt(name string) *DeclareInstruction {
	return b.createDeclare(name, types.Int)
}

// CreateDeclareFloat creates a new types.Float variable on the stack.
func (b *Block) CreateDeclareFloat(name string) *DeclareInstruction {
	return b.createDeclare(name, types.Float)
}

// createDeclare creates a new stack variable of data type typ.
func (b *Block) createDeclare(name string, typ types.DataType) *DeclareInstruction {
	inst := &DeclareInstruction{
		instruction: b.newInstruction(),
		typ:         typ,
	}
	if len(name) > 0 {
		inst.name = name
	} else {
		inst.name = fmt.Sprintf("%s%d", labelAllocPrefix, inst.id)
	}
	b.add(inst)
	return inst
}

// CreateLoad loads the value of the variable src into the returned LoadInstruction. src must be a parameter, a
// global variable or a declared local variable.
func (b *Block) CreateLoad(src Value) *LoadInstruction {
	checkVariable(src, "CreateLoad")
	inst := &LoadInstruction{
		instruction: b.newInstruction(),
		src:         src,
	}
	b.add(inst)
	return inst
}

// CreateStore stores the value src into the variable dst. dst must be a parameter, a global variable or a declared
// local variable.
func (b *Block) CreateStore(src, dst Value) *StoreInstruction {
	checkValue(src, "CreateStore", 1)
	checkVariable(dst, "CreateStore")
	inst := &StoreInstruction{
		instruction: b.newInstruction(),
		src:         src,
		dst:         dst,
	}
	b.add(inst)
	return inst
}

// -----------------------------
// ----- Call instructions -----
// -----------------------------

// CreateCall creates a call to Function callee with the given arguments. The number of arguments must match the
// number of parameters of callee.
func (b *Block) CreateCall(callee *Function, args ...Value) *CallInstruction {
	if callee == nil {
		panic(fmt.Sprintf("function %s, block %s: callee is <nil>", b.f.Name(), b.Name()))
	}
	if len(args) != len(callee.params) {
		panic(fmt.Sprintf("function %s, block %s: call to %s expects %d arguments, got %d",
			b.f.Name(), b.Name(), callee.Name(), len(callee.params), len(args)))
	}
	for i1, e1 := range args {
		checkValue(e1, "CreateCall", i1+1)
	}
	inst := &CallInstruction{
		instruction: b.newInstruction(),
		callee:      callee,
		args:        args,
	}
	b.add(inst)
	return inst
}

// CreatePrint creates a print instruction that prints all arguments in order. Arguments are values or global
// strings.
func (b *Block) CreatePrint(args ...Value) *PrintInstruction {
	for i1, e1 := range args {
		if g, ok := e1.(*Global); ok && g.typ == types.String {
			continue
		}
		checkValue(e1, "CreatePrint", i1+1)
	}
	inst := &PrintInstruction{
		instruction: b.newInstruction(),
		args:        args,
	}
	b.add(inst)
	return inst
}

// expCompatible returns true if the binary operation op is defined for operands of data types t1 and t2.
// Bitwise operations, shifts and remainder are integer only.
func expCompatible(op types.ArithmeticOperation, t1, t2 types.DataType) bool {
	if t1 == types.String || t2 == types.String {
		return false
	}
	if t1 == types.Int && t2 == types.Int {
		return true
	}
	return op <= types.Div
}
