// Package types defines LIR instruction types, data types etc.
package types

import "fmt"

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// ArithmeticOperation defines a type of arithmetic operation, either unary or binary.
type ArithmeticOperation uint

// RelationalOperation defines the relational operators of conditional branches.
type RelationalOperation uint

// InstructionType defines different type of LIR values.
type InstructionType uint

// DataType defines LIR data types.
type DataType uint

// ---------------------
// ----- Constants -----
// ---------------------

const (
	Add    ArithmeticOperation = iota // Add identifies the arithmetic operation a = b + c.
	Sub                               // Sub identifies the arithmetic operation a = b - c.
	Mul                               // Mul identifies the arithmetic operation a = b * c.
	Div                               // Div identifies the arithmetic operation a = b / c.
	Rem                               // Rem identifies the arithmetic operation a = b % c.
	LShift                            // LShift identifies the arithmetic operation a = b << c.
	RShift                            // RShift identifies the arithmetic operation a = b >> c.
	And                               // And identifies the arithmetic operation a = b & c.
	Xor                               // Xor identifies the arithmetic operation a = b ^ c.
	Or                                // Or identifies the arithmetic operation a = b | c.
	Neg                               // Neg identifies the arithmetic operation a = -b.
	Not                               // Not identifies the arithmetic operation a = ~b.
)

const (
	Eq                 RelationalOperation = iota // Eq defines ==.
	Neq                                           // Neq defines !=.
	LessThan                                      // LessThan defines <.
	LessThanOrEqual                               // LessThanOrEqual defines <=.
	GreaterThan                                   // GreaterThan defines >.
	GreaterThanOrEqual                            // GreaterThanOrEqual defines >=.
)

const (
	DataInstruction InstructionType = iota
	LoadInstruction
	StoreInstruction
	DeclareInstruction
	CallInstruction
	PrintInstruction
	BranchInstruction
	ReturnInstruction
	Constant
	Param
	Global
)

const (
	Int DataType = iota
	Float
	String
	Unknown
)

// -------------------
// ----- Globals -----
// -------------------

// aTyp provides string literals for ArithmeticOperation constants.
var aTyp = [...]string{
	"add",
	"sub",
	"mul",
	"div",
	"rem",
	"lshift",
	"rshift",
	"and",
	"xor",
	"or",
	"neg",
	"not",
}

// iTyp provides string literals for InstructionType constants.
var iTyp = [...]string{
	"DataInstruction",
	"LoadInstruction",
	"StoreInstruction",
	"DeclareInstruction",
	"CallInstruction",
	"PrintInstruction",
	"BranchInstruction",
	"ReturnInstruction",
	"Constant",
	"Param",
	"Global",
}

// dTyp provides string literals for DataType constants.
var dTyp = [...]string{
	"int",
	"float",
	"string",
	"unknown",
}

// lTyp provides string literals for RelationalOperation constants.
var lTyp = [...]string{
	"eq",
	"neq",
	"lt",
	"le",
	"gt",
	"ge",
}

// ---------------------
// ----- Functions -----
// ---------------------

// String provides a print friendly string representation of the ArithmeticOperation.
func (op ArithmeticOperation) String() string {
	if int(op) < len(aTyp) {
		return aTyp[op]
	}
	return fmt.Sprintf("ArithmeticOperation(%d)", uint(op))
}

// IsUnary returns true for operations that take a single operand.
func (op ArithmeticOperation) IsUnary() bool {
	return op == Neg || op == Not
}

// String provides a print friendly string representation of the InstructionType.
func (typ InstructionType) String() string {
	if int(typ) < len(iTyp) {
		return iTyp[typ]
	}
	return fmt.Sprintf("InstructionType(%d)", uint(typ))
}

// IsInstruction returns true for types that are placed in basic blocks.
func (typ InstructionType) IsInstruction() bool {
	return typ < Constant
}

// String provides a print friendly string representation of the DataType.
func (typ DataType) String() string {
	if int(typ) < len(dTyp) {
		return dTyp[typ]
	}
	return fmt.Sprintf("DataType(%d)", uint(typ))
}

// String provides a print friendly string representation of the RelationalOperation.
func (op RelationalOperation) String() string {
	if int(op) < len(lTyp) {
		return lTyp[op]
	}
	return fmt.Sprintf("RelationalOperation(%d)", uint(op))
}
