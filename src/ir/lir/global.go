package lir

import (
	"fmt"
	"strconv"

	"braids/src/ir/lir/types"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Global defines an LIR global variable or global string.
type Global struct {
	node
	m    *Module        // m is the Module that owns this Global.
	name string         // name defines the unique string name of the global variable.
	typ  types.DataType // typ defines the data type of the global variable.
	str  string         // str holds the contents of a global string.
}

// Constant defines an integer or floating point constant. Constants are not placed in basic blocks.
type Constant struct {
	node
	typ types.DataType // typ defines the constant's data type.
	val interface{}    // val holds the constant's data value, int or float64.
}

// ---------------------
// ----- Constants -----
// ---------------------

// labelGlobalPrefix is used when assigning names to Global when no name is given.
const labelGlobalPrefix = "@g"

// ---------------------
// ----- Functions -----
// ---------------------

// Name returns the name of the Global.
func (g *Global) Name() string {
	return g.name
}

// Type returns types.Global.
func (g *Global) Type() types.InstructionType {
	return types.Global
}

// DataType returns the data type of the Global.
func (g *Global) DataType() types.DataType {
	return g.typ
}

// String returns the textual LIR representation of the Global.
func (g *Global) String() string {
	if g.typ == types.String {
		return fmt.Sprintf("%s: %s = %s", g.name, g.typ.String(), strconv.Quote(g.str))
	}
	return fmt.Sprintf("%s: %s", g.name, g.typ.String())
}

// Block returns <nil>, because a Global doesn't reside in a basic block.
func (g *Global) Block() *Block {
	return nil
}

// Operands returns <nil>, because a Global has no operands.
func (g *Global) Operands() []Value {
	return nil
}

// Value returns the contents of a global string.
func (g *Global) Value() string {
	return g.str
}

// ConstantInt creates an integer constant.
func ConstantInt(i int) *Constant {
	return &Constant{typ: types.Int, val: i}
}

// ConstantFloat creates a floating point constant.
func ConstantFloat(f float64) *Constant {
	return &Constant{typ: types.Float, val: f}
}

// Name returns the literal value of the Constant.
func (c *Constant) Name() string {
	if c.typ == types.Int {
		return strconv.Itoa(c.val.(int))
	}
	return strconv.FormatFloat(c.val.(float64), 'g', -1, 64)
}

// Type returns types.Constant.
func (c *Constant) Type() types.InstructionType {
	return types.Constant
}

// DataType returns the data type of the Constant.
func (c *Constant) DataType() types.DataType {
	return c.typ
}

// String returns the textual LIR representation of the Constant.
func (c *Constant) String() string {
	return fmt.Sprintf("%s(%s)", c.typ.String(), c.Name())
}

// Block returns <nil>, because a Constant doesn't reside in a basic block.
func (c *Constant) Block() *Block {
	return nil
}

// Operands returns <nil>, because a Constant has no operands.
func (c *Constant) Operands() []Value {
	return nil
}

// Value returns the data value of the Constant, int or float64.
func (c *Constant) Value() interface{} {
	return c.val
}
