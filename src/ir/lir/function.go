package lir

import (
	"fmt"
	"strings"

	"braids/src/ir/lir/types"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Function represents a function. It has a name, return datatype, parameters and basic blocks.
type Function struct {
	m      *Module        // Parent module. Used for requesting sequence numbers.
	id     int            // Unique identifier assigned to this function.
	name   string         // Name of function.
	typ    types.DataType // Return type of function.
	params []*Param       // Parameters of function.
	blocks []*Block       // Basic blocks in function body.
	seq    int            // Sequence number for generating unique identifiers for all children of function.
}

// Param represents a function parameter. A parameter has a name and a datatype.
type Param struct {
	node
	f    *Function      // Parent function.
	name string         // Name of parameter.
	typ  types.DataType // Data type of parameter.
}

// ---------------------
// ----- Constants -----
// ---------------------

// labelParamPrefix defines the Param types name prefix.
const labelParamPrefix = "p"

// ----------------------------
// ----- Function methods -----
// ----------------------------

// Id returns the unique sequence number assigned to Function f when it was created.
func (f *Function) Id() int {
	return f.id
}

// Name returns the name of Function f.
func (f *Function) Name() string {
	return f.name
}

// DataType returns the return type of Function f.
func (f *Function) DataType() types.DataType {
	return f.typ
}

// Module returns the module that owns Function f.
func (f *Function) Module() *Module {
	return f.m
}

// String returns the textual LIR representation of Function f.
func (f *Function) String() string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("function %s(", f.name))
	for i1, e1 := range f.params {
		sb.WriteString(e1.String())
		if i1 < len(f.params)-1 {
			sb.WriteString(", ")
		}
	}
	sb.WriteString(fmt.Sprintf("): %s", f.typ.String()))

	if len(f.blocks) > 0 {
		sb.WriteString(" {\n")
		for _, e1 := range f.blocks {
			sb.WriteString(e1.String())
		}
		sb.WriteRune('}')
	}
	return sb.String()
}

// Blocks returns the basic blocks of Function f.
func (f *Function) Blocks() []*Block {
	return f.blocks
}

// Params returns the parameters of Function f.
func (f *Function) Params() []*Param {
	return f.params
}

// CreateBlock creates a new Block for Function f.
func (f *Function) CreateBlock() *Block {
	b := &Block{
		f:            f,
		id:           f.getId(),
		instructions: make([]Value, 0, 16),
	}
	f.blocks = append(f.blocks, b)
	return b
}

// CreateParamInt creates and adds an integer parameter to Function f.
func (f *Function) CreateParamInt(name string) *Param {
	return f.createParam(name, types.Int)
}

// CreateParamFloat creates and adds a floating point parameter to Function f.
func (f *Function) CreateParamFloat(name string) *Param {
	return f.createParam(name, types.Float)
}

// createParam appends a parameter of data type typ to Function f.
func (f *Function) createParam(name string, typ types.DataType) *Param {
	p := &Param{
		f:   f,
		typ: typ,
	}
	p.id = f.getId()
	if len(name) > 0 {
		p.name = name
	} else {
		p.name = fmt.Sprintf("%s%d", labelParamPrefix, p.id)
	}
	f.params = append(f.params, p)
	return p
}

// GetParam returns the parameter with given name, if it exists. If Function f does not have a parameter with the
// given name, nil is returned.
func (f *Function) GetParam(name string) *Param {
	for _, e1 := range f.params {
		if e1.name == name {
			return e1
		}
	}
	return nil
}

// getId returns a unique identifier for any child of Function f.
func (f *Function) getId() int {
	id := f.seq
	f.seq++
	return id
}

// -------------------------
// ----- Param methods -----
// -------------------------

// Name returns the name of Param p.
func (p *Param) Name() string {
	return p.name
}

// Type returns types.Param.
func (p *Param) Type() types.InstructionType {
	return types.Param
}

// DataType returns the data type of Param p, either types.Int or types.Float.
func (p *Param) DataType() types.DataType {
	return p.typ
}

// String returns the textual LIR representation of Param p.
func (p *Param) String() string {
	return fmt.Sprintf("%s: %s", p.name, p.typ.String())
}

// Block returns <nil>, because a Param doesn't reside in a basic block.
func (p *Param) Block() *Block {
	return nil
}

// Operands returns <nil>, because params aren't computed.
func (p *Param) Operands() []Value {
	return nil
}
