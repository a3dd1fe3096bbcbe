package lir

import (
	"fmt"
	"strings"
	"sync"

	"braids/src/ir/lir/types"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Module defines a program that contains globals and functions.
type Module struct {
	Name       string               // Name of module. Not important.
	globals    []*Global            // Global variables and strings in declaration order.
	functions  []*Function          // Functions in declaration order.
	fnames     map[string]*Function // Functions by name.
	seq        int                  // Sequence number used for assigning unique identifiers to every child of module.
	sync.Mutex                      // Mutex for synchronising access to the module during parallel construction.
}

// ---------------------
// ----- Constants -----
// ---------------------

// labelFunctionPrefix is used when assigning names to Function when no name is given.
const labelFunctionPrefix = "func"

// ---------------------
// ----- functions -----
// ---------------------

// CreateModule creates a new empty module with the given optional name.
func CreateModule(name string) *Module {
	m := Module{
		globals:   make([]*Global, 0, 16),
		functions: make([]*Function, 0, 16),
		fnames:    make(map[string]*Function, 16),
	}
	if len(name) > 0 {
		m.Name = name
	} else {
		m.Name = "LIR Module"
	}
	return &m
}

// String returns a textual representation of the module.
func (m *Module) String() string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("Module: %s\n\n", m.Name))

	// Add globals.
	for _, e1 := range m.globals {
		sb.WriteString(e1.String())
		sb.WriteRune('\n')
	}
	if len(m.globals) > 0 {
		sb.WriteRune('\n')
	}

	// Add functions.
	for _, e1 := range m.functions {
		sb.WriteString(e1.String())
		sb.WriteRune('\n')
	}
	return sb.String()
}

// CreateGlobalInt creates a global integer variable with the given optional name.
func (m *Module) CreateGlobalInt(name string) *Global {
	return m.createGlobal(name, types.Int, "")
}

// CreateGlobalFloat creates a global floating point variable with the given optional name.
func (m *Module) CreateGlobalFloat(name string) *Global {
	return m.createGlobal(name, types.Float, "")
}

// CreateString creates a global string constant. Using the returned Global as an operand passes a pointer to the
// string.
func (m *Module) CreateString(s string) *Global {
	return m.createGlobal("", types.String, s)
}

// createGlobal appends a new global of data type typ to the module.
func (m *Module) createGlobal(name string, typ types.DataType, s string) *Global {
	m.Lock()
	defer m.Unlock()
	g := &Global{
		m:   m,
		typ: typ,
		str: s,
	}
	g.id = m.getId()
	if len(name) > 0 {
		g.name = name
	} else {
		g.name = fmt.Sprintf("%s%d", labelGlobalPrefix, g.id)
	}
	m.globals = append(m.globals, g)
	return g
}

// CreateFunction creates a new function with return type rtyp. If name is empty a unique name is generated.
// An error is returned if the module already has a function with the same name.
func (m *Module) CreateFunction(rtyp types.DataType, name string) (*Function, error) {
	m.Lock()
	defer m.Unlock()
	f := &Function{
		m:   m,
		typ: rtyp,
	}
	f.id = m.getId()
	if len(name) > 0 {
		f.name = name
	} else {
		f.name = fmt.Sprintf("%s%d", labelFunctionPrefix, f.id)
	}
	if _, ok := m.fnames[f.name]; ok {
		return nil, fmt.Errorf("duplicate function name %q", f.name)
	}
	m.functions = append(m.functions, f)
	m.fnames[f.name] = f
	return f, nil
}

// Globals returns the global variables and strings of the module in declaration order.
func (m *Module) Globals() []*Global {
	return m.globals
}

// Functions returns the functions of the module in declaration order.
func (m *Module) Functions() []*Function {
	return m.functions
}

// GetFunction returns the function with the given name, or <nil> if there is none.
func (m *Module) GetFunction(name string) *Function {
	return m.fnames[name]
}

// GetGlobal returns the global variable with the given name, or <nil> if there is none.
func (m *Module) GetGlobal(name string) *Global {
	for _, e1 := range m.globals {
		if e1.name == name {
			return e1
		}
	}
	return nil
}

// getId returns a unique identifier for a child of Module m. The caller must hold the lock.
func (m *Module) getId() int {
	id := m.seq
	m.seq++
	return id
}
