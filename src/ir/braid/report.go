package braid

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// BlockReport is the result of partitioning one block. It holds only strings and integers, so it outlives the
// view, the partition and the host representation.
type BlockReport struct {
	Name         string   // Name of the block.
	Instructions []string // Textual representation of every instruction in program order.
	Braids       []int    // Braid id of every instruction in program order.
	Count        int      // Number of braids.
}

// FunctionReport is the result of partitioning every block of a function.
type FunctionReport struct {
	Name   string        // Name of the function.
	Params int           // Number of parameters of the function.
	Blocks []BlockReport // One report per block, in block order.
}

// jsonBlock is the JSON rendering of a BlockReport.
type jsonBlock struct {
	Name         string     `json:"name"`
	Instructions int        `json:"instructions"`
	Braids       int        `json:"braids"`
	Members      [][]string `json:"members"`
}

// jsonFunction is the JSON rendering of a FunctionReport.
type jsonFunction struct {
	Name   string      `json:"name"`
	Params int         `json:"params"`
	Blocks []jsonBlock `json:"blocks"`
}

// ---------------------
// ----- functions -----
// ---------------------

// NewBlockReport captures Partition p of the block viewed by v.
func NewBlockReport[I comparable](v *View[I], p *Partition) BlockReport {
	if v.Len() != p.Len() {
		panic(fmt.Sprintf("block %q: partition of %d instructions does not match block of %d instructions",
			v.Block().Name(), p.Len(), v.Len()))
	}
	r := BlockReport{
		Name:         v.Block().Name(),
		Instructions: make([]string, v.Len()),
		Braids:       make([]int, v.Len()),
		Count:        p.Count(),
	}
	for i1 := 0; i1 < v.Len(); i1++ {
		r.Instructions[i1] = v.Block().Format(v.Instruction(i1))
		r.Braids[i1] = p.Braid(i1)
	}
	return r
}

// Members returns the textual representation of the instructions of every braid, indexed by braid id. Within a
// braid instructions are in program order.
func (r *BlockReport) Members() [][]string {
	res := make([][]string, r.Count)
	for i1 := range res {
		res[i1] = make([]string, 0)
	}
	for i1, e1 := range r.Braids {
		res[e1] = append(res[e1], r.Instructions[i1])
	}
	return res
}

// String returns the textual report of the block without the instruction listing.
func (r *BlockReport) String() string {
	sb := strings.Builder{}
	r.text(&sb, false)
	return sb.String()
}

// text writes the block header, the optional instruction listing and the braids of r to sb.
func (r *BlockReport) text(sb *strings.Builder, listing bool) {
	sb.WriteString(fmt.Sprintf("\n  Basic block (name=%s) has %d instructions.\n", r.Name, len(r.Instructions)))
	if listing {
		for _, e1 := range r.Instructions {
			sb.WriteString(fmt.Sprintf("    %s\n", e1))
		}
	}
	sb.WriteString(fmt.Sprintf("\n  Basic block (name=%s) has %d braids.\n", r.Name, r.Count))
	for i1 := 0; i1 < r.Count; i1++ {
		for i2, e2 := range r.Braids {
			if e2 == i1 {
				sb.WriteString(fmt.Sprintf("    braid:%d %s\n", i1, r.Instructions[i2]))
			}
		}
	}
}

// String returns the textual report of the function without instruction listings.
func (r *FunctionReport) String() string {
	sb := strings.Builder{}
	r.text(&sb, false)
	return sb.String()
}

// text writes the function header followed by the report of every block to sb.
func (r *FunctionReport) text(sb *strings.Builder, listing bool) {
	sb.WriteString(fmt.Sprintf("\nFunction: %s\n", r.Name))
	sb.WriteString(fmt.Sprintf("  number of arguments: %d\n", r.Params))
	sb.WriteString(fmt.Sprintf("  number of basic blocks: %d\n", len(r.Blocks)))
	for i1 := range r.Blocks {
		r.Blocks[i1].text(sb, listing)
	}
}

// WriteText writes the textual report of the function to w. If listing is set, every block header is followed by
// the block's instructions.
func (r *FunctionReport) WriteText(w io.Writer, listing bool) error {
	sb := strings.Builder{}
	r.text(&sb, listing)
	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteJSON writes the report of the function to w as a single line JSON object.
func (r *FunctionReport) WriteJSON(w io.Writer) error {
	jf := jsonFunction{
		Name:   r.Name,
		Params: r.Params,
		Blocks: make([]jsonBlock, len(r.Blocks)),
	}
	for i1 := range r.Blocks {
		b := &r.Blocks[i1]
		jf.Blocks[i1] = jsonBlock{
			Name:         b.Name,
			Instructions: len(b.Instructions),
			Braids:       b.Count,
			Members:      b.Members(),
		}
	}
	return json.NewEncoder(w).Encode(jf)
}
