package braid

import (
	"braids/src/util"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Partition assigns every instruction of a block, by ordinal, to exactly one braid. Braid ids are dense, in the
// range [0, Count()), and numbered in the order their first instruction appears in the block.
type Partition struct {
	ids   []int // Braid id of each instruction ordinal.
	count int   // Number of braids.
}

// ---------------------
// ----- Constants -----
// ---------------------

// unassigned marks an instruction not yet reached by any flood fill.
const unassigned = -1

// ---------------------
// ----- functions -----
// ---------------------

// Compute partitions the block of View v into braids. The block is scanned in program order; every instruction
// not yet assigned seeds a new braid, which is flood filled through operand and user edges within the block.
func Compute[I comparable](v *View[I]) *Partition {
	p := &Partition{
		ids: make([]int, v.Len()),
	}
	for i1 := range p.ids {
		p.ids[i1] = unassigned
	}

	work := util.NewStack[int](v.Len())
	for i1 := range p.ids {
		if p.ids[i1] != unassigned {
			continue
		}
		p.ids[i1] = p.count
		p.count++
		work.Push(i1)

		for !work.Empty() {
			node, _ := work.Pop()
			id := p.ids[node]

			// Visit parents.
			for _, e1 := range v.OperandNeighbors(node) {
				if p.ids[e1] == unassigned {
					p.ids[e1] = id
					work.Push(e1)
				}
			}

			// Visit children.
			for _, e1 := range v.UserNeighbors(node) {
				if p.ids[e1] == unassigned {
					p.ids[e1] = id
					work.Push(e1)
				}
			}
		}
	}
	return p
}

// Len returns the number of instructions partitioned.
func (p *Partition) Len() int {
	return len(p.ids)
}

// Count returns the number of braids.
func (p *Partition) Count() int {
	return p.count
}

// Braid returns the braid id of the instruction with ordinal i.
func (p *Partition) Braid(i int) int {
	return p.ids[i]
}

// Members returns the ordinals of the instructions of braid id in program order.
func (p *Partition) Members(id int) []int {
	res := make([]int, 0)
	for i1, e1 := range p.ids {
		if e1 == id {
			res = append(res, i1)
		}
	}
	return res
}

// Sizes returns the number of instructions of every braid, indexed by braid id.
func (p *Partition) Sizes() []int {
	res := make([]int, p.count)
	for _, e1 := range p.ids {
		res[e1]++
	}
	return res
}
