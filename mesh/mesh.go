// Package mesh holds the externally owned node and section tables that
// elements reference by integer index.
package mesh

import (
	"errors"
	"fmt"

	"github.com/notargets/CSTKernel/material"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	ErrNodeNotFound    = errors.New("node not found")
	ErrSectionNotFound = errors.New("section not found")
	ErrInvalidDof      = errors.New("invalid degree of freedom index")
)

// Node is a 2D point carrying the global DoF indices of its x and y
// displacements
type Node struct {
	ID   int
	Name string
	X    r2.Vec
	Dofs [2]int // [ux, uy]
}

// Mesh owns nodes and sections. Elements hold indices into these tables,
// never pointers, so the tables may grow without invalidating them.
type Mesh struct {
	Nodes    []Node
	Sections []material.Section
}

func NewMesh() *Mesh {
	return &Mesh{}
}

// AddNode appends a node with DoFs [2·id, 2·id+1] and returns its id
func (m *Mesh) AddNode(name string, x, y float64) int {
	id := len(m.Nodes)
	m.Nodes = append(m.Nodes, Node{
		ID:   id,
		Name: name,
		X:    r2.Vec{X: x, Y: y},
		Dofs: [2]int{2 * id, 2*id + 1},
	})
	return id
}

// AddNodeWithDofs appends a node with caller-assigned global DoF indices
func (m *Mesh) AddNodeWithDofs(name string, x, y float64, dofs [2]int) (int, error) {
	if dofs[0] < 0 || dofs[1] < 0 {
		return -1, fmt.Errorf("%w: node %q: %v", ErrInvalidDof, name, dofs)
	}
	id := len(m.Nodes)
	m.Nodes = append(m.Nodes, Node{
		ID:   id,
		Name: name,
		X:    r2.Vec{X: x, Y: y},
		Dofs: dofs,
	})
	return id, nil
}

// MoveNode changes the coordinates of an existing node. Elements already
// built from the old position keep their snapshot until rebuilt.
func (m *Mesh) MoveNode(id int, x, y float64) error {
	if id < 0 || id >= len(m.Nodes) {
		return fmt.Errorf("%w: id %d", ErrNodeNotFound, id)
	}
	m.Nodes[id].X = r2.Vec{X: x, Y: y}
	return nil
}

func (m *Mesh) AddSection(s material.Section) int {
	m.Sections = append(m.Sections, s)
	return len(m.Sections) - 1
}

func (m *Mesh) Node(id int) (Node, error) {
	if id < 0 || id >= len(m.Nodes) {
		return Node{}, fmt.Errorf("%w: id %d", ErrNodeNotFound, id)
	}
	return m.Nodes[id], nil
}

func (m *Mesh) Section(id int) (material.Section, error) {
	if id < 0 || id >= len(m.Sections) || m.Sections[id] == nil {
		return nil, fmt.Errorf("%w: id %d", ErrSectionNotFound, id)
	}
	return m.Sections[id], nil
}

func (m *Mesh) NumNodes() int    { return len(m.Nodes) }
func (m *Mesh) NumSections() int { return len(m.Sections) }

// NumDofs returns one past the largest DoF index referenced by any node
func (m *Mesh) NumDofs() int {
	n := 0
	for _, nd := range m.Nodes {
		for _, d := range nd.Dofs {
			if d+1 > n {
				n = d + 1
			}
		}
	}
	return n
}
