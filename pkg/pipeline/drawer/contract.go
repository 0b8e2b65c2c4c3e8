package drawer

import (
	"time"

	"github.com/askiada/go-dws/pkg/pipeline/measure"
)

// Drawer is an interface that defines the methods for drawing a pipeline plan.
type Drawer interface {
	// AddNode adds a node to the plan drawer.
	AddNode(name string, kind NodeKind) error
	// AddLink adds a link between parent and child nodes.
	AddLink(parentName, childName string) error
	// Draw writes the plan graph.
	Draw() error
	// SetTotalTime sets the dispatch duration on a node.
	SetTotalTime(name string, elapsed time.Duration) error
	// ColourChain colours a chain of linked nodes, from the first to the last.
	ColourChain(names []string) error
	// AddMeasure annotates the nodes named after a metric with its values.
	AddMeasure(measure measure.Measure) error
}

// NodeKind tells how a node is rendered.
type NodeKind string

const (
	FileNode   NodeKind = "file"
	PartNode   NodeKind = "part"
	ActionNode NodeKind = "action"
	OutputNode NodeKind = "output"
)

var shapes = map[NodeKind]string{
	FileNode:   "note",
	PartNode:   "box",
	ActionNode: "ellipse",
	OutputNode: "doubleoctagon",
}
