package partitions

import (
	"fmt"
	"math"

	"github.com/notargets/CSTKernel/utils"
)

// PartitionStrategy defines how elements are grouped
type PartitionStrategy int

const (
	BlockPartition PartitionStrategy = iota // Consecutive elements
	RoundRobin                              // Distribute cyclically
)

// PartitionBuilder constructs a partition layout for a set of elements
type PartitionBuilder struct {
	NumElements  int
	ElementTypes []utils.GeometryType // optional, one per element

	// Partitioning parameters; NumPartitions wins over TargetPartitionSize
	NumPartitions       int // Desired partition count
	TargetPartitionSize int // Desired elements per partition
	Strategy            PartitionStrategy
}

// NewPartitionLayout splits numElements into numPartitions balanced blocks
// of consecutive elements
func NewPartitionLayout(numElements, numPartitions int) (*PartitionLayout, error) {
	if numElements < 0 {
		return nil, fmt.Errorf("invalid element count %d", numElements)
	}
	if numPartitions < 1 {
		return nil, fmt.Errorf("invalid partition count %d", numPartitions)
	}
	pb := &PartitionBuilder{
		NumElements:   numElements,
		NumPartitions: numPartitions,
		Strategy:      BlockPartition,
	}
	return pb.BuildPartitions()
}

// BuildPartitions creates a partition layout
func (pb *PartitionBuilder) BuildPartitions() (*PartitionLayout, error) {
	if pb.NumElements < 0 {
		return nil, fmt.Errorf("invalid element count %d", pb.NumElements)
	}
	if pb.NumPartitions < 1 && pb.TargetPartitionSize < 1 {
		return nil, fmt.Errorf("invalid target partition size %d", pb.TargetPartitionSize)
	}
	if pb.ElementTypes != nil && len(pb.ElementTypes) != pb.NumElements {
		return nil, fmt.Errorf("ElementTypes length %d does not match NumElements=%d",
			len(pb.ElementTypes), pb.NumElements)
	}

	numPartitions := pb.calculateNumPartitions()
	eToP := pb.partitionElements(numPartitions)
	partitions := pb.createPartitions(eToP, numPartitions)

	kpartMax := 0
	for _, p := range partitions {
		if p.NumElements > kpartMax {
			kpartMax = p.NumElements
		}
	}
	for i := range partitions {
		partitions[i].MaxElements = kpartMax
	}

	layout := &PartitionLayout{
		Partitions:    partitions,
		KpartMax:      kpartMax,
		TotalElements: pb.NumElements,
		NumPartitions: numPartitions,
		EToP:          eToP,
	}

	if err := layout.ValidateLayout(); err != nil {
		return nil, fmt.Errorf("invalid partition layout: %w", err)
	}

	return layout, nil
}

// calculateNumPartitions determines the partition count: at least one, and
// never more than there are elements
func (pb *PartitionBuilder) calculateNumPartitions() int {
	numPartitions := pb.NumPartitions
	if numPartitions < 1 {
		numPartitions = int(math.Ceil(float64(pb.NumElements) / float64(pb.TargetPartitionSize)))
	}
	if numPartitions > pb.NumElements {
		numPartitions = pb.NumElements
	}
	if numPartitions < 1 {
		numPartitions = 1
	}
	return numPartitions
}

// partitionElements assigns elements to partitions
func (pb *PartitionBuilder) partitionElements(numPartitions int) []int {
	eToP := make([]int, pb.NumElements)

	switch pb.Strategy {
	case RoundRobin:
		for i := 0; i < pb.NumElements; i++ {
			eToP[i] = i % numPartitions
		}

	default:
		// Spread the remainder over the first partitions so sizes differ by at most one
		base, rem := pb.NumElements/numPartitions, pb.NumElements%numPartitions
		k := 0
		for p := 0; p < numPartitions; p++ {
			n := base
			if p < rem {
				n++
			}
			for i := 0; i < n; i++ {
				eToP[k] = p
				k++
			}
		}
	}

	return eToP
}

// createPartitions builds partition structures from element assignments
func (pb *PartitionBuilder) createPartitions(eToP []int, numPartitions int) []Partition {
	partitions := make([]Partition, numPartitions)
	for i := range partitions {
		partitions[i] = Partition{
			ID:       i,
			Elements: make([]int, 0),
		}
	}

	for elem, part := range eToP {
		partitions[part].Elements = append(partitions[part].Elements, elem)
		if pb.ElementTypes != nil {
			partitions[part].ElementTypes = append(partitions[part].ElementTypes,
				pb.ElementTypes[elem])
		}
		partitions[part].NumElements++
	}

	return partitions
}
