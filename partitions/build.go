package partitions

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/notargets/CSTKernel/element"
	"github.com/notargets/CSTKernel/utils"
	"golang.org/x/sync/errgroup"
)

// Logger receives debug progress from BuildCSTs. It discards by default.
var Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// BuildCSTs constructs one CST per definition, one goroutine per partition of
// the layout. The model is only read, so it must not be modified while the
// build runs. The result is ordered like defs. The first failure cancels the
// remaining partitions and is returned with no elements. On success each
// partition's ElementTypes is filled from the built elements.
func BuildCSTs(ctx context.Context, model element.Model, defs []element.CSTDefinition,
	layout *PartitionLayout) ([]*element.CST, error) {
	if layout == nil {
		var err error
		if layout, err = NewPartitionLayout(len(defs), 1); err != nil {
			return nil, err
		}
	}
	if layout.TotalElements != len(defs) {
		return nil, fmt.Errorf("layout covers %d elements, got %d definitions",
			layout.TotalElements, len(defs))
	}

	elems := make([]*element.CST, len(defs))
	g, ctx := errgroup.WithContext(ctx)
	for i := range layout.Partitions {
		p := &layout.Partitions[i]
		g.Go(func() error {
			types := make([]utils.GeometryType, 0, len(p.Elements))
			for _, k := range p.Elements {
				if err := ctx.Err(); err != nil {
					return err
				}
				el, err := element.NewCST(model, defs[k])
				if err != nil {
					return fmt.Errorf("partition %d: %w", p.ID, err)
				}
				// each k belongs to exactly one partition, so writes never overlap
				elems[k] = el
				types = append(types, el.GetProperties().Type)
			}
			p.ElementTypes = types
			Logger.Debug("partition built", "partition", p.ID, "elements", p.NumElements)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return elems, nil
}
