package raster

import (
	"fmt"

	"outline/pkg/outline"
)

// Targets owns the offscreen buffers a technique renders through. All of
// them share one viewport size; Resize drops them so the next Ensure
// recreates them at the new size.
type Targets struct {
	width  int
	height int
	bufs   map[outline.TargetID]*outline.Buffer
}

// NewTargets creates an empty set of targets for a width x height viewport
func NewTargets(width, height int) (*Targets, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: viewport %dx%d", outline.ErrInvalidParams, width, height)
	}
	return &Targets{width: width, height: height, bufs: map[outline.TargetID]*outline.Buffer{}}, nil
}

// Ensure allocates every target tech needs that is missing or has the
// wrong format. Mask-sampling targets use nearest filtering.
func (t *Targets) Ensure(tech outline.Technique) error {
	for id, format := range outline.Targets(tech) {
		if b, ok := t.bufs[id]; ok && b.Format == format {
			continue
		}
		b, err := outline.NewBuffer(t.width, t.height, format)
		if err != nil {
			return fmt.Errorf("create %v target: %w", id, err)
		}
		b.Filter = outline.FilterNearest
		t.bufs[id] = b
	}
	return nil
}

// Get returns an allocated target
func (t *Targets) Get(id outline.TargetID) (*outline.Buffer, error) {
	b, ok := t.bufs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %v target not allocated", outline.ErrInvalidParams, id)
	}
	return b, nil
}

// Resize changes the viewport size and releases stale targets
func (t *Targets) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: viewport %dx%d", outline.ErrInvalidParams, width, height)
	}
	if width == t.width && height == t.height {
		return nil
	}
	t.width, t.height = width, height
	t.bufs = map[outline.TargetID]*outline.Buffer{}
	return nil
}
