package augment

import (
	"fmt"
	"image"
	"math/rand/v2"
)

// Pipeline is a sequence of primitives applied to one image.
type Pipeline struct {
	Ops []Op
	// RandomOrder shuffles the ops on every run.
	RandomOrder bool
}

// Run applies the pipeline to img. The first failing op aborts the run.
func (p Pipeline) Run(r *rand.Rand, img *image.NRGBA) (*image.NRGBA, error) {
	order := make([]int, len(p.Ops))
	for i := range order {
		order[i] = i
	}
	if p.RandomOrder {
		r.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	}

	var err error
	for _, i := range order {
		img, err = Apply(r, p.Ops[i], img)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Ops[i].Name(), err)
		}
	}
	return img, nil
}

// Len returns the number of ops.
func (p Pipeline) Len() int { return len(p.Ops) }
