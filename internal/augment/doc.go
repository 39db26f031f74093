// Package augment implements the randomized distortions applied to glyphs
// and word images, and the pipelines that chain them.
//
// # Primitives
//
// The primitives form a closed set: PadLeftRight, ResizeChar,
// AffineTransform, WrapText, Transformation3D and ElasticTransformation.
// Each carries its own parameters and an activation probability p. Apply
// is the single dispatch point: it draws the activation and, when the
// primitive fires, runs the transform with fresh random draws.
//
// Every primitive returns a new straight-alpha RGBA image and leaves its
// input untouched. Pixels that have no source become fully transparent.
//
// # Pipelines
//
// Characters go through a CharAugmenter: each character crop runs the
// geometric pipeline in random order, then the custom pipeline in declared
// order, and the crops are merged back into a word. Whole words go through a
// TextAugmenter: the layout pipeline in declared order, then the painter and
// the texture mixer.
//
// Randomness always comes from the *rand.Rand passed in, so a seeded run is
// reproducible.
package augment
