// Package warp implements the geometric resampling used by the augmentation
// stages: projective warps through a 3x3 homography, affine warps, and dense
// remapping through per-pixel coordinate maps.
//
// # Conventions
//
// Matrices are row-major and act on column vectors (x, y, 1). A warp is
// always described in the forward direction (source to destination); the
// functions invert it internally and sample the source for every destination
// pixel.
//
// Sampling operates on straight-alpha channels independently, like a
// four-channel array would be treated, and pixels that map outside the source
// read as fully transparent unless a different Border is requested.
package warp
