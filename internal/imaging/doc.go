// Package imaging provides the pixel-level helpers shared by the synthesis engine.
//
// Every image that flows through textsynth is an *image.NRGBA whose bounds start
// at (0,0). Straight (non-premultiplied) alpha is used throughout so that the
// color channels of a glyph survive independently of its transparency, which
// the texture and background stages rely on when they restore or consume the
// alpha channel.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Operations
//
//   - Loading and caching corpus images (ImageCache)
//   - Cloning, resizing (nearest-neighbor and cubic) and random cropping
//   - Luma conversion and hex color parsing
//   - Separable Gaussian smoothing of scalar fields
//   - Char box overlays for layout debugging
//   - Pixel difference statistics
//   - Flattening onto a solid color and JPEG/PNG encoding
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. All other functions are
// stateless and never mutate their inputs unless documented otherwise.
package imaging
