// Package glyph renders single characters into RGBA bitmaps.
//
// Every glyph of a face is drawn on a canvas whose height is the face's
// ascent plus descent and whose width is the glyph's advance, with the
// baseline at y = ascent. Glyphs rendered from the same face therefore share
// one canvas height and can be laid out side by side without re-alignment;
// the font's side bearings end up as transparent columns inside each canvas.
//
// A Pool enumerates the font files of a directory and hands out faces at a
// random size for the synthesis loop. Tools that render a single text fall
// back to the embedded Go Regular font when no font file is named.
package glyph
