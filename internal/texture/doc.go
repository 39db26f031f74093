// Package texture changes the look of a word image without touching its shape.
//
// A Painter recolors every glyph pixel with one random color. A Mixer cuts a
// patch out of a texture corpus and blends it into the word with one of six
// blend modes. Both stages only rewrite RGB: the alpha channel of the word,
// and therefore its ink mask, is returned exactly as it came in.
package texture
