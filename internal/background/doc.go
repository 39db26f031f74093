// Package background finds backgrounds that keep a word image legible and
// composites the word onto them.
//
// # Compatibility Test
//
// A candidate background is compared with the word on a 128x32 thumbnail.
// The word's alpha channel splits the thumbnail into an ink region and a
// background region. Each region's gray levels are quantized into numColor
// bins and the two histograms are compared: when the background region
// shows the same gray levels as the ink, the histograms overlap, their
// distance is small and the candidate is rejected.
//
// # Attempt Budget
//
// Find tries at most corpus.MaxAttempts candidates. Unreadable or undersized
// corpus images use up attempts exactly like rejected candidates. Running out
// of attempts is not an error: the caller keeps the word without background.
package background
