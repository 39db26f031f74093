// Package synth turns label texts into finished training samples.
//
// A TextImage holds one rendered word and fans it out into samples in three
// nested stages:
//
//	for each of n[0] char-level variants:
//	    augment every character and re-merge the word
//	    for each of n[1] text-level variants:
//	        distort, recolor and texture the whole word
//	        for each of n[2] background variants:
//	            composite onto a compatible background
//
// which yields n[0]*n[1]*n[2] samples per text. Every stage works on its own
// copy of the previous stage's image.
//
// The Generator drives the run: it draws texts and fonts, builds a TextImage
// per text, and hands the samples to a writer. A failing text is logged and
// skipped; the run goes on with the next one.
package synth
