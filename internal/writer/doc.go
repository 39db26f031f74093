// Package writer persists generated samples.
//
// Every sample is named after its label:
//
//	{text}-*-{index}-*-{HH-MM-SS}
//
// so a dataset reader can recover the label from the name alone (see
// ParseName). Two sinks are available: DirWriter writes one image file per
// sample into a directory, and RedisWriter stores the encoded images under
// their names in Redis, writing every text's samples in one transaction.
//
// Images are stored as JPEG or PNG. JPEG has no alpha channel, so samples are
// flattened onto black before encoding.
package writer
