// Package sbd splits text into sentences with ordered heuristic rules.
//
// # Quick Start
//
//	seg, err := sbd.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer seg.Close()
//
//	sentences, err := seg.Segment("Hi Mr. Kim. Let's meet at 3 P.M.")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// ["Hi Mr. Kim. ", "Let's meet at 3 P.M."]
//
// Concatenating the segments always reproduces the input byte for byte:
// whitespace after a sentence belongs to that sentence.
//
// # Pipeline
//
// Each call normalizes a working copy of the text, protects periods that
// belong to abbreviations, numbers and list markers, replaces quoted and
// bracketed spans with single tokens, then runs the boundary rules in a fixed
// order. Segments are cut at the confirmed boundaries and restored from the
// original text.
//
// # Dictionaries
//
// Abbreviations come from lexicon.English unless WithDictionary supplies
// another dictionary. WithAbbreviations adds tokens on top.
//
// # Thread Safety
//
// Segmenter is safe for concurrent use. Its rules are compiled once in New
// and shared by all callers. WithPoolSize bounds how many texts are
// segmented at once, which is also the fan-out of SegmentBatch.
package sbd
