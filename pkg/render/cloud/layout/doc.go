// Package layout turns weighted tag records into center-weighted rows.
//
// # Overview
//
// A layout pass has four stages:
//
//  1. [ScanWeights] validates every record's weight and finds the range
//  2. a stable descending sort fixes each tag's rank
//  3. a [Scaler] maps weights to font sizes, and a [measure.Measurer]
//     measures each styled tag exactly once
//  4. [Pack] groups tags into rows
//
// [Build] runs all four and returns a [Layout].
//
// # Packing
//
// Tags are consumed heaviest first. Within a row, tags are appended to the
// right and prepended to the left in turn; finished rows are appended below
// and prepended above in turn. The first row is therefore the middle of the
// cloud, and the heaviest tag sits at its center:
//
//	row 3 (bottom-aligned)
//	row 1 (bottom-aligned)
//	row 0 (middle)          ← heaviest tags
//	row 2 (top-aligned)
//	row 4 (top-aligned)
//
// A row closes when the next tag would bring it to the usable width. The
// usable width shrinks every time a row closes, so outer rows are narrower.
//
// # Concurrency
//
// A pass keeps all of its state on the stack. Independent passes may run
// concurrently as long as each one has its own measurer.
package layout
