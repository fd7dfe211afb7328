// Package cloud defines the data model shared by every stage of a tag cloud:
// raw input records, laid-out tags, rows and the layout configuration.
//
// # Records and Tags
//
// A [Record] is what an upstream collaborator hands over: a label, an
// optional link and tooltip, optional colors, and a weight that has not been
// validated yet. Weights arrive from JSON, YAML or markup attributes, so
// [Record.Weight] is untyped until [ParseWeight] turns it into a finite
// float64 or reports an INVALID_WEIGHT error.
//
// A [Tag] is a record after layout: its weight is parsed, its font size is
// fixed, and its rendered box has been measured exactly once.
//
// # Rows
//
// A [Row] is an ordered sequence of tags plus a [VAlign] marker. Rows are
// listed in top-to-bottom render order; [Row.Seq] keeps the order in which
// the packer produced them, which is what the center bias is defined on.
//
// # Configuration
//
// [Config] holds the container width and the font size range. It is
// immutable for the duration of a layout pass; [DefaultConfig] returns the
// classic 500px / 10–40px cloud.
package cloud
