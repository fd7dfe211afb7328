// Package io reads and writes tag records.
//
// # Formats
//
// Records can be read from three formats:
//
//   - JSON: an array of records, or an object with a "tags" array
//   - YAML: the same shapes as JSON
//   - HTML: the first <ul> in the document, one record per <li>
//
// A JSON or YAML record looks like this:
//
//	[
//	  {"tag": "go", "weight": 50, "link": "https://go.dev"},
//	  {"tag": "rust", "weight": 40, "tooltip": "fearless", "bgColor": "#92a8cd"}
//	]
//
// In HTML the weight sits in a data-weight attribute on the <li> or on its
// first child element, and the link comes from the first <a>:
//
//	<ul>
//	  <li data-weight="50"><a href="https://go.dev">go</a></li>
//	  <li><span data-weight="40">rust</span></li>
//	</ul>
//
// # Weights
//
// Weights are not converted here. JSON numbers arrive as json.Number, YAML
// numbers as int or float64, and HTML attributes as strings; the layout
// pass validates them all in one scan and reports every bad one. A missing
// weight stays nil so it is reported instead of silently becoming zero.
//
// # Merging
//
// [MergeRecords] combines a base record list with entries read from a
// list, matching them by position. This lets a page keep styling data in
// JSON while the visible list supplies text, links and weights.
//
// # Export
//
// [WriteJSON] and [ExportJSON] write records as a JSON array that every
// reader in this package accepts.
package io
