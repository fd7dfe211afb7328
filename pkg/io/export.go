package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/tagcloud/pkg/cloud"
)

// WriteJSON encodes records as an indented JSON array. Weights that parse
// are written as numbers, whatever form they were read in; anything else is
// written unchanged so the problem survives the round trip.
func WriteJSON(recs []cloud.Record, w io.Writer) error {
	out := make([]cloud.Record, len(recs))
	for i, r := range recs {
		if v, err := cloud.ParseWeight(r.Weight); err == nil {
			r.Weight = v
		}
		out[i] = r
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes records to a JSON file at path.
func ExportJSON(recs []cloud.Record, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(recs, f)
}
