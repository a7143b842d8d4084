// Package utils contains small helper functions used across the project.
//
// These are usually generic helpers that don't belong to a specific domain.
package utils

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteJSON writes v to w as indented JSON followed by a newline.
//
// If the value contains unsupported types (channels, funcs, circular refs)
// nothing is written and the marshal error is returned.
func WriteJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling JSON: %w", err)
	}

	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
