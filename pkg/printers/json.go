package printers

import (
	"encoding/json"
	"io"
)

// JSON writes v indented, followed by a newline.
func JSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
