package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// PrintJSON outputs the value as formatted JSON.
func PrintJSON(v any) {
	if err := writeJSON(os.Stdout, v); err != nil {
		fmt.Fprintf(os.Stderr, "JSON encoding error: %v\n", err)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
