package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bytedance/sonic"
)

var cliJSON = sonic.Config{
	EscapeHTML:       false,
	SortMapKeys:      true,
	CompactMarshaler: true,
}.Froze()

// readJSON decodes the file at path into dst; "-" reads stdin.
func readJSON(in io.Reader, path string, dst any) error {
	var (
		raw []byte
		err error
	)
	switch strings.TrimSpace(path) {
	case "":
		return fmt.Errorf("input path is required")
	case "-":
		raw, err = io.ReadAll(in)
	default:
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := cliJSON.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := cliJSON.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
