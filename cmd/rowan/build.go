package main

import (
	"fmt"
	"os"

	"github.com/rowan-lang/rowan/pkg/bytecode"
)

// writeArtifact serializes a chunk to an .rnc file.
func writeArtifact(chunk *bytecode.Chunk, path string) error {
	data, err := chunk.Serialize()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write artifact %s: %w", path, err)
	}
	return nil
}
