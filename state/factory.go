package state

import "fmt"

// NewSlices constructs a Slices backend by kind: "file" or "memory".
// For the file backend, provide the data directory in dir; for memory, dir is ignored.
func NewSlices(kind, dir string) (Slices, error) {
	switch kind {
	case "memory", "mem":
		return NewMemorySlices(), nil
	case "file":
		if dir == "" {
			return nil, fmt.Errorf("data directory required for file state")
		}
		return NewFileSlices(dir), nil
	default:
		return nil, fmt.Errorf("unknown state backend: %s", kind)
	}
}
