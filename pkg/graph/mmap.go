package graph

import (
	"os"
	"syscall"
)

// mappedFile holds the read-only memory-mapped region backing a
// CompactGraph. The graph owns this region for its entire lifetime; typed
// views are zero-copy slices into it.
type mappedFile struct {
	data []byte
}

func mapFileReadOnly(path string) (*mappedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := int(info.Size())
	if size == 0 {
		return &mappedFile{data: nil}, nil
	}

	data, err := syscall.Mmap(int(f.Fd()), 0, size, syscall.PROT_READ, syscall.MAP_PRIVATE)
	if err != nil {
		return nil, err
	}
	return &mappedFile{data: data}, nil
}

func (m *mappedFile) Close() error {
	if m.data == nil {
		return nil
	}
	return syscall.Munmap(m.data)
}
