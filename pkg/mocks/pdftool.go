package mocks

import (
	"sync"

	"github.com/user/deckshow/pkg/ports"
)

// PDFTool is a mock implementation of ports.PDFTool. It records every call
// for test verification.
type PDFTool struct {
	mu sync.Mutex

	SetMetadataFunc func(path string, meta ports.PDFMeta) error
	MergeFunc       func(inputs []string, output string) error
	AddOutlineFunc  func(path string, outline []ports.OutlineEntry) error

	Metadata map[string]ports.PDFMeta
	Merged   [][]string
	Outlines map[string][]ports.OutlineEntry
}

// NewPDFTool creates a new mock PDFTool.
func NewPDFTool() *PDFTool {
	return &PDFTool{
		Metadata: make(map[string]ports.PDFMeta),
		Outlines: make(map[string][]ports.OutlineEntry),
	}
}

func (m *PDFTool) SetMetadata(path string, meta ports.PDFMeta) error {
	if m.SetMetadataFunc != nil {
		return m.SetMetadataFunc(path, meta)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Metadata[path] = meta
	return nil
}

func (m *PDFTool) Merge(inputs []string, output string) error {
	if m.MergeFunc != nil {
		return m.MergeFunc(inputs, output)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Merged = append(m.Merged, append([]string{output}, inputs...))
	return nil
}

func (m *PDFTool) AddOutline(path string, outline []ports.OutlineEntry) error {
	if m.AddOutlineFunc != nil {
		return m.AddOutlineFunc(path, outline)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Outlines[path] = outline
	return nil
}

var _ ports.PDFTool = (*PDFTool)(nil)

// DeckWriter is a mock implementation of ports.DeckWriter.
type DeckWriter struct {
	mu sync.Mutex

	WriteFunc func(path string, spec ports.DeckSpec) error

	Written map[string]ports.DeckSpec
}

// NewDeckWriter creates a new mock DeckWriter.
func NewDeckWriter() *DeckWriter {
	return &DeckWriter{Written: make(map[string]ports.DeckSpec)}
}

func (m *DeckWriter) Write(path string, spec ports.DeckSpec) error {
	if m.WriteFunc != nil {
		return m.WriteFunc(path, spec)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Written[path] = spec
	return nil
}

var _ ports.DeckWriter = (*DeckWriter)(nil)

// Progress is a mock implementation of ports.Progress.
type Progress struct {
	mu sync.Mutex

	Total    int
	Label    string
	Advanced int
	Finished bool
}

func (m *Progress) Start(total int, label string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Total = total
	m.Label = label
}

func (m *Progress) Advance(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Advanced += n
}

func (m *Progress) Done() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Finished = true
}

var _ ports.Progress = (*Progress)(nil)
