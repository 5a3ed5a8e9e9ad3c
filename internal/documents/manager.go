package documents

import (
	"fmt"
	"slices"
	"sync"
)

// Manager tracks the documents open in the editor and which of them the user
// touched most recently
type Manager struct {
	documents map[string]*Document
	// recent holds URIs, most recently touched last
	recent []string
	mu     sync.RWMutex
}

// NewManager creates a new document manager
func NewManager() *Manager {
	return &Manager{
		documents: make(map[string]*Document),
	}
}

// Get retrieves a document by URI
func (m *Manager) Get(uri string) *Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.documents[uri]
}

// GetAll returns all managed documents
func (m *Manager) GetAll() []*Document {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := make([]*Document, 0, len(m.documents))
	for _, doc := range m.documents {
		docs = append(docs, doc)
	}
	return docs
}

// Active returns the most recently touched open document, or nil
func (m *Manager) Active() *Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.recent) == 0 {
		return nil
	}
	return m.documents[m.recent[len(m.recent)-1]]
}

// DidOpen handles the textDocument/didOpen notification
func (m *Manager) DidOpen(uri, languageID string, version int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.documents[uri] = NewDocument(uri, languageID, version)
	m.touchLocked(uri)
	return nil
}

// DidChange handles the textDocument/didChange notification.
// Content is not tracked; a change only marks the document as active.
func (m *Manager) DidChange(uri string, version int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, exists := m.documents[uri]
	if !exists {
		return fmt.Errorf("document not found: %s", uri)
	}
	if err := doc.SetVersion(version); err != nil {
		return err
	}
	m.touchLocked(uri)
	return nil
}

// DidClose handles the textDocument/didClose notification
func (m *Manager) DidClose(uri string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.documents[uri]; !exists {
		return fmt.Errorf("document not found: %s", uri)
	}

	delete(m.documents, uri)
	m.recent = slices.DeleteFunc(m.recent, func(u string) bool { return u == uri })
	return nil
}

// Touch marks an open document as the active one. Unknown URIs are ignored.
func (m *Manager) Touch(uri string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.documents[uri]; exists {
		m.touchLocked(uri)
	}
}

func (m *Manager) touchLocked(uri string) {
	m.recent = slices.DeleteFunc(m.recent, func(u string) bool { return u == uri })
	m.recent = append(m.recent, uri)
}
