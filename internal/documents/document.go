package documents

import "fmt"

// HTMLLanguageID is the language identifier editors use for HTML documents
const HTMLLanguageID = "html"

// Document is a text document open in the editor
type Document struct {
	uri        string
	languageID string
	version    int
}

// NewDocument creates a new document
func NewDocument(uri, languageID string, version int) *Document {
	return &Document{
		uri:        uri,
		languageID: languageID,
		version:    version,
	}
}

// URI returns the document's URI
func (d *Document) URI() string {
	return d.uri
}

// LanguageID returns the document's language identifier
func (d *Document) LanguageID() string {
	return d.languageID
}

// Version returns the document's version
func (d *Document) Version() int {
	return d.version
}

// IsHTML reports whether the editor considers the document HTML
func (d *Document) IsHTML() bool {
	return d.languageID == HTMLLanguageID
}

// SetVersion records a newer version of the document.
// Returns an error if the provided version is older than the current one,
// preventing stale updates from being applied.
func (d *Document) SetVersion(version int) error {
	if version < d.version {
		return fmt.Errorf("rejected stale update: document version is %d but update version is %d", d.version, version)
	}
	d.version = version
	return nil
}
