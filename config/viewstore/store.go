// Package viewstore remembers how a document was last viewed: which panels
// were open, which had focus and the mode in force.
package viewstore

import (
	"errors"
	"time"
)

// ErrNotFound is returned by Load when a document has no saved view.
var ErrNotFound = errors.New("view not found")

// View is the persisted view state of one document.
type View struct {
	// Document is the absolute path of the viewed file.
	Document  string    `json:"document"`
	Open      []int     `json:"open"`
	Focused   int       `json:"focused"`
	Mode      string    `json:"mode,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store is the interface for view state persistence.
type Store interface {
	Save(v View) error
	Load(document string) (View, error)
	Delete(document string) error
	DeleteAll() (int64, error)
	List() ([]View, error)
	Close() error
}
