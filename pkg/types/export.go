// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ExportRecord describes one successful export, as kept in the history
// database.
type ExportRecord struct {
	// ID is a UUID assigned when the record is stored.
	ID string `json:"id" yaml:"id"`

	// Path is the absolute path of the produced document.
	Path string `json:"path" yaml:"path"`

	// From and To are the engine formats used for the conversion.
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`

	// Bytes is the size of the produced document.
	Bytes int64 `json:"bytes" yaml:"bytes"`

	// Warnings counts the engine diagnostics carrying a warning marker.
	Warnings int `json:"warnings" yaml:"warnings"`

	// Opened reports whether the OS handler was launched successfully.
	Opened bool `json:"opened" yaml:"opened"`

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
