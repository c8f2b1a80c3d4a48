package ports

import "shiptrack/internal/core/domain/services"

// DocumentRenderer turns a Document into a downloadable file.
type DocumentRenderer interface {
	Render(doc services.Document) ([]byte, error)
	ContentType() string
}
