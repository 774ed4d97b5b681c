package catalog

import (
	"strings"

	"mybook/internal/projection"

	"github.com/google/uuid"
)

// PageLimits bounds client paging parameters
type PageLimits struct {
	DefaultPageSize int
	MaxPageSize     int
}

// Page holds the paging, ordering and shaping parameters shared by listings
type Page struct {
	PageNumber int    `json:"pageNumber,omitempty"`
	PageSize   int    `json:"pageSize,omitempty"`
	OrderBy    string `json:"orderBy,omitempty"`
	Fields     string `json:"fields,omitempty"`
}

// normalize applies defaults and clamps to the limits
func (p *Page) normalize(l PageLimits, defaultOrder string) {
	// Set defaults
	if p.PageNumber < 1 {
		p.PageNumber = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = l.DefaultPageSize
	}
	if strings.TrimSpace(p.OrderBy) == "" {
		p.OrderBy = defaultOrder
	}

	// Apply limits
	if p.PageSize > l.MaxPageSize {
		p.PageSize = l.MaxPageSize
	}
}

// AuthorsRequest represents a paginated author list request
type AuthorsRequest struct {
	Page
	FullName    string `json:"fullName,omitempty"`
	SearchQuery string `json:"searchQuery,omitempty"`
}

// Validate validates and normalizes list request parameters
func (req *AuthorsRequest) Validate(l PageLimits) {
	req.normalize(l, "name")
}

// BooksRequest represents a paginated book list request
type BooksRequest struct {
	Page
	PublisherName string     `json:"publisherName,omitempty"`
	AuthorID      *uuid.UUID `json:"authorId,omitempty"`
	SearchQuery   string     `json:"searchQuery,omitempty"`
}

func (req *BooksRequest) Validate(l PageLimits) {
	req.normalize(l, "title")
}

// ListResponse represents one page of shaped resources
type ListResponse struct {
	Value      []projection.ShapedRecord `json:"value"`
	Pagination projection.Metadata       `json:"-"`
	HasNext    bool                      `json:"-"`
	HasPrev    bool                      `json:"-"`
}
