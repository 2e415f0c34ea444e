// Package query adds keyword search and pagination on top of store.
package query

import (
	"strings"

	"github.com/kjk/sayings/store"
)

const (
	DefaultPageSize = 5

	KeywordAuthor  = "author"
	KeywordContent = "content"
)

// Lister is implemented by *store.Store
type Lister interface {
	// FindAllDescending returns records, highest id first
	FindAllDescending() []store.Record
}

// Page is one page of a filtered listing
type Page struct {
	Items []store.Record
	// 1-based, clamped to [1, TotalPages]
	Page       int
	TotalPages int
}

// Service is stateless, everything is read from Lister on every call
type Service struct {
	lister Lister
}

func New(l Lister) *Service {
	return &Service{lister: l}
}

// List returns a page of DefaultPageSize records
func (s *Service) List(page int, keywordType string, keyword string) Page {
	return s.ListPageSize(page, keywordType, keyword, DefaultPageSize)
}

// ListPageSize filters records by keyword and returns the requested page.
// A blank keyword or an unknown keywordType doesn't filter.
// Out of range page and pageSize < 1 are clamped, never rejected.
func (s *Service) ListPageSize(page int, keywordType string, keyword string, pageSize int) Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	all := Filter(s.lister.FindAllDescending(), keywordType, keyword)
	totalPages := TotalPages(len(all), pageSize)
	page = min(max(page, 1), totalPages)

	from := (page - 1) * pageSize
	to := min(from+pageSize, len(all))
	items := []store.Record{}
	if from < to {
		items = all[from:to]
	}
	return Page{
		Items:      items,
		Page:       page,
		TotalPages: totalPages,
	}
}

// TotalPages is ceil(n / pageSize) but at least 1
func TotalPages(n int, pageSize int) int {
	return max((n+pageSize-1)/pageSize, 1)
}

// Filter keeps records whose author or content contains keyword.
// The order of records is preserved.
func Filter(records []store.Record, keywordType string, keyword string) []store.Record {
	if strings.TrimSpace(keyword) == "" {
		return records
	}
	var field func(r store.Record) string
	switch keywordType {
	case KeywordAuthor:
		field = func(r store.Record) string { return r.Author }
	case KeywordContent:
		field = func(r store.Record) string { return r.Content }
	default:
		return records
	}
	var res []store.Record
	for _, r := range records {
		if strings.Contains(field(r), keyword) {
			res = append(res, r)
		}
	}
	return res
}
