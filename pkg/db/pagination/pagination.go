// Package pagination implements opaque cursor paging for directory
// listings.
package pagination

import (
	"encoding/base64"
	"encoding/json"
)

type Pagination struct {
	PageToken string `form:"page_token"`
	PageSize  int    `form:"page_size,default=50"`
}

// Limit clamps the requested page size into [1, 250].
func (p Pagination) Limit() int {
	switch {
	case p.PageSize < 1:
		return 50
	case p.PageSize > 250:
		return 250
	default:
		return p.PageSize
	}
}

// Cursor marks the last row of the previous page.
type Cursor struct {
	ID string `json:"id,omitempty"`
}

type PageInfo struct {
	NextPageToken string `json:"next_page_token"`
	HasMore       bool   `json:"has_more"`
}

func EncodeCursor(data Cursor) (string, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

func DecodeCursor(data string) (*Cursor, error) {
	b, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, err
	}
	var cursor Cursor
	if err := json.Unmarshal(b, &cursor); err != nil {
		return nil, err
	}
	return &cursor, nil
}

// BuildPageInfo trims one overfetched row and encodes the next cursor.
// Callers fetch limit+1 rows to learn whether more pages exist.
func BuildPageInfo[T any](rows []T, limit int, cursorOf func(T) Cursor) ([]T, *PageInfo, error) {
	if len(rows) <= limit {
		return rows, &PageInfo{HasMore: false}, nil
	}
	rows = rows[:limit]
	token, err := EncodeCursor(cursorOf(rows[len(rows)-1]))
	if err != nil {
		return nil, nil, err
	}
	return rows, &PageInfo{NextPageToken: token, HasMore: true}, nil
}
