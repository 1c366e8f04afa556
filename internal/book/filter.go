package book

import (
	"strconv"
	"strings"
)

func filter(books []Book, q Query) []Book {
	out := make([]Book, 0, len(books))
	for _, b := range books {
		if q.Genre != "" && !strings.EqualFold(b.Genre, q.Genre) {
			continue
		}
		if q.Author != "" && !strings.EqualFold(b.Author, q.Author) {
			continue
		}
		if q.PublishedYear != "" && strconv.Itoa(b.PublishedYear) != q.PublishedYear {
			continue
		}
		out = append(out, b)
	}
	return out
}

// paginate slices a 1-indexed page. A missing or invalid limit means one page
// holding every match.
func paginate(books []Book, q Query) *Page {
	page := positiveInt(q.Page, 1)
	limit := positiveInt(q.Limit, len(books))

	start, end := len(books), len(books)
	if limit > 0 {
		if p := (page - 1) * limit; p/limit == page-1 && p < len(books) {
			start = p
		}
		if limit < end-start {
			end = start + limit
		}
	}
	slice := books[start:end]

	return &Page{
		Success: true,
		Total:   len(books),
		Page:    page,
		Limit:   limit,
		Count:   len(slice),
		Books:   slice,
	}
}

func positiveInt(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return def
	}
	return n
}
