package models

// Page segue o formato de resultado paginado consumido pelo front
// (docs, totalDocs, page, ...).
type Page[T any] struct {
	Docs        []T    `json:"docs"`
	TotalDocs   int64  `json:"totalDocs"`
	Limit       int64  `json:"limit"`
	Page        int64  `json:"page"`
	TotalPages  int64  `json:"totalPages"`
	HasPrevPage bool   `json:"hasPrevPage"`
	HasNextPage bool   `json:"hasNextPage"`
	PrevPage    *int64 `json:"prevPage"`
	NextPage    *int64 `json:"nextPage"`
}

func NewPage[T any](docs []T, total, page, limit int64) Page[T] {
	if docs == nil {
		docs = []T{}
	}
	if limit <= 0 {
		limit = 1
	}
	pages := (total + limit - 1) / limit
	if pages == 0 {
		pages = 1
	}
	p := Page[T]{
		Docs:       docs,
		TotalDocs:  total,
		Limit:      limit,
		Page:       page,
		TotalPages: pages,
	}
	if page > 1 {
		prev := page - 1
		p.HasPrevPage, p.PrevPage = true, &prev
	}
	if page < pages {
		next := page + 1
		p.HasNextPage, p.NextPage = true, &next
	}
	return p
}
