package utils

import (
	"net/url"
	"strconv"
)

const (
	DefaultLimite = 10
	MaxLimite     = 100
)

// ParsePage lê "page" e "limite" (ou "limit") da query; valores inválidos caem no default.
func ParsePage(q url.Values) (page, limite int64) {
	page, limite = 1, DefaultLimite
	if p := q.Get("page"); p != "" {
		if v, err := strconv.ParseInt(p, 10, 64); err == nil && v > 0 {
			page = v
		}
	}
	l := q.Get("limite")
	if l == "" {
		l = q.Get("limit")
	}
	if l != "" {
		if v, err := strconv.ParseInt(l, 10, 64); err == nil && v > 0 {
			limite = min(v, MaxLimite)
		}
	}
	return page, limite
}
