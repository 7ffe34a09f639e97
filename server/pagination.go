package server

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/Daskott/contactbook/server/models"
)

// pageFromQuery reads the 'page' query value, anything that isn't a
// positive integer means the first page
func pageFromQuery(query url.Values) int {
	page, err := strconv.Atoi(query.Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// newPageLinksAndMeta describes 'paging' for a list served at 'r'. Every
// link keeps the request's other query values.
func newPageLinksAndMeta(r *http.Request, paging *models.Paging) (*PageLinks, *PageMeta) {
	path := requestBaseURL(r) + r.URL.Path

	pageURL := func(page int64) string {
		query := r.URL.Query()
		query.Set("page", strconv.FormatInt(page, 10))
		return path + "?" + query.Encode()
	}

	links := &PageLinks{
		First: pageURL(1),
		Last:  pageURL(paging.Pages),
	}

	if paging.Page > 1 {
		prev := pageURL(paging.Page - 1)
		links.Prev = &prev
	}

	if paging.Page < paging.Pages {
		next := pageURL(paging.Page + 1)
		links.Next = &next
	}

	meta := &PageMeta{
		CurrentPage: paging.Page,
		From:        paging.From,
		LastPage:    paging.Pages,
		Path:        path,
		PerPage:     paging.PerPage,
		To:          paging.To,
		Total:       paging.Total,
	}

	return links, meta
}

func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	if forwardedProto := r.Header.Get("X-Forwarded-Proto"); forwardedProto != "" {
		scheme = forwardedProto
	}

	return scheme + "://" + r.Host
}
