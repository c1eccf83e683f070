package utils

// Page is one entry of a pagination bar. Number 0 marks an ellipsis.
type Page struct {
	Number int
	URL    string
	IsLink bool
}

// Pagination is the view model of the pagination bar.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	HasPrev     bool
	HasNext     bool
	PrevURL     string
	NextURL     string
	Pages       []Page
}

// GeneratePagination generates a list of pages for a pagination component.
// It shows a limited number of pages around the current page, plus the
// first and last pages. It returns nil when there is only one page.
func GeneratePagination(currentPage, totalPages int, link func(page int) string) *Pagination {
	if totalPages <= 1 {
		return nil
	}

	const window = 2 // pages shown on each side of the current page

	var pages []Page
	add := func(n int) {
		pages = append(pages, Page{Number: n, URL: link(n), IsLink: n != currentPage})
	}

	add(1)
	if currentPage > window+2 {
		pages = append(pages, Page{})
	}
	for i := max(2, currentPage-window); i <= min(totalPages-1, currentPage+window); i++ {
		add(i)
	}
	if currentPage < totalPages-(window+1) {
		pages = append(pages, Page{})
	}
	add(totalPages)

	p := &Pagination{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		HasPrev:     currentPage > 1,
		HasNext:     currentPage < totalPages,
		Pages:       pages,
	}
	if p.HasPrev {
		p.PrevURL = link(currentPage - 1)
	}
	if p.HasNext {
		p.NextURL = link(currentPage + 1)
	}
	return p
}

// PageBounds clamps page into [1, totalPages] and returns the slice bounds
// of that page over total items.
func PageBounds(page, pageSize, total int) (clamped, start, end, totalPages int) {
	totalPages = (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	clamped = min(max(page, 1), totalPages)
	start = min((clamped-1)*pageSize, total)
	end = min(start+pageSize, total)
	return clamped, start, end, totalPages
}
