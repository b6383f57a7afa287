package domain

// Page is one slice of a tier's item list.
type Page struct {
	Items      []CatalogItem
	TotalPages int
}

// Paginate slices items into the requested 1-based page.
//
// TotalPages is at least 1 even for an empty list so the UI can render a
// single disabled page. An out-of-range page yields an empty slice rather
// than an error; clamping back into range is the caller's job on its next
// pass, typically via TierPages.Clamp.
func Paginate(items []CatalogItem, pageNumber, pageSize int) Page {
	if pageSize < 1 {
		return Page{TotalPages: 1}
	}

	totalPages := (len(items) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	start := (pageNumber - 1) * pageSize
	if pageNumber < 1 || start >= len(items) {
		return Page{TotalPages: totalPages}
	}

	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	return Page{Items: items[start:end], TotalPages: totalPages}
}

// TierPages tracks the current page per tier independently, so switching tabs
// preserves each tab's own position.
type TierPages struct {
	pages map[Tier]int
}

// NewTierPages creates an empty page-state map; every tier starts on page 1.
func NewTierPages() *TierPages {
	return &TierPages{pages: make(map[Tier]int)}
}

// Get returns the current page for a tier, defaulting to 1.
func (tp *TierPages) Get(t Tier) int {
	if p, ok := tp.pages[t]; ok && p >= 1 {
		return p
	}
	return 1
}

// Set records the current page for a tier. Values below 1 reset to 1.
func (tp *TierPages) Set(t Tier, page int) {
	if page < 1 {
		page = 1
	}
	tp.pages[t] = page
}

// Clamp pulls a tier's page back into [1, totalPages] after the underlying
// list shrank, and returns the clamped value.
func (tp *TierPages) Clamp(t Tier, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	p := tp.Get(t)
	if p > totalPages {
		p = totalPages
		tp.pages[t] = p
	}
	return p
}
