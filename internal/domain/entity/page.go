package entity

// PageRequest asks a provider for one page of the corpus.
type PageRequest struct {
	Page  int // 1-based
	Limit int // records per page
	// Refresh asks the provider to materialize new records at the corpus head before
	// slicing. Providers honor it only for Page == 1.
	Refresh bool
}

// FetchResult is one page of the corpus.
// HasMore is true iff the page's end index is strictly less than TotalCount at fetch time.
type FetchResult struct {
	Records    []Record
	HasMore    bool
	TotalCount int
}
