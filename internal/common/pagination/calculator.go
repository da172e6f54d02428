package pagination

// CalculateOffset returns the corpus index of the first record on page.
// Pages are 1-based: page 1 starts at offset 0.
func CalculateOffset(page, limit int) int {
	return (page - 1) * limit
}

// CalculateTotalPages returns the number of pages needed to hold total records.
func CalculateTotalPages(total int64, limit int) int {
	if total == 0 {
		return 1 // Always at least 1 page
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return totalPages
}

// HasMore reports whether records exist past the end of page.
// It is true iff the page's exclusive end index is strictly less than total.
func HasMore(page, limit, total int) bool {
	return CalculateOffset(page, limit)+limit < total
}
