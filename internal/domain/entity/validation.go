package entity

import "math"

// ValidatePage checks that page and limit describe a real page.
// The page's exclusive end index page*limit must fit in an int.
// The returned error wraps ErrInvalidPage.
func ValidatePage(page, limit int) error {
	if page < 1 {
		return &ValidationError{Field: "page", Message: "must be a positive integer", Err: ErrInvalidPage}
	}
	if limit < 1 {
		return &ValidationError{Field: "limit", Message: "must be a positive integer", Err: ErrInvalidPage}
	}
	if page > math.MaxInt/limit {
		return &ValidationError{Field: "page", Message: "is past the addressable range for this limit", Err: ErrInvalidPage}
	}
	return nil
}
