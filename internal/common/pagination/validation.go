package pagination

import (
	"fmt"

	"scrollfeed/internal/domain/entity"
)

// Validate checks p against the configured limits.
// Every returned error wraps entity.ErrInvalidPage.
//
// Rules:
//   - page is at least 1
//   - limit is between 1 and config.MaxLimit
//   - page*limit fits in an int, so the page's corpus range is addressable
func (p Params) Validate(config Config) error {
	if p.Page < 1 {
		return fmt.Errorf("invalid query parameter: page must be a positive integer: %w", entity.ErrInvalidPage)
	}
	if p.Limit < 1 || p.Limit > config.MaxLimit {
		return fmt.Errorf("invalid query parameter: limit must be between 1 and %d: %w", config.MaxLimit, entity.ErrInvalidPage)
	}
	if err := entity.ValidatePage(p.Page, p.Limit); err != nil {
		return fmt.Errorf("invalid query parameter: page %d is out of range for limit %d: %w", p.Page, p.Limit, err)
	}
	return nil
}
