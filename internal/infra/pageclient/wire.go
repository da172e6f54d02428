package pageclient

import (
	"time"

	"scrollfeed/internal/domain/entity"
)

type recordJSON struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type pageResponse struct {
	Records     []recordJSON `json:"records"`
	HasMore     bool         `json:"hasMore"`
	CurrentPage int          `json:"currentPage"`
	TotalCount  int          `json:"totalCount"`
}

type insertResponse struct {
	Inserted   int `json:"inserted"`
	TotalCount int `json:"totalCount"`
}

func (p pageResponse) result() entity.FetchResult {
	records := make([]entity.Record, len(p.Records))
	for i, r := range p.Records {
		records[i] = entity.Record{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			CreatedAt:   r.CreatedAt,
		}
	}
	return entity.FetchResult{Records: records, HasMore: p.HasMore, TotalCount: p.TotalCount}
}
