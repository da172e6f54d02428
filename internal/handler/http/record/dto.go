// Package record provides the HTTP handlers of the records API.
package record

import (
	"time"

	"scrollfeed/internal/domain/entity"
)

// DTO is the JSON form of a record.
type DTO struct {
	ID          int64     `json:"id" example:"1"`
	Title       string    `json:"title" example:"Item 1"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt" example:"2026-01-02T15:04:05Z"`
}

// PageResponse is the body of GET /records.
type PageResponse struct {
	Records     []DTO `json:"records"`
	HasMore     bool  `json:"hasMore"`
	CurrentPage int   `json:"currentPage"`
	TotalCount  int   `json:"totalCount"`
}

// InsertResponse is the body of POST /records/insert.
type InsertResponse struct {
	Inserted   int `json:"inserted"`
	TotalCount int `json:"totalCount"`
}

func toDTOs(records []entity.Record) []DTO {
	dtos := make([]DTO, 0, len(records))
	for _, r := range records {
		dtos = append(dtos, DTO{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			CreatedAt:   r.CreatedAt,
		})
	}
	return dtos
}
