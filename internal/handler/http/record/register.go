package record

import (
	"log/slog"
	"net/http"

	"scrollfeed/internal/common/pagination"
	recordUC "scrollfeed/internal/usecase/record"
)

// Register registers the records endpoints with mux.
func Register(mux *http.ServeMux, svc *recordUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET /records", ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("POST /records/insert", InsertHandler{Svc: svc, Logger: logger})
}
