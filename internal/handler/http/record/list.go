package record

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"scrollfeed/internal/common/pagination"
	"scrollfeed/internal/domain/entity"
	"scrollfeed/internal/handler/http/requestid"
	"scrollfeed/internal/handler/http/respond"
	"scrollfeed/internal/observability/logging"
	recordUC "scrollfeed/internal/usecase/record"
)

type ListHandler struct {
	Svc           *recordUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP serves one page of the corpus.
// @Summary      List records (paginated)
// @Tags         records
// @Produce      json
// @Param        page     query  int   false  "1-based page number" default(1) minimum(1)
// @Param        limit    query  int   false  "records per page" default(20) minimum(1) maximum(100)
// @Param        refresh  query  bool  false  "materialize new records at the head before serving page 1"
// @Success      200 {object} PageResponse
// @Failure      400 {object} respond.ErrorBody "Invalid query parameters"
// @Failure      504 {object} respond.ErrorBody "Deadline exceeded"
// @Failure      500 {object} respond.ErrorBody "Server error"
// @Router       /records [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()
	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.logger())

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		logger.Warn("Invalid pagination parameters", "error", err.Error())
		pagination.RecordError("validation")
		pagination.RecordRequest(http.StatusBadRequest, params.Page)
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	pagination.LogRequest(logger, reqID, params)

	result, err := h.Svc.FetchPage(ctx, entity.PageRequest{
		Page:    params.Page,
		Limit:   params.Limit,
		Refresh: params.Refresh,
	})
	if err != nil {
		code, errType := classify(err)
		pagination.RecordError(errType)
		pagination.RecordRequest(code, params.Page)
		if errors.Is(err, context.Canceled) {
			// client went away
			logger.Debug("Page request cancelled", "page", params.Page)
			return
		}
		pagination.LogError(logger, reqID, params, err, errType)
		respond.SafeError(w, code, err)
		return
	}

	duration := time.Since(startTime)
	pagination.RecordRequest(http.StatusOK, params.Page)
	pagination.RecordDuration("handler", duration.Seconds())
	pagination.UpdateTotalCount(result.TotalCount)
	pagination.LogResponse(logger, reqID, params, len(result.Records), duration, http.StatusOK)

	respond.JSON(w, http.StatusOK, PageResponse{
		Records:     toDTOs(result.Records),
		HasMore:     result.HasMore,
		CurrentPage: params.Page,
		TotalCount:  result.TotalCount,
	})
}

func (h ListHandler) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.Default()
	}
	return h.Logger
}

// classify maps a service error to a status code and a metrics label.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, entity.ErrInvalidPage), errors.Is(err, entity.ErrInvalidInput),
		errors.Is(err, recordUC.ErrInvalidCount):
		return http.StatusBadRequest, "validation"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	case errors.Is(err, context.Canceled):
		return 499, "cancelled"
	default:
		return http.StatusInternalServerError, "store"
	}
}
