package record

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"scrollfeed/internal/common/pagination"
	"scrollfeed/internal/handler/http/respond"
	"scrollfeed/internal/observability/logging"
	recordUC "scrollfeed/internal/usecase/record"
)

// MaxInsertCount caps a single insert request.
const MaxInsertCount = 1000

type InsertHandler struct {
	Svc    *recordUC.Service
	Logger *slog.Logger
}

// ServeHTTP prepends new records to the corpus.
// @Summary      Insert new records at the head of the corpus
// @Tags         records
// @Produce      json
// @Param        count  query  int  false  "number of records to insert" default(20) minimum(0) maximum(1000)
// @Success      200 {object} InsertResponse
// @Failure      400 {object} respond.ErrorBody "Invalid count"
// @Failure      500 {object} respond.ErrorBody "Server error"
// @Router       /records/insert [post]
func (h InsertHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logging.WithRequestID(ctx, logger)

	count, err := h.parseCount(r)
	if err != nil {
		pagination.RecordError("validation")
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	inserted, err := h.Svc.InsertNewRecords(ctx, count)
	if err != nil {
		code, errType := classify(err)
		pagination.RecordError(errType)
		if errors.Is(err, context.Canceled) {
			return
		}
		logger.Error("Failed to insert records", "count", count, "error", err.Error())
		respond.SafeError(w, code, err)
		return
	}

	total, err := h.Svc.Count(ctx)
	if err != nil {
		logger.Error("Failed to count records", "error", err.Error())
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	pagination.UpdateTotalCount(total)

	logger.Info("Inserted records", "inserted", len(inserted), "total_count", total)
	respond.JSON(w, http.StatusOK, InsertResponse{Inserted: len(inserted), TotalCount: total})
}

func (h InsertHandler) parseCount(r *http.Request) (int, error) {
	s := r.URL.Query().Get("count")
	if s == "" {
		if h.Svc.RefreshInsertCount > 0 {
			return h.Svc.RefreshInsertCount, nil
		}
		return recordUC.DefaultRefreshInsertCount, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > MaxInsertCount {
		return 0, fmt.Errorf("invalid query parameter: count must be between 0 and %d", MaxInsertCount)
	}
	return n, nil
}
