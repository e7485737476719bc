package commands

import (
	"context"
	"log/slog"
	"sync"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// BulkItemResult is the per-order outcome of a batch transition.
// Reason is empty on success.
type BulkItemResult struct {
	OrderID kernel.UUID
	Changed bool
	Reason  string
}

// BulkAdvanceStatusResult summarizes a batch transition. Successful counts
// both applied transitions and idempotent no-ops.
type BulkAdvanceStatusResult struct {
	Successful int
	Failed     int
	Results    []BulkItemResult
}

// BulkAdvanceStatusCommandHandler fans a batch transition out over the
// single-order handler. Every order runs in its own transaction, so one
// bad order cannot roll back its siblings. Results keep the input order.
type BulkAdvanceStatusCommandHandler struct {
	single *AdvanceOrderStatusCommandHandler
	logger *slog.Logger
}

// NewBulkAdvanceStatusCommandHandler creates the handler on top of the
// single-order transition handler.
func NewBulkAdvanceStatusCommandHandler(
	single *AdvanceOrderStatusCommandHandler,
	logger *slog.Logger,
) (*BulkAdvanceStatusCommandHandler, error) {
	if single == nil {
		return nil, errs.NewValueIsRequiredError("single")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BulkAdvanceStatusCommandHandler{
		single: single,
		logger: logger.With("handler", "bulk-advance-status"),
	}, nil
}

// Handle executes the batch. The returned error covers command validation
// only; per-order failures are reported in the result.
func (h *BulkAdvanceStatusCommandHandler) Handle(ctx context.Context, cmd BulkAdvanceStatusCommand) (BulkAdvanceStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return BulkAdvanceStatusResult{}, err
	}

	ids := cmd.OrderIDs()
	results := make([]BulkItemResult, len(ids))

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id kernel.UUID) {
			defer wg.Done()
			results[i] = h.advanceOne(ctx, cmd, id)
		}(i, id)
	}
	wg.Wait()

	summary := BulkAdvanceStatusResult{Results: results}
	for _, r := range results {
		if r.Reason == "" {
			summary.Successful++
		} else {
			summary.Failed++
		}
	}

	h.logger.Info("bulk transition finished",
		"target", cmd.Target().String(),
		"successful", summary.Successful,
		"failed", summary.Failed)

	return summary, nil
}

func (h *BulkAdvanceStatusCommandHandler) advanceOne(ctx context.Context, cmd BulkAdvanceStatusCommand, id kernel.UUID) BulkItemResult {
	single, err := NewAdvanceOrderStatusCommand(
		id, cmd.Target(), cmd.Location(), cmd.HandledBy(), cmd.Remarks())
	if err != nil {
		return BulkItemResult{OrderID: id, Reason: err.Error()}
	}

	result, err := h.single.Handle(ctx, single)
	if err != nil {
		return BulkItemResult{OrderID: id, Reason: err.Error()}
	}
	return BulkItemResult{OrderID: id, Changed: result.Changed}
}
