package fiber

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync/atomic"

	"event-counter-service/internal/counter/core/domain"
	"event-counter-service/internal/counter/core/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

type CounterUseCase interface {
	Count(ctx context.Context, identifier string, task domain.ResetTask) error
	Snapshot(ctx context.Context, identifier string) (domain.Counter, error)
	SetResetAtCount(ctx context.Context, value uint64, identifier string) error
	SetCounted(ctx context.Context, value uint64, identifier string) error
	Reset(ctx context.Context, identifier string, performTask bool) error
}

type CounterHandler struct {
	uc     CounterUseCase
	resets prometheus.Counter
}

// NewCounterHandler builds the handler. resets may be nil.
func NewCounterHandler(uc CounterUseCase, resets prometheus.Counter) *CounterHandler {
	return &CounterHandler{uc: uc, resets: resets}
}

// Register mounts the counter routes on r.
func (h *CounterHandler) Register(r fiber.Router) {
	r.Get("/counters/:identifier", h.GetCounter)
	r.Post("/counters/:identifier/count", h.Count)
	r.Put("/counters/:identifier/threshold", h.SetThreshold)
	r.Put("/counters/:identifier/counted", h.SetCounted)
	r.Post("/counters/:identifier/reset", h.Reset)
}

// PrometheusHandler serves the metrics gathered by g.
func PrometheusHandler(g prometheus.Gatherer) fiber.Handler {
	serve := fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return func(c *fiber.Ctx) error {
		serve(c.Context())
		return nil
	}
}

// Count godoc
// @Summary Count one event
// @Description Increments the counter and resets it when the threshold is reached
// @Tags Counters
// @Accept json
// @Produce json
// @Param identifier path string true "Event identifier"
// @Param request body CountRequest false "Count options"
// @Success 200 {object} CountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /counters/{identifier}/count [post]
func (h *CounterHandler) Count(c *fiber.Ctx) error {
	// Params aliases the request buffer; the task outlives the request.
	id := utils.CopyString(c.Params("identifier"))

	var req CountRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: "invalid_json"})
		}
	}

	var reset atomic.Bool
	var task domain.ResetTask
	if req.RegisterTask == nil || *req.RegisterTask {
		task = func() {
			reset.Store(true)
			if h.resets != nil {
				h.resets.Inc()
			}
			log.Printf("counter %s reached its threshold and was reset", id)
		}
	}

	if err := h.uc.Count(c.UserContext(), id, task); err != nil {
		return writeError(c, err)
	}

	counter, err := h.uc.Snapshot(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(CountResponse{
		CounterResponse: toResponse(counter),
		Reset:           reset.Load(),
	})
}

// GetCounter godoc
// @Summary Get a counter
// @Tags Counters
// @Produce json
// @Param identifier path string true "Event identifier"
// @Success 200 {object} CounterResponse
// @Failure 500 {object} ErrorResponse
// @Router /counters/{identifier} [get]
func (h *CounterHandler) GetCounter(c *fiber.Ctx) error {
	counter, err := h.uc.Snapshot(c.UserContext(), c.Params("identifier"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(toResponse(counter))
}

// SetThreshold godoc
// @Summary Set the reset threshold
// @Description Zeroes the counter unless the threshold is unchanged. 0 disables auto reset.
// @Tags Counters
// @Accept json
// @Produce json
// @Param identifier path string true "Event identifier"
// @Param request body ValueRequest true "New threshold"
// @Success 200 {object} CounterResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /counters/{identifier}/threshold [put]
func (h *CounterHandler) SetThreshold(c *fiber.Ctx) error {
	return h.setValue(c, h.uc.SetResetAtCount)
}

// SetCounted godoc
// @Summary Overwrite the current count
// @Description Resets right away if the new count reaches the threshold
// @Tags Counters
// @Accept json
// @Produce json
// @Param identifier path string true "Event identifier"
// @Param request body ValueRequest true "New count"
// @Success 200 {object} CounterResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /counters/{identifier}/counted [put]
func (h *CounterHandler) SetCounted(c *fiber.Ctx) error {
	return h.setValue(c, h.uc.SetCounted)
}

// Reset godoc
// @Summary Reset a counter
// @Tags Counters
// @Accept json
// @Produce json
// @Param identifier path string true "Event identifier"
// @Param request body ResetRequest false "Reset options"
// @Success 200 {object} CounterResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /counters/{identifier}/reset [post]
func (h *CounterHandler) Reset(c *fiber.Ctx) error {
	id := c.Params("identifier")

	var req ResetRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: "invalid_json"})
		}
	}

	if err := h.uc.Reset(c.UserContext(), id, req.PerformTask); err != nil {
		return writeError(c, err)
	}

	return h.respondSnapshot(c, id)
}

func (h *CounterHandler) setValue(c *fiber.Ctx, set func(ctx context.Context, value uint64, identifier string) error) error {
	id := c.Params("identifier")

	var req ValueRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: "invalid_json"})
	}
	if req.Value == nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: "value_required"})
	}

	if err := set(c.UserContext(), *req.Value, id); err != nil {
		return writeError(c, err)
	}

	return h.respondSnapshot(c, id)
}

func (h *CounterHandler) respondSnapshot(c *fiber.Ctx, id string) error {
	counter, err := h.uc.Snapshot(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(toResponse(counter))
}

func writeError(c *fiber.Ctx, err error) error {
	if errors.Is(err, usecase.ErrValueOutOfRange) {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_value",
			Message: err.Error(),
		})
	}

	log.Printf("counter request failed: %v", err)
	return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
		Error: "internal_server_error",
	})
}

func toResponse(c domain.Counter) CounterResponse {
	return CounterResponse{
		Identifier:   c.Identifier,
		Counted:      c.Counted,
		ResetAtCount: c.ResetAtCount,
	}
}
