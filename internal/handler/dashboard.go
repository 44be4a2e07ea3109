package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bloodlink/bloodlink-tn/internal/repository"
)

// DashboardHandler derives summary counts from the donor registry and the
// request ledger. The numbers are recomputed on every call; when the Redis
// response cache fronts this endpoint, the cache TTL is the staleness bound.
type DashboardHandler struct {
	Donors   *repository.DonorRepo
	Requests *repository.RequestRepo
}

func NewDashboardHandler(d *repository.DonorRepo, r *repository.RequestRepo) *DashboardHandler {
	return &DashboardHandler{Donors: d, Requests: r}
}

// Stats returns the dashboard snapshot. total_donors counts every profile
// ever registered (expired ones included); available_donors only those a
// search would return right now.
func (h *DashboardHandler) Stats(c echo.Context) error {
	ctx := c.Request().Context()

	totalDonors, err := h.Donors.CountAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Stats query failed"})
	}
	availableDonors, err := h.Donors.CountActive(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Stats query failed"})
	}
	totalRequests, err := h.Requests.CountAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Stats query failed"})
	}
	fulfilledRequests, err := h.Requests.CountFulfilled(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Stats query failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"total_donors":       totalDonors,
		"available_donors":   availableDonors,
		"total_requests":     totalRequests,
		"fulfilled_requests": fulfilledRequests,
	})
}
