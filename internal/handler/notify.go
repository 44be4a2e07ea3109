package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bloodlink/bloodlink-tn/internal/middleware"
	"github.com/bloodlink/bloodlink-tn/internal/queue"
	"github.com/bloodlink/bloodlink-tn/internal/repository"
	queue_publisher "github.com/bloodlink/bloodlink-tn/internal/service"
)

// NotifyHandler triggers the external notification collaborator. Unlike
// request creation, these endpoints exist only to notify, so a publish
// failure is surfaced to the caller.
type NotifyHandler struct {
	Requests *repository.RequestRepo
	Donors   *repository.DonorRepo
	Users    *repository.UserRepo
}

func NewNotifyHandler(r *repository.RequestRepo, d *repository.DonorRepo, u *repository.UserRepo) *NotifyHandler {
	return &NotifyHandler{Requests: r, Donors: d, Users: u}
}

type notifyRequestReq struct {
	RequestID uint64 `json:"request_id"`
}

type contactDonorReq struct {
	DonorID uint64 `json:"donor_id"`
	Message string `json:"message"`
}

// RequestDonors re-alerts every donor matching an existing request.
func (h *NotifyHandler) RequestDonors(c echo.Context) error {
	var req notifyRequestReq
	if err := c.Bind(&req); err != nil || req.RequestID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "request_id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	r, err := h.Requests.GetByID(ctx, req.RequestID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Request not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Request query failed"})
	}

	matches, err := h.Donors.FindMatching(ctx, r.BloodGroup, r.District)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Donor query failed"})
	}
	if len(matches) == 0 {
		return c.JSON(http.StatusOK, echo.Map{"message": "No matching donors found", "notifications_sent": 0})
	}

	events := alertEvents(r, matches)
	if err := queue_publisher.PublishDonorAlerts(ctx, events); err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"message": "Notification dispatch failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":            "Notifications queued for matching donors",
		"notifications_sent": len(events),
		"total_donors":       len(matches),
	})
}

// ContactDonor reaches out to one donor. With a message an SMS event is
// queued carrying the caller's phone number; without one the donor's
// contact information is simply returned.
func (h *NotifyHandler) ContactDonor(c echo.Context) error {
	var req contactDonorReq
	if err := c.Bind(&req); err != nil || req.DonorID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "donor_id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d, err := h.Donors.GetByID(ctx, req.DonorID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Donor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Donor query failed"})
	}
	if !d.Active(time.Now().UTC()) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Donor is no longer available"})
	}

	note := strings.TrimSpace(req.Message)
	if note == "" {
		return c.JSON(http.StatusOK, echo.Map{"message": "Donor contact information", "donor": toDonorResp(d)})
	}

	caller, err := h.Users.GetByID(ctx, middleware.UserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Load user failed"})
	}
	ev := queue.DonorAlertEvent{
		DonorID:    d.ID,
		DonorName:  d.Name,
		Phone:      d.Phone,
		BloodGroup: d.BloodGroup,
		District:   d.District,
		Message:    queue.ContactMessage(note, caller.Phone),
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if err := queue_publisher.PublishDonorAlerts(ctx, []queue.DonorAlertEvent{ev}); err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"message": "Notification dispatch failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":  "Contact request sent",
		"donor":    toDonorResp(d),
		"sms_sent": true,
	})
}
