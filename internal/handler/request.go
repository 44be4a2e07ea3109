package handler

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bloodlink/bloodlink-tn/internal/middleware"
	"github.com/bloodlink/bloodlink-tn/internal/model"
	"github.com/bloodlink/bloodlink-tn/internal/queue"
	"github.com/bloodlink/bloodlink-tn/internal/repository"
	queue_publisher "github.com/bloodlink/bloodlink-tn/internal/service"
)

// RequestHandler serves the blood request ledger endpoints. It also owns
// the request-creation side effect: matching donors are looked up and
// alert events published, with publish failure deliberately non-fatal.
type RequestHandler struct {
	Requests *repository.RequestRepo
	Donors   *repository.DonorRepo
}

func NewRequestHandler(r *repository.RequestRepo, d *repository.DonorRepo) *RequestHandler {
	return &RequestHandler{Requests: r, Donors: d}
}

type requestCreateReq struct {
	RequesterName string `json:"requester_name"`
	BloodGroup    string `json:"blood_group"`
	District      string `json:"district"`
	Hospital      string `json:"hospital"`
	Phone         string `json:"phone"`
	Urgency       string `json:"urgency"`
}

type requestResp struct {
	ID            uint64     `json:"id"`
	UserID        uint64     `json:"user_id"`
	RequesterName string     `json:"requester_name"`
	BloodGroup    string     `json:"blood_group"`
	District      string     `json:"district"`
	Hospital      string     `json:"hospital"`
	Phone         string     `json:"phone"`
	Urgency       string     `json:"urgency"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	FulfilledAt   *time.Time `json:"fulfilled_at"`
}

func toRequestResp(r model.Request) requestResp {
	return requestResp{
		ID: r.ID, UserID: r.UserID, RequesterName: r.RequesterName,
		BloodGroup: r.BloodGroup, District: r.District, Hospital: r.Hospital,
		Phone: r.Phone, Urgency: r.Urgency, Status: r.Status,
		CreatedAt: r.CreatedAt, FulfilledAt: r.FulfilledAt,
	}
}

// Create files a blood request, reports the number of matching donors and
// fires alert events at them. The request is created and reported as
// successful even when alert publishing fails; that failure is only logged.
// Reachable only with the requester role (route middleware).
func (h *RequestHandler) Create(c echo.Context) error {
	var req requestCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	req.RequesterName = strings.TrimSpace(req.RequesterName)
	if req.RequesterName == "" || req.Phone == "" || req.Hospital == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "requester_name, blood_group, district, hospital and phone are required"})
	}
	if !model.ValidBloodGroup(req.BloodGroup) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Unrecognized blood group"})
	}
	if !model.ValidDistrict(req.District) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Unrecognized district"})
	}
	if req.Urgency == "" {
		req.Urgency = model.UrgencyNormal
	}
	if !model.ValidUrgency(req.Urgency) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Unrecognized urgency"})
	}

	r := model.Request{
		UserID:        middleware.UserID(c),
		RequesterName: req.RequesterName,
		BloodGroup:    req.BloodGroup,
		District:      req.District,
		Hospital:      req.Hospital,
		Phone:         req.Phone,
		Urgency:       req.Urgency,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Requests.Create(ctx, &r); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Request creation failed"})
	}

	matches, err := h.Donors.FindMatching(ctx, r.BloodGroup, r.District)
	if err != nil {
		// The request exists; report it with an unknown match count.
		log.Printf("request: match lookup failed for request %d: %v", r.ID, err)
		matches = nil
	}
	if err := queue_publisher.PublishDonorAlerts(ctx, alertEvents(r, matches)); err != nil {
		log.Printf("request: alert publish failed for request %d: %v", r.ID, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":               "Blood request created successfully",
		"request":               toRequestResp(r),
		"matching_donors_count": len(matches),
	})
}

// Fulfill transitions a pending request to fulfilled. Owner-only.
func (h *RequestHandler) Fulfill(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	r, err := h.Requests.Fulfill(ctx, id, middleware.UserID(c))
	if err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Request not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"message": "Only the requester can fulfill this request"})
		case repository.ErrInvalidState:
			return c.JSON(http.StatusConflict, echo.Map{"message": "Request is not pending"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Request marked as fulfilled", "request": toRequestResp(r)})
}

// All lists requests with optional status/district/blood_group filters,
// newest first. Public endpoint.
func (h *RequestHandler) All(c echo.Context) error {
	f := repository.RequestFilter{
		Status:     c.QueryParam("status"),
		BloodGroup: c.QueryParam("blood_group"),
		District:   c.QueryParam("district"),
	}
	if f.Status != "" && !model.ValidStatus(f.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Unrecognized status"})
	}
	reqs, err := h.Requests.ListAll(c.Request().Context(), f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Request query failed"})
	}
	out := toRequestResps(reqs)
	return c.JSON(http.StatusOK, echo.Map{"requests": out, "count": len(out)})
}

// MyRequests lists the caller's requests, newest first.
func (h *RequestHandler) MyRequests(c echo.Context) error {
	reqs, err := h.Requests.ListByRequester(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Request query failed"})
	}
	out := toRequestResps(reqs)
	return c.JSON(http.StatusOK, echo.Map{"requests": out, "count": len(out)})
}

// GetByID returns a single request. Public endpoint.
func (h *RequestHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request id"})
	}
	r, err := h.Requests.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Request not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Request query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"request": toRequestResp(r)})
}

// MatchDonors runs the matcher for an existing request: active donors with
// the exact blood group in the same district.
func (h *RequestHandler) MatchDonors(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	r, err := h.Requests.GetByID(ctx, id)
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
	out := toDonorResps(matches)
	return c.JSON(http.StatusOK, echo.Map{
		"request":         toRequestResp(r),
		"matching_donors": out,
		"count":           len(out),
	})
}

func toRequestResps(reqs []model.Request) []requestResp {
	out := make([]requestResp, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, toRequestResp(r))
	}
	return out
}

// alertEvents builds one alert event per matched donor.
func alertEvents(r model.Request, donors []model.Donor) []queue.DonorAlertEvent {
	msg := queue.AlertMessage(r)
	now := time.Now().UTC().Format(time.RFC3339)
	events := make([]queue.DonorAlertEvent, 0, len(donors))
	for _, d := range donors {
		events = append(events, queue.DonorAlertEvent{
			RequestID:  r.ID,
			DonorID:    d.ID,
			DonorName:  d.Name,
			Phone:      d.Phone,
			BloodGroup: d.BloodGroup,
			District:   d.District,
			Message:    msg,
			CreatedAt:  now,
		})
	}
	return events
}
