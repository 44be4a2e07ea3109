// Package handler exposes the HTTP surface of the service. Handlers bind
// request DTOs, validate enumerated fields against the model package,
// delegate to repositories and map sentinel errors onto HTTP status codes.
// Error payloads carry a "message" field shown verbatim to end users.
package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bloodlink/bloodlink-tn/internal/middleware"
	"github.com/bloodlink/bloodlink-tn/internal/model"
	"github.com/bloodlink/bloodlink-tn/internal/repository"
)

// DonorHandler serves the donor registry endpoints.
type DonorHandler struct {
	Donors *repository.DonorRepo
}

func NewDonorHandler(d *repository.DonorRepo) *DonorHandler { return &DonorHandler{Donors: d} }

type donorRegisterReq struct {
	Name       string   `json:"name"`
	BloodGroup string   `json:"blood_group"`
	Phone      string   `json:"phone"`
	District   string   `json:"district"`
	Hospital   string   `json:"hospital"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
}

// donorResp is the wire form of a donor profile.
type donorResp struct {
	ID           uint64    `json:"id"`
	UserID       uint64    `json:"user_id"`
	Name         string    `json:"name"`
	BloodGroup   string    `json:"blood_group"`
	Phone        string    `json:"phone"`
	District     string    `json:"district"`
	Hospital     string    `json:"hospital"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	IsAvailable  bool      `json:"is_available"`
	RegisteredAt time.Time `json:"registered_at"`
	ExpiresAt    time.Time `json:"auto_remove_date"`
}

func toDonorResp(d model.Donor) donorResp {
	return donorResp{
		ID: d.ID, UserID: d.UserID, Name: d.Name, BloodGroup: d.BloodGroup,
		Phone: d.Phone, District: d.District, Hospital: d.Hospital,
		Latitude: d.Latitude, Longitude: d.Longitude, IsAvailable: d.IsAvailable,
		RegisteredAt: d.RegisteredAt, ExpiresAt: d.ExpiresAt,
	}
}

func toDonorResps(donors []model.Donor) []donorResp {
	out := make([]donorResp, 0, len(donors))
	for _, d := range donors {
		out = append(out, toDonorResp(d))
	}
	return out
}

// Register upserts the caller's donor profile and resets its availability
// window. Reachable only with the donor role (route middleware).
func (h *DonorHandler) Register(c echo.Context) error {
	var req donorRegisterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Phone == "" || req.Hospital == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "name, blood_group, phone, district and hospital are required"})
	}
	if !model.ValidBloodGroup(req.BloodGroup) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Unrecognized blood group"})
	}
	if !model.ValidDistrict(req.District) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Unrecognized district"})
	}

	d := model.Donor{
		UserID:     middleware.UserID(c),
		Name:       req.Name,
		BloodGroup: req.BloodGroup,
		Phone:      req.Phone,
		District:   req.District,
		Hospital:   req.Hospital,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	created, err := h.Donors.Upsert(ctx, &d)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Donor registration failed"})
	}
	if created {
		return c.JSON(http.StatusCreated, echo.Map{"message": "Donor registered successfully", "donor": toDonorResp(d)})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Donor profile updated successfully", "donor": toDonorResp(d)})
}

// All lists active donors, optionally filtered by blood_group and district.
// Public endpoint.
func (h *DonorHandler) All(c echo.Context) error {
	f := repository.DonorFilter{
		BloodGroup: c.QueryParam("blood_group"),
		District:   c.QueryParam("district"),
	}
	donors, err := h.Donors.Query(c.Request().Context(), f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Donor query failed"})
	}
	out := toDonorResps(donors)
	return c.JSON(http.StatusOK, echo.Map{"donors": out, "count": len(out)})
}

// Map lists active donors that carry coordinates, for map display.
func (h *DonorHandler) Map(c echo.Context) error {
	f := repository.DonorFilter{
		BloodGroup: c.QueryParam("blood_group"),
		District:   c.QueryParam("district"),
	}
	donors, err := h.Donors.QueryForMap(c.Request().Context(), f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Donor query failed"})
	}
	out := toDonorResps(donors)
	return c.JSON(http.StatusOK, echo.Map{"donors": out, "count": len(out)})
}

// MyProfile returns the caller's donor profile, active or not.
func (h *DonorHandler) MyProfile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d, err := h.Donors.GetByUserID(ctx, middleware.UserID(c))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Donor profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Donor query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"donor": toDonorResp(d)})
}

// Deactivate takes the caller's profile out of every search and matching
// result immediately. Idempotent.
func (h *DonorHandler) Deactivate(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Donors.Deactivate(ctx, middleware.UserID(c)); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Donor profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Deactivation failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Donor profile deactivated successfully"})
}

// GetByID returns a single donor profile. Public endpoint.
func (h *DonorHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid donor id"})
	}
	d, err := h.Donors.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Donor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Donor query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"donor": toDonorResp(d)})
}
