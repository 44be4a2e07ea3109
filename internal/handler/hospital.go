package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bloodlink/bloodlink-tn/internal/model"
	"github.com/bloodlink/bloodlink-tn/internal/repository"
)

// HospitalHandler serves the static hospital reference data. Districts are
// a compile-time list; hospitals come from the seeded hospitals table.
type HospitalHandler struct {
	Hospitals *repository.HospitalRepo
}

func NewHospitalHandler(r *repository.HospitalRepo) *HospitalHandler {
	return &HospitalHandler{Hospitals: r}
}

type hospitalResp struct {
	ID       uint64  `json:"id"`
	Name     string  `json:"name"`
	District string  `json:"district"`
	Address  *string `json:"address"`
	Contact  *string `json:"contact"`
}

func toHospitalResp(h model.Hospital) hospitalResp {
	return hospitalResp{ID: h.ID, Name: h.Name, District: h.District, Address: h.Address, Contact: h.Contact}
}

// Districts returns the recognized district list.
func (h *HospitalHandler) Districts(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"districts": model.Districts})
}

// ByDistrict lists the hospitals of one district. Unknown districts are
// rejected rather than returning an empty list, so typos surface early.
func (h *HospitalHandler) ByDistrict(c echo.Context) error {
	district := c.Param("district")
	if !model.ValidDistrict(district) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Unrecognized district"})
	}
	hospitals, err := h.Hospitals.ListByDistrict(c.Request().Context(), district)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Hospital query failed"})
	}
	out := make([]hospitalResp, 0, len(hospitals))
	for _, hp := range hospitals {
		out = append(out, toHospitalResp(hp))
	}
	return c.JSON(http.StatusOK, echo.Map{"district": district, "hospitals": out, "count": len(out)})
}

// All returns every hospital grouped by district.
func (h *HospitalHandler) All(c echo.Context) error {
	hospitals, err := h.Hospitals.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Hospital query failed"})
	}
	grouped := make(map[string][]hospitalResp)
	for _, hp := range hospitals {
		grouped[hp.District] = append(grouped[hp.District], toHospitalResp(hp))
	}
	return c.JSON(http.StatusOK, echo.Map{"hospitals": grouped})
}
