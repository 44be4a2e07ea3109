package repository

import (
	"context"
	"database/sql"

	"github.com/bloodlink/bloodlink-tn/internal/model"
)

// HospitalRepo reads the hospitals reference table. The service never
// mutates hospitals; rows are seeded out of band.
type HospitalRepo struct{ DB *sql.DB }

func NewHospitalRepo(db *sql.DB) *HospitalRepo { return &HospitalRepo{DB: db} }

const hospitalColumns = "id,name,district,address,contact,latitude,longitude"

// ListByDistrict returns all hospitals registered for one district,
// ordered by name.
func (r *HospitalRepo) ListByDistrict(ctx context.Context, district string) ([]model.Hospital, error) {
	return r.list(ctx,
		"SELECT "+hospitalColumns+" FROM hospitals WHERE district=? ORDER BY name", district)
}

// ListAll returns every hospital, ordered by district then name so callers
// can group without re-sorting.
func (r *HospitalRepo) ListAll(ctx context.Context) ([]model.Hospital, error) {
	return r.list(ctx,
		"SELECT "+hospitalColumns+" FROM hospitals ORDER BY district, name")
}

func (r *HospitalRepo) list(ctx context.Context, query string, args ...interface{}) ([]model.Hospital, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	hospitals := make([]model.Hospital, 0)
	for rows.Next() {
		var h model.Hospital
		if err := rows.Scan(&h.ID, &h.Name, &h.District, &h.Address, &h.Contact, &h.Latitude, &h.Longitude); err != nil {
			return nil, err
		}
		hospitals = append(hospitals, h)
	}
	return hospitals, rows.Err()
}
