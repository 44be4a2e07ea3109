package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/bloodlink/bloodlink-tn/internal/model"
)

// DonorRepo provides access to the donors table. A donor profile is a
// time-bounded availability record: every read that feeds search, map or
// matching results applies the activity predicate at query time, so expired
// profiles vanish even if the background sweeper has not run yet.
type DonorRepo struct{ DB *sql.DB }

func NewDonorRepo(db *sql.DB) *DonorRepo { return &DonorRepo{DB: db} }

// activeCond is the SQL form of model.Donor.Active.
const activeCond = "is_available=1 AND expires_at > UTC_TIMESTAMP()"

const donorColumns = "id,user_id,name,blood_group,phone,district,hospital,latitude,longitude,is_available,registered_at,expires_at"

// DonorFilter narrows donor queries. Empty fields match everything;
// populated fields are combined with AND.
type DonorFilter struct {
	BloodGroup string
	District   string
}

// Upsert creates or refreshes the caller's donor profile inside a
// transaction and reports whether a new row was created. The row is locked
// with SELECT ... FOR UPDATE so two concurrent registrations for the same
// account serialize instead of leaving two active profiles. Registration
// always restores availability and resets the expiry window; the
// timestamps are written back onto d.
func (r *DonorRepo) Upsert(ctx context.Context, d *model.Donor) (bool, error) {
	now := time.Now().UTC().Truncate(time.Second)
	d.RegisteredAt = now
	d.ExpiresAt = now.Add(model.AvailabilityWindow)
	d.IsAvailable = true

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	created := false
	var existingID uint64
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM donors WHERE user_id=? FOR UPDATE", d.UserID).Scan(&existingID)
	switch {
	case err == sql.ErrNoRows:
		res, insErr := tx.ExecContext(ctx,
			`INSERT INTO donors (user_id, name, blood_group, phone, district, hospital, latitude, longitude, is_available, registered_at, expires_at)
			 VALUES (?,?,?,?,?,?,?,?,1,?,?)`,
			d.UserID, d.Name, d.BloodGroup, d.Phone, d.District, d.Hospital,
			d.Latitude, d.Longitude, d.RegisteredAt, d.ExpiresAt)
		if insErr != nil {
			return false, insErr
		}
		id, idErr := res.LastInsertId()
		if idErr != nil {
			return false, idErr
		}
		d.ID = uint64(id)
		created = true
	case err != nil:
		return false, err
	default:
		if _, updErr := tx.ExecContext(ctx,
			`UPDATE donors SET name=?, blood_group=?, phone=?, district=?, hospital=?, latitude=?, longitude=?,
			 is_available=1, registered_at=?, expires_at=? WHERE id=?`,
			d.Name, d.BloodGroup, d.Phone, d.District, d.Hospital,
			d.Latitude, d.Longitude, d.RegisteredAt, d.ExpiresAt, existingID); updErr != nil {
			return false, updErr
		}
		d.ID = existingID
	}
	return created, tx.Commit()
}

// Deactivate marks the account's profile unavailable. Idempotent: calling
// it on an already inactive profile succeeds. Returns sql.ErrNoRows when
// the account has no profile at all.
func (r *DonorRepo) Deactivate(ctx context.Context, userID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE donors SET is_available=0 WHERE user_id=?", userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	// Zero rows affected: either no profile or already inactive.
	var id uint64
	return r.DB.QueryRowContext(ctx,
		"SELECT id FROM donors WHERE user_id=? LIMIT 1", userID).Scan(&id)
}

// GetByUserID fetches the profile owned by an account, active or not.
func (r *DonorRepo) GetByUserID(ctx context.Context, userID uint64) (model.Donor, error) {
	return r.one(ctx, "SELECT "+donorColumns+" FROM donors WHERE user_id=? LIMIT 1", userID)
}

// GetByID fetches a single profile by id, active or not.
func (r *DonorRepo) GetByID(ctx context.Context, id uint64) (model.Donor, error) {
	return r.one(ctx, "SELECT "+donorColumns+" FROM donors WHERE id=? LIMIT 1", id)
}

// Query returns active profiles matching the filter, ordered by id so
// results are deterministic.
func (r *DonorRepo) Query(ctx context.Context, f DonorFilter) ([]model.Donor, error) {
	q, args := buildDonorQuery(f, false)
	return r.list(ctx, q, args...)
}

// QueryForMap is Query restricted to profiles that carry both coordinates.
func (r *DonorRepo) QueryForMap(ctx context.Context, f DonorFilter) ([]model.Donor, error) {
	q, args := buildDonorQuery(f, true)
	return r.list(ctx, q, args...)
}

// FindMatching returns the active profiles satisfying a request: exact
// blood-group and district equality, ordered by id. This is the matcher the
// request endpoints and the notifier build on; it reads, never writes.
func (r *DonorRepo) FindMatching(ctx context.Context, bloodGroup, district string) ([]model.Donor, error) {
	return r.Query(ctx, DonorFilter{BloodGroup: bloodGroup, District: district})
}

// SweepExpired flips availability off for profiles whose expiry has passed
// and returns how many rows changed. Reads do not depend on this running;
// it exists so long-expired rows stop being scanned by the active filter.
func (r *DonorRepo) SweepExpired(ctx context.Context) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE donors SET is_available=0 WHERE is_available=1 AND expires_at <= UTC_TIMESTAMP()")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CountAll counts every profile ever registered, including expired and
// deactivated ones.
func (r *DonorRepo) CountAll(ctx context.Context) (int64, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM donors")
}

// CountActive counts profiles that would appear in search results now.
func (r *DonorRepo) CountActive(ctx context.Context) (int64, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM donors WHERE "+activeCond)
}

func buildDonorQuery(f DonorFilter, mapOnly bool) (string, []interface{}) {
	q := "SELECT " + donorColumns + " FROM donors WHERE " + activeCond
	var args []interface{}
	if f.BloodGroup != "" {
		q += " AND blood_group=?"
		args = append(args, f.BloodGroup)
	}
	if f.District != "" {
		q += " AND district=?"
		args = append(args, f.District)
	}
	if mapOnly {
		q += " AND latitude IS NOT NULL AND longitude IS NOT NULL"
	}
	q += " ORDER BY id"
	return q, args
}

func (r *DonorRepo) one(ctx context.Context, query string, args ...interface{}) (model.Donor, error) {
	var d model.Donor
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&d.ID, &d.UserID, &d.Name, &d.BloodGroup, &d.Phone, &d.District, &d.Hospital,
		&d.Latitude, &d.Longitude, &d.IsAvailable, &d.RegisteredAt, &d.ExpiresAt)
	return d, err
}

func (r *DonorRepo) list(ctx context.Context, query string, args ...interface{}) ([]model.Donor, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	donors := make([]model.Donor, 0)
	for rows.Next() {
		var d model.Donor
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.Name, &d.BloodGroup, &d.Phone, &d.District, &d.Hospital,
			&d.Latitude, &d.Longitude, &d.IsAvailable, &d.RegisteredAt, &d.ExpiresAt); err != nil {
			return nil, err
		}
		donors = append(donors, d)
	}
	return donors, rows.Err()
}

func (r *DonorRepo) count(ctx context.Context, query string) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, query).Scan(&n)
	return n, err
}
