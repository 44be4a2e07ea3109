package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/bloodlink/bloodlink-tn/internal/model"
)

// RequestRepo provides access to the requests table and enforces the
// request lifecycle: pending is the only state that can change, and the
// fulfilling transition is a conditional update so concurrent calls cannot
// both succeed.
type RequestRepo struct{ DB *sql.DB }

func NewRequestRepo(db *sql.DB) *RequestRepo { return &RequestRepo{DB: db} }

const requestColumns = "id,user_id,requester_name,blood_group,district,hospital,phone,urgency,status,created_at,fulfilled_at"

// RequestFilter narrows ListAll. Empty fields match everything.
type RequestFilter struct {
	Status     string
	BloodGroup string
	District   string
}

// Create inserts a new request with status pending and writes the
// generated ID and timestamps back onto req.
func (r *RequestRepo) Create(ctx context.Context, req *model.Request) error {
	req.Status = model.StatusPending
	req.CreatedAt = time.Now().UTC().Truncate(time.Second)
	req.FulfilledAt = nil
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO requests (user_id, requester_name, blood_group, district, hospital, phone, urgency, status, created_at)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		req.UserID, req.RequesterName, req.BloodGroup, req.District, req.Hospital,
		req.Phone, req.Urgency, req.Status, req.CreatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	req.ID = uint64(id)
	return nil
}

// Fulfill transitions a pending request to fulfilled. Only the account
// that created the request may fulfill it (ErrForbidden otherwise). The
// status change is a conditional UPDATE keyed on the pending state: of two
// concurrent calls exactly one sees a row change, the other gets
// ErrInvalidState. Returns the request as it stands after the transition.
func (r *RequestRepo) Fulfill(ctx context.Context, id, callerID uint64) (model.Request, error) {
	var ownerID uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id FROM requests WHERE id=? LIMIT 1", id).Scan(&ownerID)
	if err != nil {
		return model.Request{}, err
	}
	if ownerID != callerID {
		return model.Request{}, ErrForbidden
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE requests SET status=?, fulfilled_at=UTC_TIMESTAMP() WHERE id=? AND status=?",
		model.StatusFulfilled, id, model.StatusPending)
	if err != nil {
		return model.Request{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Request{}, ErrInvalidState
	}
	return r.GetByID(ctx, id)
}

// GetByID fetches a single request. Returns sql.ErrNoRows when unknown.
func (r *RequestRepo) GetByID(ctx context.Context, id uint64) (model.Request, error) {
	var req model.Request
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+requestColumns+" FROM requests WHERE id=? LIMIT 1", id).Scan(
		&req.ID, &req.UserID, &req.RequesterName, &req.BloodGroup, &req.District,
		&req.Hospital, &req.Phone, &req.Urgency, &req.Status, &req.CreatedAt, &req.FulfilledAt)
	return req, err
}

// ListByRequester returns an account's requests, newest first.
func (r *RequestRepo) ListByRequester(ctx context.Context, userID uint64) ([]model.Request, error) {
	return r.list(ctx,
		"SELECT "+requestColumns+" FROM requests WHERE user_id=? ORDER BY created_at DESC, id DESC",
		userID)
}

// ListAll returns requests matching the filter, newest first. The
// secondary id ordering keeps rows created in the same second stable.
func (r *RequestRepo) ListAll(ctx context.Context, f RequestFilter) ([]model.Request, error) {
	q := "SELECT " + requestColumns + " FROM requests WHERE 1=1"
	var args []interface{}
	if f.Status != "" {
		q += " AND status=?"
		args = append(args, f.Status)
	}
	if f.BloodGroup != "" {
		q += " AND blood_group=?"
		args = append(args, f.BloodGroup)
	}
	if f.District != "" {
		q += " AND district=?"
		args = append(args, f.District)
	}
	q += " ORDER BY created_at DESC, id DESC"
	return r.list(ctx, q, args...)
}

// CountAll counts every request ever created.
func (r *RequestRepo) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM requests").Scan(&n)
	return n, err
}

// CountFulfilled counts requests with status fulfilled.
func (r *RequestRepo) CountFulfilled(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM requests WHERE status=?", model.StatusFulfilled).Scan(&n)
	return n, err
}

func (r *RequestRepo) list(ctx context.Context, query string, args ...interface{}) ([]model.Request, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	reqs := make([]model.Request, 0)
	for rows.Next() {
		var req model.Request
		if err := rows.Scan(
			&req.ID, &req.UserID, &req.RequesterName, &req.BloodGroup, &req.District,
			&req.Hospital, &req.Phone, &req.Urgency, &req.Status, &req.CreatedAt, &req.FulfilledAt); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}
