package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/staffdeck/attendance-backend-go/internal/domain/leave"
	"github.com/staffdeck/attendance-backend-go/internal/pkg/database"
)

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}

const leaveRequestColumns = `l.id, l.user_id, l.type, l.start_date, l.end_date, l.reason,
			   l.status, l.applied_date, l.approved_by, l.approved_date,
			   l.created_at, l.updated_at, u.name`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var req leave.LeaveRequest
	err := row.Scan(
		&req.ID,
		&req.UserID,
		&req.Type,
		&req.StartDate,
		&req.EndDate,
		&req.Reason,
		&req.Status,
		&req.AppliedDate,
		&req.ApprovedBy,
		&req.ApprovedDate,
		&req.CreatedAt,
		&req.UpdatedAt,
		&req.UserName,
	)
	return req, err
}

// Create implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) Create(ctx context.Context, newRequest leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_requests (id, user_id, type, start_date, end_date, reason, status, applied_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newRequest.ID,
		newRequest.UserID,
		newRequest.Type,
		newRequest.StartDate,
		newRequest.EndDate,
		newRequest.Reason,
		newRequest.Status,
		newRequest.AppliedDate,
	).Scan(&newRequest.CreatedAt, &newRequest.UpdatedAt)

	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return newRequest, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests l
		JOIN users u ON u.id = l.user_id
		WHERE l.id = $1
	`

	req, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return req, nil
}

// Decide implements leave.LeaveRequestRepository. The WHERE clause
// guards against double decisions: once a request left pending, no
// further update matches and the caller gets
// ErrLeaveRequestAlreadyProcessed.
func (l *leaveRequestRepository) Decide(ctx context.Context, id string, decision leave.LeaveRequest) error {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_requests
		SET status = $1, approved_by = $2, approved_date = $3, updated_at = NOW()
		WHERE id = $4 AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query, decision.Status, decision.ApprovedBy, decision.ApprovedDate, id)
	if err != nil {
		return fmt.Errorf("failed to decide leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM leave_requests WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check leave request existence: %w", err)
		}
		if !exists {
			return leave.ErrLeaveRequestNotFound
		}
		return leave.ErrLeaveRequestAlreadyProcessed
	}

	return nil
}

// List implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests l
		JOIN users u ON u.id = l.user_id
		WHERE ($1::text IS NULL OR l.user_id::text = $1)
		  AND ($2::text IS NULL OR to_char(l.start_date, 'YYYY-MM') = $2 OR to_char(l.end_date, 'YYYY-MM') = $2)
		  AND ($3::text IS NULL OR l.status = $3)
		ORDER BY l.applied_date, l.created_at
	`

	rows, err := q.Query(ctx, query, filter.UserID, filter.Month, filter.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		req, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

// CountByStatus implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) CountByStatus(ctx context.Context, status leave.LeaveStatus) (int64, error) {
	q := GetQuerier(ctx, l.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leave_requests WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count leave requests by status: %w", err)
	}
	return count, nil
}
