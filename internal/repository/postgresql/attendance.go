package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/staffdeck/attendance-backend-go/internal/domain/attendance"
	"github.com/staffdeck/attendance-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID,
		&att.UserID,
		&att.Date,
		&att.ClockIn,
		&att.ClockOut,
		&att.TotalHours,
		&att.Status,
		&att.CreatedAt,
		&att.UpdatedAt,
		&att.UserName,
	)
	return att, err
}

const attendanceColumns = `a.id, a.user_id, a.date, a.clock_in, a.clock_out, a.total_hours,
			   a.status, a.created_at, a.updated_at, u.name`

// Create implements attendance.AttendanceRepository. The unique index
// on (user_id, date) makes a concurrent duplicate surface as a pgx
// unique violation, which the service resolves by re-reading.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (id, user_id, date, clock_in, clock_out, total_hours, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAttendance.ID,
		newAttendance.UserID,
		newAttendance.Date,
		newAttendance.ClockIn,
		newAttendance.ClockOut,
		newAttendance.TotalHours,
		newAttendance.Status,
	).Scan(&newAttendance.CreatedAt, &newAttendance.UpdatedAt)

	if err != nil {
		return attendance.Attendance{}, err
	}

	return newAttendance, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		JOIN users u ON u.id = a.user_id
		WHERE a.user_id = $1
		  AND a.date = $2
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // no record for this day
		}
		return nil, fmt.Errorf("failed to get attendance by user and date: %w", err)
	}

	return &att, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET clock_in = $1, clock_out = $2, total_hours = $3, status = $4, updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query, att.ClockIn, att.ClockOut, att.TotalHours, att.Status, att.ID)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// ListByUserAndDateRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUserAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		JOIN users u ON u.id = a.user_id
		WHERE a.user_id = $1
		  AND a.date >= $2
		  AND a.date <= $3
		ORDER BY a.date
	`

	rows, err := q.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by date range: %w", err)
	}
	defer rows.Close()

	return collectAttendances(rows)
}

// ListByMonth implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByMonth(ctx context.Context, month string, userID *string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		JOIN users u ON u.id = a.user_id
		WHERE to_char(a.date, 'YYYY-MM') = $1
		  AND ($2::text IS NULL OR a.user_id::text = $2)
		ORDER BY a.created_at
	`

	rows, err := q.Query(ctx, query, month, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by month: %w", err)
	}
	defer rows.Close()

	return collectAttendances(rows)
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	where := `WHERE ($1::text IS NULL OR a.user_id::text = $1)
		  AND ($2::date IS NULL OR a.date >= $2)
		  AND ($3::date IS NULL OR a.date <= $3)`

	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM attendance_records a ` + where
	err := q.QueryRow(ctx, countQuery, filter.UserID, filter.StartDate, filter.EndDate).Scan(&totalCount)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		JOIN users u ON u.id = a.user_id
		` + where + `
		ORDER BY a.date DESC, a.created_at DESC
		LIMIT $4 OFFSET $5
	`

	rows, err := q.Query(ctx, query, filter.UserID, filter.StartDate, filter.EndDate, filter.Limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	attendances, err := collectAttendances(rows)
	if err != nil {
		return nil, 0, err
	}

	return attendances, totalCount, nil
}

// CountByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) CountByDate(ctx context.Context, date time.Time) (int64, error) {
	q := GetQuerier(ctx, a.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM attendance_records WHERE date = $1`, date).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count attendance by date: %w", err)
	}
	return count, nil
}

func collectAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	var attendances []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	return attendances, rows.Err()
}
