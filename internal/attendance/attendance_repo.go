package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Row is an attendance record joined with its assignment context, used by
// the list endpoints and payroll exports.
type Row struct {
	ID                   string
	EmployeeAssignmentID string
	EmployeeID           string
	GroupID              string
	DepartmentID         string
	Date                 time.Time
	Attended             bool
	DaySalary            string
	IsSupervisor         bool
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	Update(ctx context.Context, a *Attendance) error
	FindByAssignmentAndDate(ctx context.Context, assignmentID string, date time.Time, isSupervisor bool) (*Attendance, error)
	FindAll(ctx context.Context, filter ListFilter) ([]Row, error)
	FindByDate(ctx context.Context, date time.Time) ([]Row, error)
	LookupDaySalary(ctx context.Context, groupID string) (string, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO attendances (
				id, employee_assignment_id, date, attended, day_salary, is_supervisor, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		`, a.ID, a.EmployeeAssignmentID, a.Date.Format("2006-01-02"), a.Attended, a.DaySalary, a.IsSupervisor)
		return err
	}
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	if r.tx != nil {
		// day_salary is deliberately absent: the snapshot taken at
		// creation never changes.
		_, err := r.tx.ExecContext(ctx, `
			UPDATE attendances
			SET attended = $2, updated_at = NOW()
			WHERE id = $1
		`, a.ID, a.Attended)
		return err
	}
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *repository) FindByAssignmentAndDate(ctx context.Context, assignmentID string, date time.Time, isSupervisor bool) (*Attendance, error) {
	if r.tx != nil {
		var a Attendance
		row := r.tx.QueryRowContext(ctx, `
			SELECT id, employee_assignment_id, date, attended, day_salary::text, is_supervisor
			FROM attendances
			WHERE employee_assignment_id = $1 AND date = $2 AND is_supervisor = $3
		`, assignmentID, date.Format("2006-01-02"), isSupervisor)
		err := row.Scan(&a.ID, &a.EmployeeAssignmentID, &a.Date, &a.Attended, &a.DaySalary, &a.IsSupervisor)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gorm.ErrRecordNotFound
		}
		if err != nil {
			return nil, err
		}
		return &a, nil
	}

	var a Attendance
	err := r.db.WithContext(ctx).
		Where("employee_assignment_id = ?", assignmentID).
		Where("date = ?", date.Format("2006-01-02")).
		Where("is_supervisor = ?", isSupervisor).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

const listSelect = `
SELECT
	a.id::text,
	a.employee_assignment_id::text,
	ea.employee_id::text,
	ea.assignment_group_id::text,
	g.department_id::text,
	a.date,
	a.attended,
	a.day_salary::text,
	a.is_supervisor
FROM attendances a
JOIN employee_assignments ea ON ea.id = a.employee_assignment_id
JOIN assignment_groups g ON g.id = ea.assignment_group_id
`

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Row, error) {
	query := listSelect + " WHERE 1=1"
	args := []any{}

	if filter.DepartmentID != "" {
		args = append(args, filter.DepartmentID)
		query += " AND g.department_id = ?"
	}
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += " AND ea.employee_id = ?"
	}
	if filter.DateFrom != "" {
		args = append(args, filter.DateFrom)
		query += " AND a.date >= ?"
	}
	if filter.DateTo != "" {
		args = append(args, filter.DateTo)
		query += " AND a.date <= ?"
	}
	query += " ORDER BY a.date DESC, a.created_at DESC"

	return r.scanRows(ctx, query, args...)
}

func (r *repository) FindByDate(ctx context.Context, date time.Time) ([]Row, error) {
	query := listSelect + " WHERE a.date = ? ORDER BY a.created_at DESC"
	return r.scanRows(ctx, query, date.Format("2006-01-02"))
}

func (r *repository) scanRows(ctx context.Context, query string, args ...any) ([]Row, error) {
	rows, err := r.db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(
			&row.ID,
			&row.EmployeeAssignmentID,
			&row.EmployeeID,
			&row.GroupID,
			&row.DepartmentID,
			&row.Date,
			&row.Attended,
			&row.DaySalary,
			&row.IsSupervisor,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// LookupDaySalary resolves the department day rate for a group at marking
// time. The value is snapshotted onto the attendance row, so later rate
// changes never rewrite history.
func (r *repository) LookupDaySalary(ctx context.Context, groupID string) (string, error) {
	var daySalary sql.NullString
	err := r.db.WithContext(ctx).Raw(`
		SELECT d.day_salary::text
		FROM assignment_groups g
		JOIN departments d ON d.id = g.department_id
		WHERE g.id = ?
	`, groupID).Scan(&daySalary).Error
	if err != nil {
		return "", err
	}
	if !daySalary.Valid || daySalary.String == "" {
		return "", gorm.ErrRecordNotFound
	}
	return daySalary.String, nil
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
