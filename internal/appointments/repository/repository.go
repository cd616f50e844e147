package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"salesdesk_backend/internal/appointments/domain"
	"salesdesk_backend/internal/shared/profile"
	"salesdesk_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores appointments in Postgres. Customer, provider and
// selections are JSONB columns.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// New creates a new appointments repository.
func New(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const selectColumns = `id, type, status, scheduled_for, customer, provider, selected_package,
	selected_addons, pain_points, temperature, score, max_score, created_at, updated_at`

// Create inserts a new appointment.
func (r *PostgresRepository) Create(ctx context.Context, appt *domain.Appointment) error {
	customer, err := json.Marshal(appt.Customer)
	if err != nil {
		return fmt.Errorf("encode customer: %w", err)
	}
	provider, err := json.Marshal(appt.Provider)
	if err != nil {
		return fmt.Errorf("encode provider: %w", err)
	}
	var selected []byte
	if appt.SelectedPackage != nil {
		if selected, err = json.Marshal(appt.SelectedPackage); err != nil {
			return fmt.Errorf("encode package: %w", err)
		}
	}
	addons, err := json.Marshal(appt.SelectedAddons)
	if err != nil {
		return fmt.Errorf("encode addons: %w", err)
	}

	query := `
		INSERT INTO appointments (
			id, type, status, scheduled_for, customer, provider, selected_package,
			selected_addons, pain_points, temperature, score, max_score, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)`

	_, err = r.pool.Exec(ctx, query,
		appt.ID, string(appt.Type), string(appt.Status), appt.ScheduledFor, customer, provider, selected,
		addons, appt.PainPoints, appt.Temperature, appt.Score, appt.MaxScore, appt.CreatedAt, appt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

// GetByID retrieves an appointment by its ID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM appointments WHERE id = $1`, id)
	appt, err := scanAppointment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(appointmentNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return appt, nil
}

// List retrieves appointments with optional filtering, latest first.
func (r *PostgresRepository) List(ctx context.Context, params ListParams) (*ListResult, error) {
	baseQuery := `FROM appointments WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	addFilter(&baseQuery, &args, &argIndex, params.Type != nil, " AND type = $%d", derefString(params.Type))
	addFilter(&baseQuery, &args, &argIndex, params.Status != nil, " AND status = $%d", derefString(params.Status))
	addFilter(&baseQuery, &args, &argIndex, params.From != nil, " AND scheduled_for >= $%d", derefTime(params.From))
	addFilter(&baseQuery, &args, &argIndex, params.To != nil, " AND scheduled_for <= $%d", derefTime(params.To))

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count appointments: %w", err)
	}

	offset := (params.Page - 1) * params.PageSize
	selectQuery := fmt.Sprintf(`SELECT %s %s ORDER BY scheduled_for DESC, created_at DESC LIMIT $%d OFFSET $%d`,
		selectColumns, baseQuery, argIndex, argIndex+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer rows.Close()

	items := []domain.Appointment{}
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		items = append(items, *appt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate appointments: %w", err)
	}

	return &ListResult{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages(total, params.PageSize),
	}, nil
}

// UpdateStatus sets the status and bumps updated_at.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status, updatedAt time.Time) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE appointments SET status = $2, updated_at = $3 WHERE id = $1`,
		id, string(status), updatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(appointmentNotFoundMsg)
	}
	return nil
}

func scanAppointment(row pgx.Row) (*domain.Appointment, error) {
	var (
		appt                                   domain.Appointment
		typ, status                            string
		customer, provider, selected, addonsJS []byte
	)
	if err := row.Scan(
		&appt.ID, &typ, &status, &appt.ScheduledFor, &customer, &provider, &selected,
		&addonsJS, &appt.PainPoints, &appt.Temperature, &appt.Score, &appt.MaxScore, &appt.CreatedAt, &appt.UpdatedAt,
	); err != nil {
		return nil, err
	}
	appt.Type = profile.AppointmentType(typ)
	appt.Status = domain.Status(status)

	if err := json.Unmarshal(customer, &appt.Customer); err != nil {
		return nil, fmt.Errorf("decode customer: %w", err)
	}
	if err := json.Unmarshal(provider, &appt.Provider); err != nil {
		return nil, fmt.Errorf("decode provider: %w", err)
	}
	if len(selected) > 0 {
		var pkg domain.PackageSnapshot
		if err := json.Unmarshal(selected, &pkg); err != nil {
			return nil, fmt.Errorf("decode package: %w", err)
		}
		appt.SelectedPackage = &pkg
	}
	if err := json.Unmarshal(addonsJS, &appt.SelectedAddons); err != nil {
		return nil, fmt.Errorf("decode addons: %w", err)
	}
	return &appt, nil
}

func addFilter(baseQuery *string, args *[]interface{}, argIndex *int, apply bool, clause string, value interface{}) {
	if !apply {
		return
	}
	*baseQuery += fmt.Sprintf(clause, *argIndex)
	*args = append(*args, value)
	*argIndex++
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func derefTime(value *time.Time) time.Time {
	if value == nil {
		return time.Time{}
	}
	return *value
}

var _ Repository = (*PostgresRepository)(nil)
