package repository

import (
	"context"
	"fmt"

	"aroma-kart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// adminRepository implements the AdminRepository interface using PostgreSQL.
type adminRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewAdminRepository creates a new PostgreSQL-backed admin repository.
func NewAdminRepository(pool *pgxpool.Pool, logger zerolog.Logger) AdminRepository {
	return &adminRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "admin").Logger(),
	}
}

// List retrieves all admins.
func (r *adminRepository) List(ctx context.Context) ([]model.Admin, error) {
	query := `
		SELECT id, name, role, email, fcm_tokens, created_at
		FROM admins
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query admins")
		return nil, fmt.Errorf("failed to query admins: %w", err)
	}
	defer rows.Close()

	var admins []model.Admin
	for rows.Next() {
		var a model.Admin
		if err := rows.Scan(&a.ID, &a.Name, &a.Role, &a.Email, &a.FCMTokens, &a.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan admin row")
			return nil, fmt.Errorf("failed to scan admin: %w", err)
		}
		admins = append(admins, a)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating admin rows")
		return nil, fmt.Errorf("error iterating admins: %w", err)
	}

	return admins, nil
}

// Create inserts a new admin.
func (r *adminRepository) Create(ctx context.Context, admin *model.Admin) error {
	query := `
		INSERT INTO admins (name, role, email)
		VALUES ($1, $2, $3)
		RETURNING id, fcm_tokens, created_at
	`

	err := r.pool.QueryRow(ctx, query, admin.Name, admin.Role, admin.Email).
		Scan(&admin.ID, &admin.FCMTokens, &admin.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("email", admin.Email).Msg("failed to create admin")
		return fmt.Errorf("failed to create admin: %w", err)
	}

	return nil
}

// Delete removes an admin by id.
func (r *adminRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("admin_id", id.String()).Msg("failed to delete admin")
		return fmt.Errorf("failed to delete admin: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.NewDomainError(model.ErrCodeInternalError, "Admin not found")
	}

	return nil
}

// AllFCMTokens collects every registered device token.
func (r *adminRepository) AllFCMTokens(ctx context.Context, role *model.AdminRole) ([]string, error) {
	query := `
		SELECT DISTINCT token
		FROM admins, unnest(fcm_tokens) AS token
		WHERE ($1::text IS NULL OR role = $1) AND token <> ''
	`

	rows, err := r.pool.Query(ctx, query, role)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query FCM tokens")
		return nil, fmt.Errorf("failed to query FCM tokens: %w", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan FCM token row")
			return nil, fmt.Errorf("failed to scan FCM token: %w", err)
		}
		tokens = append(tokens, token)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating FCM token rows")
		return nil, fmt.Errorf("error iterating FCM tokens: %w", err)
	}

	return tokens, nil
}

// AddFCMToken registers a device token for an admin if not already present.
func (r *adminRepository) AddFCMToken(ctx context.Context, adminID uuid.UUID, token string) error {
	query := `
		UPDATE admins
		SET fcm_tokens = array_append(fcm_tokens, $2)
		WHERE id = $1 AND NOT ($2 = ANY(fcm_tokens))
	`

	if _, err := r.pool.Exec(ctx, query, adminID, token); err != nil {
		r.logger.Error().Err(err).Str("admin_id", adminID.String()).Msg("failed to add FCM token")
		return fmt.Errorf("failed to add FCM token: %w", err)
	}

	return nil
}

// RecordActivity appends an audit entry.
func (r *adminRepository) RecordActivity(ctx context.Context, adminName, action string) error {
	query := `INSERT INTO admin_activities (admin_name, action) VALUES ($1, $2)`

	if _, err := r.pool.Exec(ctx, query, adminName, action); err != nil {
		r.logger.Error().Err(err).Str("admin", adminName).Str("action", action).Msg("failed to record activity")
		return fmt.Errorf("failed to record activity: %w", err)
	}

	return nil
}

// ListActivities retrieves audit entries, newest first.
func (r *adminRepository) ListActivities(ctx context.Context, limit, offset int) ([]model.Activity, error) {
	query := `
		SELECT id, admin_name, action, created_at
		FROM admin_activities
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query activities")
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	var activities []model.Activity
	for rows.Next() {
		var a model.Activity
		if err := rows.Scan(&a.ID, &a.AdminName, &a.Action, &a.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan activity row")
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating activity rows")
		return nil, fmt.Errorf("error iterating activities: %w", err)
	}

	return activities, nil
}
