package sqlite

import (
	"context"
	"fmt"

	"github.com/armandorgr/Project-manager/internal/auth/domain"
)

type membershipsRepo struct {
	db dbtx
}

func (r *membershipsRepo) GetRole(ctx context.Context, userID, projectID string) (domain.ProjectRole, error) {
	var role string
	err := r.db.QueryRowContext(ctx,
		`SELECT role FROM project_members WHERE user_id = ? AND project_id = ?`,
		userID, projectID,
	).Scan(&role)
	if err != nil {
		return domain.RoleNone, mapNotFound(err)
	}
	return domain.ParseProjectRole(role)
}

func (r *membershipsRepo) UpsertMembership(ctx context.Context, m domain.Membership) error {
	if !m.Role.Valid() {
		return fmt.Errorf("sqlite: %w", domain.ErrUnknownRole)
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO project_members (project_id, user_id, role, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (project_id, user_id) DO UPDATE SET role = excluded.role`,
		m.ProjectID, m.UserID, m.Role.String(), toMillis(m.CreatedAt),
	)
	return err
}

func (r *membershipsRepo) ListMemberships(ctx context.Context, projectID string) ([]domain.Membership, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT project_id, user_id, role, created_at FROM project_members
		 WHERE project_id = ? ORDER BY created_at, user_id`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Membership
	for rows.Next() {
		var (
			m       domain.Membership
			role    string
			created int64
		)
		if err := rows.Scan(&m.ProjectID, &m.UserID, &role, &created); err != nil {
			return nil, err
		}
		if m.Role, err = domain.ParseProjectRole(role); err != nil {
			return nil, err
		}
		m.CreatedAt = fromMillis(created)
		out = append(out, m)
	}
	return out, rows.Err()
}
