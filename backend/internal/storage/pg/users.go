package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/yamdb-dev/yamdb/shared/domain"
	internal_errors "github.com/yamdb-dev/yamdb/shared/errors"
	shared_pg "github.com/yamdb-dev/yamdb/shared/storage/pg"
)

const userColumns = "id, username, email, first_name, last_name, bio, role, state_hash"

// =========================================================================
// Public Methods (satisfy the service.UserStorage interface)
// =========================================================================

// SaveUser inserts a user. Username or email collisions come back as Conflict,
// which is what the signup flow retries on.
func (s *Storage) SaveUser(ctx context.Context, data domain.UserCreationData, stateHash string) (domain.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return s.saveUser(ctx, s.db, data, stateHash)
}

func (s *Storage) UserById(ctx context.Context, id domain.UserId) (domain.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return s.userBy(ctx, s.db, "id", id)
}

func (s *Storage) UserByUsername(ctx context.Context, username domain.Username) (domain.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return s.userBy(ctx, s.db, "username", username)
}

func (s *Storage) UserByEmail(ctx context.Context, email domain.Email) (domain.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return s.userBy(ctx, s.db, "email", strings.ToLower(email))
}

// Actor resolves the current role of a token holder
func (s *Storage) Actor(ctx context.Context, id domain.UserId) (domain.Actor, error) {
	user, err := s.UserById(ctx, id)
	if err != nil {
		return domain.Actor{}, err
	}
	return user.Actor(), nil
}

// Users lists users ordered by username. search matches a username substring.
func (s *Storage) Users(ctx context.Context, search string, p domain.Pagination) ([]domain.User, int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	pattern := "%" + escapeLike(search) + "%"
	var count int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE username ILIKE $1", pattern).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username ILIKE $1 ORDER BY username LIMIT $2 OFFSET $3",
		pattern, p.Size, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.Id, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.Bio, &u.Role, &u.StateHash); err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}
	return users, count, nil
}

// UpdateUser writes the full profile of user and stores a fresh state hash.
func (s *Storage) UpdateUser(ctx context.Context, user domain.User) (domain.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return s.updateUser(ctx, s.db, user)
}

// DeleteUser removes a user; ON DELETE CASCADE takes their reviews and comments.
func (s *Storage) DeleteUser(ctx context.Context, id domain.UserId) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return requireAffected(result, "User not found")
}

// =========================================================================
// Internal Methods (Core Database Logic)
// =========================================================================

func (s *Storage) saveUser(ctx context.Context, q shared_pg.Querier, data domain.UserCreationData, stateHash string) (domain.User, error) {
	user := domain.User{
		Username:  data.Username,
		Email:     strings.ToLower(data.Email),
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Bio:       data.Bio,
		Role:      data.Role,
		StateHash: stateHash,
	}
	if user.Role == "" {
		user.Role = domain.RoleUser
	}

	err := q.QueryRowContext(ctx, `
		INSERT INTO users(username, email, first_name, last_name, bio, role, state_hash)
		VALUES($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		user.Username, user.Email, user.FirstName, user.LastName, user.Bio, user.Role, user.StateHash,
	).Scan(&user.Id)
	if err != nil {
		if shared_pg.IsUniqueViolation(err) {
			return domain.User{}, userConflict(err)
		}
		return domain.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	return user, nil
}

// column is always one of the constants used above, never user input
func (s *Storage) userBy(ctx context.Context, q shared_pg.Querier, column string, value any) (domain.User, error) {
	var u domain.User
	err := q.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE "+column+" = $1", value).
		Scan(&u.Id, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.Bio, &u.Role, &u.StateHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NotFound("User not found")
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return u, nil
}

func (s *Storage) updateUser(ctx context.Context, q shared_pg.Querier, user domain.User) (domain.User, error) {
	user.Email = strings.ToLower(user.Email)
	result, err := q.ExecContext(ctx, `
		UPDATE users SET username = $1, email = $2, first_name = $3, last_name = $4, bio = $5, role = $6, state_hash = $7
		WHERE id = $8`,
		user.Username, user.Email, user.FirstName, user.LastName, user.Bio, user.Role, user.StateHash, user.Id)
	if err != nil {
		if shared_pg.IsUniqueViolation(err) {
			return domain.User{}, userConflict(err)
		}
		return domain.User{}, fmt.Errorf("failed to update user: %w", err)
	}
	if err := requireAffected(result, "User not found"); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func userConflict(err error) error {
	switch shared_pg.ConstraintName(err) {
	case "users_email_key":
		return internal_errors.Conflict("A user with that email already exists")
	default:
		return internal_errors.Conflict("A user with that username already exists")
	}
}

func requireAffected(result sql.Result, notFoundMsg string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return internal_errors.NotFound(notFoundMsg)
	}
	return nil
}
