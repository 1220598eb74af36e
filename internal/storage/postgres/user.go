package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"conduit/internal/domain"
)

const userColumns = `id, username, email, password_hash, bio, image`

type UserStore struct {
	db *sqlx.DB
}

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts user and sets its ID. Taken usernames or emails are
// reported as *domain.ConflictError.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, bio, image)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Bio,
		user.Image,
	).Scan(&user.ID)
	return translate(err)
}

func (s *UserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (s *UserStore) getOne(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var user domain.User
	if err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &user, query, arg); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// GetByIDs loads the users with the given ids in one query. Missing ids are
// absent from the result.
func (s *UserStore) GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.User, error) {
	result := make(map[int64]domain.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1)`

	var users []domain.User
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &users, query, pq.Array(ids)); err != nil {
		return nil, translate(err)
	}

	for _, u := range users {
		result[u.ID] = u
	}
	return result, nil
}

// Update applies the non-nil fields of upd to user id.
func (s *UserStore) Update(ctx context.Context, id int64, upd domain.UserUpdate) (*domain.User, error) {
	query := `
		UPDATE users SET
			username = COALESCE($1, username),
			email = COALESCE($2, email),
			password_hash = COALESCE($3, password_hash),
			bio = COALESCE($4, bio),
			image = COALESCE($5, image),
			updated_at = now()
		WHERE id = $6
		RETURNING ` + userColumns

	var user domain.User
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &user, query,
		upd.Username,
		upd.Email,
		upd.PasswordHash,
		upd.Bio,
		upd.Image,
		id,
	)
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}
