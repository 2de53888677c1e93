package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophsocial/internal/common"
	"github.com/dmitrijs2005/gophsocial/internal/dbx"
	"github.com/dmitrijs2005/gophsocial/internal/server/models"
	"github.com/google/uuid"
)

// PostgresDB is satisfied by *sql.DB.
type PostgresDB interface {
	dbx.DBTX
	dbx.TxBeginner
}

type PostgresRepository struct {
	db PostgresDB
}

func NewPostgresRepository(db PostgresDB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (id, name, email, avatar, password_hash)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at
		 `

	created := user.Clone()
	created.ID = uuid.NewString()

	err := r.db.QueryRowContext(ctx, query,
		created.ID, created.Name, created.Email, created.Avatar, created.PasswordHash).Scan(&created.Date)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	created.Followers = []models.Follower{}
	return created, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, name, email, avatar, password_hash, created_at FROM users
		 WHERE email = $1
		 `

	return r.load(ctx, r.db, query, email)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}
	return r.getByID(ctx, r.db, id)
}

func (r *PostgresRepository) AddFollower(ctx context.Context, userID, followerID string, at time.Time) (*models.User, error) {
	userID, followerID, err := parseIDs(userID, followerID)
	if err != nil {
		return nil, err
	}
	if userID == followerID {
		return nil, common.ErrSelfFollow
	}

	query :=
		`INSERT INTO followers (user_id, follower_id, created_at)
		 SELECT $1, $2, $3 WHERE EXISTS (SELECT 1 FROM users WHERE id = $1)
		 ON CONFLICT (user_id, follower_id) DO NOTHING
		 `

	return r.mutateFollowers(ctx, userID, common.ErrAlreadyFollowed, query, userID, followerID, at)
}

func (r *PostgresRepository) RemoveFollower(ctx context.Context, userID, followerID string) (*models.User, error) {
	userID, followerID, err := parseIDs(userID, followerID)
	if err != nil {
		return nil, err
	}

	query :=
		`DELETE FROM followers
		 WHERE user_id = $1 AND follower_id = $2
		 `

	return r.mutateFollowers(ctx, userID, common.ErrNotFollowed, query, userID, followerID)
}

// mutateFollowers runs a single conditional statement and reloads the user
// in the same transaction. When no row was touched, it tells a missing user
// apart from the relationship conflict.
func (r *PostgresRepository) mutateFollowers(ctx context.Context, userID string, conflict error, query string, args ...any) (*models.User, error) {
	var user *models.User

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		if n == 0 {
			exists, err := r.exists(ctx, tx, userID)
			if err != nil {
				return err
			}
			if !exists {
				return common.ErrorNotFound
			}
			return conflict
		}

		user, err = r.getByID(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *PostgresRepository) exists(ctx context.Context, db dbx.DBTX, id string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`

	var exists bool
	if err := db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) getByID(ctx context.Context, db dbx.DBTX, id string) (*models.User, error) {
	query :=
		`SELECT id, name, email, avatar, password_hash, created_at FROM users
		 WHERE id = $1
		 `

	return r.load(ctx, db, query, id)
}

func (r *PostgresRepository) load(ctx context.Context, db dbx.DBTX, query string, arg string) (*models.User, error) {
	user := &models.User{}
	err := db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Name, &user.Email, &user.Avatar, &user.PasswordHash, &user.Date)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	followers, err := r.followers(ctx, db, user.ID)
	if err != nil {
		return nil, err
	}
	user.Followers = followers

	return user, nil
}

func (r *PostgresRepository) followers(ctx context.Context, db dbx.DBTX, userID string) ([]models.Follower, error) {
	query :=
		`SELECT follower_id, created_at FROM followers
		 WHERE user_id = $1
		 ORDER BY seq DESC
		 `

	rows, err := db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	followers := []models.Follower{}
	for rows.Next() {
		var f models.Follower
		if err := rows.Scan(&f.User, &f.Date); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		followers = append(followers, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return followers, nil
}

// parseIDs returns the canonical spelling of both uuids. Any accepted
// spelling of the same id compares equal afterwards.
func parseIDs(userID, followerID string) (string, string, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return "", "", common.ErrorNotFound
	}
	fid, err := uuid.Parse(followerID)
	if err != nil {
		return "", "", fmt.Errorf("invalid follower id %q: %w", followerID, common.ErrorNotFound)
	}
	return uid.String(), fid.String(), nil
}

var _ Repository = (*PostgresRepository)(nil)
