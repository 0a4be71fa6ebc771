package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	apperrors "github.com/quayside/entraportal/internal/errors"
)

// sessionRow is the bun model backing the sessions table.
type sessionRow struct {
	bun.BaseModel `bun:"table:sessions"`

	ID           string `bun:",pk"`
	UserID       string
	Email        string
	Name         string
	RefreshToken string
	AccessToken  string
	TokenExpiry  time.Time
	ExpiresAt    time.Time
	CreatedAt    time.Time
}

// BunRepo is a sqlite-backed implementation of Repo so sessions survive
// a server restart.
type BunRepo struct {
	db *bun.DB
}

var _ Repo = (*BunRepo)(nil)

// OpenDB opens (and creates, if needed) the sqlite database at path.
func OpenDB(path string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %q: %w", path, err)
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

func NewBunRepo(ctx context.Context, db *bun.DB) (*BunRepo, error) {
	r := &BunRepo{db: db}
	_, err := db.NewCreateTable().
		Model((*sessionRow)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return r, fmt.Errorf("failed to create sessions table: %w", err)
	}
	return r, nil
}

func (r *BunRepo) Upsert(ctx context.Context, session Session) error {
	if session.ID == "" {
		return apperrors.Wrapf(apperrors.ErrInternal, "session ID is required")
	}

	row := new(sessionRow)
	copier.Copy(row, &session)
	_, err := r.db.NewInsert().
		Model(row).
		On("CONFLICT (id) DO UPDATE").
		Set("user_id = EXCLUDED.user_id").
		Set("email = EXCLUDED.email").
		Set("name = EXCLUDED.name").
		Set("refresh_token = EXCLUDED.refresh_token").
		Set("access_token = EXCLUDED.access_token").
		Set("token_expiry = EXCLUDED.token_expiry").
		Set("expires_at = EXCLUDED.expires_at").
		Set("created_at = EXCLUDED.created_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *BunRepo) Get(ctx context.Context, sessionID string) (Session, error) {
	row := new(sessionRow)
	err := r.db.NewSelect().
		Model(row).
		Where("id = ?", sessionID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, apperrors.ErrSessionNotFound
		}
		return Session{}, fmt.Errorf("failed to get session: %w", err)
	}

	session := Session{}
	copier.Copy(&session, row)
	return session, nil
}

func (r *BunRepo) Delete(ctx context.Context, sessionID string) error {
	row := &sessionRow{ID: sessionID}
	_, err := r.db.NewDelete().
		Model(row).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *BunRepo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	res, err := r.db.NewDelete().
		Model((*sessionRow)(nil)).
		Where("expires_at <= ?", now).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	removed, _ := res.RowsAffected()
	return int(removed), nil
}
