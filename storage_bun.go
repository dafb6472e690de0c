package session

import (
	"context"
	"database/sql"
	"errors"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

type credentialRow struct {
	bun.BaseModel `bun:"table:credentials,alias:cred"`

	Key       string     `bun:"key,pk" json:"key"`
	Value     []byte     `bun:"value,notnull" json:"value"`
	UpdatedAt *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// BunStorage persists the credential record in a relational store through
// bun, typically a local sqlite file next to the client's other state.
type BunStorage struct {
	db *bun.DB
}

func NewBunStorage(db *bun.DB) *BunStorage {
	return &BunStorage{db: db}
}

// Init creates the credentials table when it does not exist yet.
func (s *BunStorage) Init(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().
		Model((*credentialRow)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "could not create credentials table")
	}
	return nil
}

func (s *BunStorage) Read(ctx context.Context, key string) ([]byte, error) {
	row := new(credentialRow)
	err := s.db.NewSelect().
		Model(row).
		Where("cred.key = ?", key).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "could not read credential record")
	}
	return row.Value, nil
}

func (s *BunStorage) Write(ctx context.Context, key string, value []byte) error {
	now := time.Now()
	row := &credentialRow{Key: key, Value: value, UpdatedAt: &now}
	_, err := s.db.NewInsert().
		Model(row).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "could not write credential record")
	}
	return nil
}

func (s *BunStorage) Delete(ctx context.Context, key string) error {
	_, err := s.db.NewDelete().
		Model((*credentialRow)(nil)).
		Where("cred.key = ?", key).
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "could not delete credential record")
	}
	return nil
}
