package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/vekodev/catalog-admin-golang/internal/models"
)

type MySQLBrandStore struct {
	DB *sqlx.DB
}

func NewMySQLBrandStore(db *sqlx.DB) *MySQLBrandStore {
	return &MySQLBrandStore{DB: db}
}

type brandRow struct {
	ID        string    `db:"id"`
	NameKa    string    `db:"name_ka"`
	NameEn    string    `db:"name_en"`
	Slug      string    `db:"slug"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r brandRow) toModel() models.Brand {
	return models.Brand{
		ID:        r.ID,
		Name:      models.LocalizedText{Ka: r.NameKa, En: r.NameEn},
		Slug:      r.Slug,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (s *MySQLBrandStore) List(ctx context.Context) ([]models.Brand, error) {
	var rows []brandRow
	query := `SELECT id, name_ka, name_en, slug, created_at, updated_at FROM brands ORDER BY name_en ASC`
	if err := s.DB.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}
	brands := make([]models.Brand, 0, len(rows))
	for _, r := range rows {
		brands = append(brands, r.toModel())
	}
	return brands, nil
}

func (s *MySQLBrandStore) Get(ctx context.Context, id string) (*models.Brand, error) {
	var row brandRow
	query := `SELECT id, name_ka, name_en, slug, created_at, updated_at FROM brands WHERE id = ?`
	if err := s.DB.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	b := row.toModel()
	return &b, nil
}

func (s *MySQLBrandStore) Create(ctx context.Context, b *models.Brand) error {
	query := `
		INSERT INTO brands (id, name_ka, name_en, slug, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := s.DB.ExecContext(ctx, query,
		b.ID, b.Name.Ka, b.Name.En, b.Slug, b.CreatedAt, b.UpdatedAt)
	return err
}

func (s *MySQLBrandStore) Update(ctx context.Context, id string, patch BrandPatch) (*models.Brand, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		current.Name = *patch.Name
	}
	if patch.Slug != nil {
		current.Slug = *patch.Slug
	}
	current.UpdatedAt = time.Now().UTC()

	query := `UPDATE brands SET name_ka = ?, name_en = ?, slug = ?, updated_at = ? WHERE id = ?`
	if _, err := s.DB.ExecContext(ctx, query,
		current.Name.Ka, current.Name.En, current.Slug, current.UpdatedAt, id); err != nil {
		return nil, err
	}
	return current, nil
}

func (s *MySQLBrandStore) Delete(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM brands WHERE id = ?`, id)
	if err != nil {
		return err
	}
	// Link rows in category_brands / child_category_brands go away via
	// ON DELETE CASCADE (see scripts/schema.sql).
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
