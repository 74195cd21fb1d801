package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/vekodev/catalog-admin-golang/internal/models"
)

type MySQLCategoryStore struct {
	DB *sqlx.DB
}

func NewMySQLCategoryStore(db *sqlx.DB) *MySQLCategoryStore {
	return &MySQLCategoryStore{DB: db}
}

type categoryRow struct {
	ID        string    `db:"id"`
	NameKa    string    `db:"name_ka"`
	NameEn    string    `db:"name_en"`
	Slug      string    `db:"slug"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r categoryRow) toModel(brandIDs []string) models.Category {
	if brandIDs == nil {
		brandIDs = []string{}
	}
	return models.Category{
		ID:        r.ID,
		Name:      models.LocalizedText{Ka: r.NameKa, En: r.NameEn},
		Slug:      r.Slug,
		BrandIDs:  brandIDs,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type categoryLinkRow struct {
	CategoryID string `db:"category_id"`
	BrandID    string `db:"brand_id"`
}

func (s *MySQLCategoryStore) List(ctx context.Context, f CategoryFilter) ([]models.Category, error) {
	var rows []categoryRow
	var err error
	if f.BrandID != "" {
		query := `
			SELECT c.id, c.name_ka, c.name_en, c.slug, c.created_at, c.updated_at
			FROM categories c
			JOIN category_brands cb ON cb.category_id = c.id AND cb.brand_id = ?
			ORDER BY c.name_en ASC`
		err = s.DB.SelectContext(ctx, &rows, query, f.BrandID)
	} else {
		query := `SELECT id, name_ka, name_en, slug, created_at, updated_at FROM categories ORDER BY name_en ASC`
		err = s.DB.SelectContext(ctx, &rows, query)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []models.Category{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	links, err := s.loadLinks(ctx, ids)
	if err != nil {
		return nil, err
	}

	cats := make([]models.Category, 0, len(rows))
	for _, r := range rows {
		cats = append(cats, r.toModel(links[r.ID]))
	}
	return cats, nil
}

func (s *MySQLCategoryStore) loadLinks(ctx context.Context, categoryIDs []string) (map[string][]string, error) {
	query, args, err := sqlx.In(
		`SELECT category_id, brand_id FROM category_brands WHERE category_id IN (?) ORDER BY brand_id ASC`,
		categoryIDs)
	if err != nil {
		return nil, err
	}
	var linkRows []categoryLinkRow
	if err := s.DB.SelectContext(ctx, &linkRows, s.DB.Rebind(query), args...); err != nil {
		return nil, err
	}
	links := make(map[string][]string, len(categoryIDs))
	for _, l := range linkRows {
		links[l.CategoryID] = append(links[l.CategoryID], l.BrandID)
	}
	return links, nil
}

func (s *MySQLCategoryStore) Get(ctx context.Context, id string) (*models.Category, error) {
	var row categoryRow
	query := `SELECT id, name_ka, name_en, slug, created_at, updated_at FROM categories WHERE id = ?`
	if err := s.DB.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	links, err := s.loadLinks(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	c := row.toModel(links[id])
	return &c, nil
}

func (s *MySQLCategoryStore) Create(ctx context.Context, c *models.Category) error {
	c.BrandIDs = dedupe(c.BrandIDs)
	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO categories (id, name_ka, name_en, slug, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, query,
		c.ID, c.Name.Ka, c.Name.En, c.Slug, c.CreatedAt, c.UpdatedAt); err != nil {
		return err
	}
	if err := insertCategoryLinks(ctx, tx, c.ID, c.BrandIDs); err != nil {
		return err
	}
	return tx.Commit()
}

func insertCategoryLinks(ctx context.Context, tx *sqlx.Tx, categoryID string, brandIDs []string) error {
	for _, brandID := range brandIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO category_brands (category_id, brand_id) VALUES (?, ?)`,
			categoryID, brandID); err != nil {
			return err
		}
	}
	return nil
}

func (s *MySQLCategoryStore) Update(ctx context.Context, id string, patch CategoryPatch) (*models.Category, error) {
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
	if patch.BrandIDs != nil {
		current.BrandIDs = dedupe(*patch.BrandIDs)
	}
	current.UpdatedAt = time.Now().UTC()

	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `UPDATE categories SET name_ka = ?, name_en = ?, slug = ?, updated_at = ? WHERE id = ?`
	if _, err := tx.ExecContext(ctx, query,
		current.Name.Ka, current.Name.En, current.Slug, current.UpdatedAt, id); err != nil {
		return nil, err
	}
	if patch.BrandIDs != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM category_brands WHERE category_id = ?`, id); err != nil {
			return nil, err
		}
		if err := insertCategoryLinks(ctx, tx, id, current.BrandIDs); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return current, nil
}

func (s *MySQLCategoryStore) Delete(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
