package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/vekodev/catalog-admin-golang/internal/models"
)

type MySQLChildCategoryStore struct {
	DB *sqlx.DB
}

func NewMySQLChildCategoryStore(db *sqlx.DB) *MySQLChildCategoryStore {
	return &MySQLChildCategoryStore{DB: db}
}

type childCategoryRow struct {
	ID         string         `db:"id"`
	NameKa     string         `db:"name_ka"`
	NameEn     string         `db:"name_en"`
	Slug       string         `db:"slug"`
	CategoryID sql.NullString `db:"category_id"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

func (r childCategoryRow) toModel(brandIDs []string) models.ChildCategory {
	if brandIDs == nil {
		brandIDs = []string{}
	}
	c := models.ChildCategory{
		ID:        r.ID,
		Name:      models.LocalizedText{Ka: r.NameKa, En: r.NameEn},
		Slug:      r.Slug,
		BrandIDs:  brandIDs,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.CategoryID.Valid {
		categoryID := r.CategoryID.String
		c.CategoryID = &categoryID
	}
	return c
}

type childCategoryLinkRow struct {
	ChildCategoryID string `db:"child_category_id"`
	BrandID         string `db:"brand_id"`
}

func (s *MySQLChildCategoryStore) List(ctx context.Context, f ChildCategoryFilter) ([]models.ChildCategory, error) {
	query := `
		SELECT cc.id, cc.name_ka, cc.name_en, cc.slug, cc.category_id, cc.created_at, cc.updated_at
		FROM child_categories cc`
	var args []interface{}
	if f.BrandID != "" {
		query += ` JOIN child_category_brands cb ON cb.child_category_id = cc.id AND cb.brand_id = ?`
		args = append(args, f.BrandID)
	}
	if f.CategoryID != "" {
		query += ` WHERE cc.category_id = ?`
		args = append(args, f.CategoryID)
	}
	query += ` ORDER BY cc.name_en ASC`

	var rows []childCategoryRow
	if err := s.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []models.ChildCategory{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	links, err := s.loadLinks(ctx, ids)
	if err != nil {
		return nil, err
	}

	cats := make([]models.ChildCategory, 0, len(rows))
	for _, r := range rows {
		cats = append(cats, r.toModel(links[r.ID]))
	}
	return cats, nil
}

func (s *MySQLChildCategoryStore) loadLinks(ctx context.Context, ids []string) (map[string][]string, error) {
	query, args, err := sqlx.In(
		`SELECT child_category_id, brand_id FROM child_category_brands WHERE child_category_id IN (?) ORDER BY brand_id ASC`,
		ids)
	if err != nil {
		return nil, err
	}
	var linkRows []childCategoryLinkRow
	if err := s.DB.SelectContext(ctx, &linkRows, s.DB.Rebind(query), args...); err != nil {
		return nil, err
	}
	links := make(map[string][]string, len(ids))
	for _, l := range linkRows {
		links[l.ChildCategoryID] = append(links[l.ChildCategoryID], l.BrandID)
	}
	return links, nil
}

func (s *MySQLChildCategoryStore) Get(ctx context.Context, id string) (*models.ChildCategory, error) {
	var row childCategoryRow
	query := `
		SELECT id, name_ka, name_en, slug, category_id, created_at, updated_at
		FROM child_categories WHERE id = ?`
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

func (s *MySQLChildCategoryStore) Create(ctx context.Context, c *models.ChildCategory) error {
	c.BrandIDs = dedupe(c.BrandIDs)
	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO child_categories (id, name_ka, name_en, slug, category_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, query,
		c.ID, c.Name.Ka, c.Name.En, c.Slug, nullableID(c.CategoryID), c.CreatedAt, c.UpdatedAt); err != nil {
		return err
	}
	if err := insertChildCategoryLinks(ctx, tx, c.ID, c.BrandIDs); err != nil {
		return err
	}
	return tx.Commit()
}

func insertChildCategoryLinks(ctx context.Context, tx *sqlx.Tx, childID string, brandIDs []string) error {
	for _, brandID := range brandIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO child_category_brands (child_category_id, brand_id) VALUES (?, ?)`,
			childID, brandID); err != nil {
			return err
		}
	}
	return nil
}

func (s *MySQLChildCategoryStore) Update(ctx context.Context, id string, patch ChildCategoryPatch) (*models.ChildCategory, error) {
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
	if patch.ClearCategoryID {
		current.CategoryID = nil
	} else if patch.CategoryID != nil {
		categoryID := *patch.CategoryID
		current.CategoryID = &categoryID
	}
	current.UpdatedAt = time.Now().UTC()

	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
		UPDATE child_categories
		SET name_ka = ?, name_en = ?, slug = ?, category_id = ?, updated_at = ?
		WHERE id = ?`
	if _, err := tx.ExecContext(ctx, query,
		current.Name.Ka, current.Name.En, current.Slug, nullableID(current.CategoryID), current.UpdatedAt, id); err != nil {
		return nil, err
	}
	if patch.BrandIDs != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM child_category_brands WHERE child_category_id = ?`, id); err != nil {
			return nil, err
		}
		if err := insertChildCategoryLinks(ctx, tx, id, current.BrandIDs); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return current, nil
}

func (s *MySQLChildCategoryStore) Delete(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM child_categories WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullableID(id *string) sql.NullString {
	if id == nil || *id == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *id, Valid: true}
}
