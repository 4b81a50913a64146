package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/lost-and-found/internal/model"
)

// ItemFilter defines the optional filters for listing items.  Zero values
// mean "no filter".  Search matches case-insensitively against the item
// title or description as a substring.
type ItemFilter struct {
	Status   model.ItemStatus
	Category string
	OwnerID  uint64
	Search   string
}

// ItemPatch carries the fields of a partial update.  Nil pointers leave
// the corresponding column untouched.  The owner and creation time are not
// representable here on purpose: they are immutable after creation.
type ItemPatch struct {
	Title       *string
	Description *string
	Category    *string
	Location    *string
	Status      *model.ItemStatus
	ImageURL    *string
}

// ItemRepo encapsulates all database queries against the `items` table.
type ItemRepo struct{ DB *sql.DB }

func NewItemRepo(db *sql.DB) *ItemRepo { return &ItemRepo{DB: db} }

// itemColumns is the shared select list for item reads with the owner
// joined.  The join is a LEFT JOIN because owner_id is a soft reference.
const itemColumns = `i.id, i.title, i.description, i.category, i.location, i.status,
	i.image_url, i.owner_id, i.created_at, u.full_name, u.email`

// scanItem reads one item row (with optional owner columns) from a scanner.
func scanItem(sc interface{ Scan(...any) error }) (*model.Item, error) {
	var (
		it          model.Item
		desc, img   sql.NullString
		name, email sql.NullString
	)
	if err := sc.Scan(&it.ID, &it.Title, &desc, &it.Category, &it.Location, &it.Status,
		&img, &it.OwnerID, &it.CreatedAt, &name, &email); err != nil {
		return nil, err
	}
	it.Description = desc.String
	it.ImageURL = img.String
	if name.Valid || email.Valid {
		it.Owner = &model.UserRef{FullName: name.String, Email: email.String}
	}
	return &it, nil
}

// List returns items matching the filter, newest first, each with the
// owner's name and email resolved.
func (r *ItemRepo) List(ctx context.Context, f ItemFilter) ([]*model.Item, error) {
	where := []string{}
	args := []any{}

	if f.OwnerID != 0 {
		where = append(where, "i.owner_id = ?")
		args = append(args, f.OwnerID)
	}
	if f.Status != "" {
		where = append(where, "i.status = ?")
		args = append(args, string(f.Status))
	}
	if f.Category != "" {
		where = append(where, "i.category = ?")
		args = append(args, f.Category)
	}
	if f.Search != "" {
		needle := "%" + strings.ToLower(f.Search) + "%"
		where = append(where, "(LOWER(i.title) LIKE ? OR LOWER(i.description) LIKE ?)")
		args = append(args, needle, needle)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	q := `SELECT ` + itemColumns + `
		FROM items i
		LEFT JOIN users u ON u.id = i.owner_id
		WHERE ` + cond + `
		ORDER BY i.created_at DESC, i.id DESC`

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a single item with its owner resolved.  It returns
// ErrItemNotFound when no row matches.
func (r *ItemRepo) GetByID(ctx context.Context, id uint64) (*model.Item, error) {
	q := `SELECT ` + itemColumns + `
		FROM items i
		LEFT JOIN users u ON u.id = i.owner_id
		WHERE i.id = ?`
	it, err := scanItem(r.DB.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

// Create inserts a new item.  On success the item's ID and CreatedAt are
// populated from the database so callers receive a fully formed record.
func (r *ItemRepo) Create(ctx context.Context, it *model.Item) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO items (title, description, category, location, status, image_url, owner_id) VALUES (?,?,?,?,?,?,?)",
		it.Title, it.Description, it.Category, it.Location, string(it.Status), it.ImageURL, it.OwnerID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	it.ID = uint64(id)
	// Follow-up SELECT to pick up the database-assigned creation timestamp.
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at FROM items WHERE id = ?", it.ID).Scan(&it.CreatedAt)
}

// Update applies a partial field replacement and returns the updated item.
// Only columns with a non-nil patch field change; owner_id and created_at
// can never be written through this method.
func (r *ItemRepo) Update(ctx context.Context, id uint64, p ItemPatch) (*model.Item, error) {
	set := []string{}
	args := []any{}

	if p.Title != nil {
		set = append(set, "title = ?")
		args = append(args, *p.Title)
	}
	if p.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *p.Description)
	}
	if p.Category != nil {
		set = append(set, "category = ?")
		args = append(args, *p.Category)
	}
	if p.Location != nil {
		set = append(set, "location = ?")
		args = append(args, *p.Location)
	}
	if p.Status != nil {
		set = append(set, "status = ?")
		args = append(args, string(*p.Status))
	}
	if p.ImageURL != nil {
		set = append(set, "image_url = ?")
		args = append(args, *p.ImageURL)
	}

	if len(set) > 0 {
		q := "UPDATE items SET " + strings.Join(set, ", ") + " WHERE id = ?"
		args = append(args, id)
		// RowsAffected is zero both for a missing row and for a no-op
		// write, so absence is detected by the read below instead.
		if _, err := r.DB.ExecContext(ctx, q, args...); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes an item.  Claims referencing it are left in place; the
// contract has no cascade.
func (r *ItemRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM items WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrItemNotFound
	}
	return nil
}
