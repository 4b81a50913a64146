package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/lost-and-found/internal/model"
)

// ClaimRepo encapsulates all database queries against the `claims` table.
// The two multi-step sequences of the claim workflow (duplicate pre-check
// on create, item-status cascade on approval) live entirely inside this
// type so they can be made atomic later without changing callers.
type ClaimRepo struct{ DB *sql.DB }

func NewClaimRepo(db *sql.DB) *ClaimRepo { return &ClaimRepo{DB: db} }

// Create inserts a pending claim after checking that the claimant has not
// already claimed the same item.  The check and the insert are two
// statements with no lock between them: two concurrent requests for the
// same (item, claimant) pair can both pass the check.  That window is part
// of the current contract.
//
// The referenced item is intentionally not verified to exist.
func (r *ClaimRepo) Create(ctx context.Context, cl *model.Claim) error {
	var existing uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM claims WHERE item_id = ? AND claimant_id = ? LIMIT 1",
		cl.ItemID, cl.ClaimantID).Scan(&existing)
	if err == nil {
		return ErrDuplicateClaim
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	cl.Status = model.ClaimPending
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO claims (item_id, claimant_id, status, proof_description) VALUES (?,?,?,?)",
		cl.ItemID, cl.ClaimantID, string(cl.Status), cl.ProofDescription)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	cl.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at FROM claims WHERE id = ?", cl.ID).Scan(&cl.CreatedAt)
}

// GetWithItem fetches a claim together with its referenced item.  The item
// pointer is nil when the reference dangles (the item was deleted after
// the claim was filed); callers must treat that as an absent reference.
func (r *ClaimRepo) GetWithItem(ctx context.Context, id uint64) (*model.Claim, error) {
	const q = `SELECT c.id, c.item_id, c.claimant_id, c.status, c.proof_description, c.created_at,
			i.id, i.title, i.description, i.category, i.location, i.status,
			i.image_url, i.owner_id, i.created_at
		FROM claims c
		LEFT JOIN items i ON i.id = c.item_id
		WHERE c.id = ?`

	var (
		cl        model.Claim
		proof     sql.NullString
		itemID    sql.NullInt64
		it        model.Item
		desc, img sql.NullString
	)
	err := r.DB.QueryRowContext(ctx, q, id).Scan(
		&cl.ID, &cl.ItemID, &cl.ClaimantID, &cl.Status, &proof, &cl.CreatedAt,
		&itemID, &sqlString{&it.Title}, &desc, &sqlString{&it.Category},
		&sqlString{&it.Location}, &sqlStatus{&it.Status}, &img,
		&sqlUint{&it.OwnerID}, &sqlTime{&it.CreatedAt})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClaimNotFound
	}
	if err != nil {
		return nil, err
	}
	cl.ProofDescription = proof.String
	if itemID.Valid {
		it.ID = uint64(itemID.Int64)
		it.Description = desc.String
		it.ImageURL = img.String
		cl.Item = &it
	}
	return &cl, nil
}

// Decide sets the claim status and, when the decision is an approval,
// marks the referenced item as claimed.  The two UPDATEs are independent
// writes with no surrounding transaction; a failure between them leaves
// the claim decided and the item untouched.  Re-deciding an already
// decided claim simply re-applies the writes.
func (r *ClaimRepo) Decide(ctx context.Context, claimID, itemID uint64, status model.ClaimStatus) error {
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE claims SET status = ? WHERE id = ?", string(status), claimID); err != nil {
		return err
	}
	if status == model.ClaimApproved {
		if _, err := r.DB.ExecContext(ctx,
			"UPDATE items SET status = ? WHERE id = ?", string(model.StatusClaimed), itemID); err != nil {
			return err
		}
	}
	return nil
}

// ListForItem returns all claims filed against one item with the
// claimant's name and email resolved, in insertion order.
func (r *ClaimRepo) ListForItem(ctx context.Context, itemID uint64) ([]*model.Claim, error) {
	const q = `SELECT c.id, c.item_id, c.claimant_id, c.status, c.proof_description, c.created_at,
			u.full_name, u.email
		FROM claims c
		LEFT JOIN users u ON u.id = c.claimant_id
		WHERE c.item_id = ?
		ORDER BY c.id`
	rows, err := r.DB.QueryContext(ctx, q, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Claim, 0)
	for rows.Next() {
		var (
			cl          model.Claim
			proof       sql.NullString
			name, email sql.NullString
		)
		if err := rows.Scan(&cl.ID, &cl.ItemID, &cl.ClaimantID, &cl.Status, &proof, &cl.CreatedAt,
			&name, &email); err != nil {
			return nil, err
		}
		cl.ProofDescription = proof.String
		if name.Valid || email.Valid {
			cl.Claimant = &model.UserRef{FullName: name.String, Email: email.String}
		}
		out = append(out, &cl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByClaimant returns the caller's own claims, newest first, each joined
// with the full item record.  The item is nil for dangling references.
func (r *ClaimRepo) ListByClaimant(ctx context.Context, claimantID uint64) ([]*model.Claim, error) {
	const q = `SELECT c.id, c.item_id, c.claimant_id, c.status, c.proof_description, c.created_at,
			i.id, i.title, i.description, i.category, i.location, i.status,
			i.image_url, i.owner_id, i.created_at
		FROM claims c
		LEFT JOIN items i ON i.id = c.item_id
		WHERE c.claimant_id = ?
		ORDER BY c.created_at DESC, c.id DESC`
	rows, err := r.DB.QueryContext(ctx, q, claimantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Claim, 0)
	for rows.Next() {
		cl, err := scanClaimWithItem(rows, false)
		if err != nil {
			return nil, err
		}
		out = append(out, cl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListReceived returns claims filed against items the given user owns,
// newest first, joined with both the item and the claimant.  The ownership
// restriction is expressed through the inner join on items, which resolves
// the caller's owned item set and filters claims by it in one statement.
func (r *ClaimRepo) ListReceived(ctx context.Context, ownerID uint64) ([]*model.Claim, error) {
	const q = `SELECT c.id, c.item_id, c.claimant_id, c.status, c.proof_description, c.created_at,
			i.id, i.title, i.description, i.category, i.location, i.status,
			i.image_url, i.owner_id, i.created_at,
			u.full_name, u.email
		FROM claims c
		JOIN items i ON i.id = c.item_id AND i.owner_id = ?
		LEFT JOIN users u ON u.id = c.claimant_id
		ORDER BY c.created_at DESC, c.id DESC`
	rows, err := r.DB.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Claim, 0)
	for rows.Next() {
		cl, err := scanClaimWithItem(rows, true)
		if err != nil {
			return nil, err
		}
		out = append(out, cl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// scanClaimWithItem reads a claim row joined with item columns and, when
// withClaimant is set, the claimant's name and email.
func scanClaimWithItem(rows *sql.Rows, withClaimant bool) (*model.Claim, error) {
	var (
		cl          model.Claim
		proof       sql.NullString
		itemID      sql.NullInt64
		it          model.Item
		desc, img   sql.NullString
		name, email sql.NullString
	)
	dest := []any{
		&cl.ID, &cl.ItemID, &cl.ClaimantID, &cl.Status, &proof, &cl.CreatedAt,
		&itemID, &sqlString{&it.Title}, &desc, &sqlString{&it.Category},
		&sqlString{&it.Location}, &sqlStatus{&it.Status}, &img,
		&sqlUint{&it.OwnerID}, &sqlTime{&it.CreatedAt},
	}
	if withClaimant {
		dest = append(dest, &name, &email)
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}
	cl.ProofDescription = proof.String
	if itemID.Valid {
		it.ID = uint64(itemID.Int64)
		it.Description = desc.String
		it.ImageURL = img.String
		cl.Item = &it
	}
	if name.Valid || email.Valid {
		cl.Claimant = &model.UserRef{FullName: name.String, Email: email.String}
	}
	return &cl, nil
}
