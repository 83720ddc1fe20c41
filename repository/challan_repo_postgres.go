package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"platerental/models"
)

type PostgresChallanRepo struct {
	DB *sql.DB
}

func NewPostgresChallanRepo(db *sql.DB) *PostgresChallanRepo {
	return &PostgresChallanRepo{DB: db}
}

// itemColumns lists challan_items columns in Size order: qty, borrowed,
// note for sizes 1..9, then main_note.
var itemColumns = func() []string {
	cols := make([]string, 0, models.NumSizes*3+1)
	for _, s := range models.AllSizes() {
		cols = append(cols,
			fmt.Sprintf("size_%d_qty", s),
			fmt.Sprintf("size_%d_borrowed", s),
			fmt.Sprintf("size_%d_note", s),
		)
	}
	return append(cols, "main_note")
}()

// isUniqueViolation reports a Postgres unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// isForeignKeyViolation reports a Postgres foreign_key_violation (23503).
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}

// ------------------------ Helper Functions ------------------------

func (r *PostgresChallanRepo) insertItems(ctx context.Context, tx *sql.Tx, challanID int64, q *models.ItemQuantities) error {
	args := make([]interface{}, 0, len(itemColumns)+1)
	args = append(args, challanID)
	for _, s := range models.AllSizes() {
		v := q.Get(s)
		args = append(args, v.Qty, v.Borrowed, v.Note)
	}
	args = append(args, q.Note)

	placeholders := make([]string, len(args))
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf(`INSERT INTO challan_items(challan_id,%s) VALUES(%s)`,
		strings.Join(itemColumns, ","), strings.Join(placeholders, ","))
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

func (r *PostgresChallanRepo) adjustStock(ctx context.Context, tx *sql.Tx, t models.ChallanType, q *models.ItemQuantities, sign int) error {
	deltas := stockDeltas(t, q, sign)
	for _, s := range models.AllSizes() {
		delta := deltas[s-1]
		if delta == 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE stock SET available = available + $1, updated_at = $2 WHERE size = $3
		`, delta, time.Now().UTC(), int(s)); err != nil {
			return err
		}
	}
	return nil
}

// ------------------------ Create / Delete Challan ------------------------

func (r *PostgresChallanRepo) CreateChallan(ctx context.Context, rec *models.ChallanRecord) error {
	if rec.Items == nil {
		rec.Items = &models.ItemQuantities{}
	}
	rec.Items.Normalize()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM client WHERE id=$1)`, rec.ClientID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrClientNotFound
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO challan(client_id,type,challan_number,date,site,phone,driver,created_at)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id
	`, rec.ClientID, rec.Type, rec.ChallanNumber, rec.Date, rec.Site, rec.Phone, rec.Driver, rec.CreatedAt).Scan(&rec.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrChallanExists
		}
		return fmt.Errorf("insert challan: %w", err)
	}

	if err := r.insertItems(ctx, tx, rec.ID, rec.Items); err != nil {
		return fmt.Errorf("insert challan items: %w", err)
	}
	if err := r.adjustStock(ctx, tx, rec.Type, rec.Items, 1); err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}

	return tx.Commit()
}

// DeleteChallan removes a challan and its item row and reverses its stock
// movement.
func (r *PostgresChallanRepo) DeleteChallan(ctx context.Context, t models.ChallanType, number string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	recs, err := r.queryChallans(ctx, tx, `c.type = $1 AND c.challan_number = $2`, t, number)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return ErrChallanNotFound
	}
	rec := recs[0]

	// items go with ON DELETE CASCADE
	if _, err := tx.ExecContext(ctx, `DELETE FROM challan WHERE id=$1`, rec.ID); err != nil {
		return err
	}
	if rec.Items != nil {
		if err := r.adjustStock(ctx, tx, rec.Type, rec.Items, -1); err != nil {
			return fmt.Errorf("reverse stock: %w", err)
		}
	}
	return tx.Commit()
}

// ------------------------ List Challans ------------------------

func (r *PostgresChallanRepo) ListChallans(ctx context.Context, clientID int64, t models.ChallanType) ([]models.ChallanRecord, error) {
	return r.queryChallans(ctx, r.DB, `c.client_id = $1 AND c.type = $2`, clientID, t)
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

func (r *PostgresChallanRepo) queryChallans(ctx context.Context, q queryer, where string, args ...interface{}) ([]models.ChallanRecord, error) {
	itemCols := make([]string, len(itemColumns))
	for i, c := range itemColumns {
		itemCols[i] = "ci." + c
	}
	query := fmt.Sprintf(`
		SELECT c.id, c.client_id, c.type, c.challan_number, c.date, c.site, c.phone, c.driver, c.created_at,
			ci.challan_id, %s
		FROM challan c
		LEFT JOIN challan_items ci ON ci.challan_id = c.id
		WHERE %s
		ORDER BY c.date NULLS LAST, c.id
	`, strings.Join(itemCols, ", "), where)

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ChallanRecord
	for rows.Next() {
		var rec models.ChallanRecord
		var itemsID sql.NullInt64
		counts := make([]sql.NullInt64, models.NumSizes*2)
		notes := make([]sql.NullString, models.NumSizes+1)

		dest := []interface{}{
			&rec.ID, &rec.ClientID, &rec.Type, &rec.ChallanNumber, &rec.Date,
			&rec.Site, &rec.Phone, &rec.Driver, &rec.CreatedAt, &itemsID,
		}
		for i := 0; i < models.NumSizes; i++ {
			dest = append(dest, &counts[2*i], &counts[2*i+1], &notes[i])
		}
		dest = append(dest, &notes[models.NumSizes])

		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		if itemsID.Valid {
			items := &models.ItemQuantities{Note: notes[models.NumSizes].String}
			for i, s := range models.AllSizes() {
				items.Set(s, models.SizeQuantity{
					Qty:      int(counts[2*i].Int64),
					Borrowed: int(counts[2*i+1].Int64),
					Note:     notes[i].String,
				})
			}
			rec.Items = items
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
