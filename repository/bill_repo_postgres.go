package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"platerental/ledger"
	"platerental/models"
)

type PostgresBillRepo struct {
	DB *sql.DB
}

func NewPostgresBillRepo(db *sql.DB) *PostgresBillRepo {
	return &PostgresBillRepo{DB: db}
}

const billColumns = `
	id, bill_number, client_id,
	to_char(from_date, 'YYYY-MM-DD'), to_char(to_date, 'YYYY-MM-DD'),
	daily_rent, days, total_rent, total_extra_costs, total_discounts,
	grand_total, total_payments, due_payment, status, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBill(row rowScanner) (*models.Bill, error) {
	var b models.Bill
	err := row.Scan(
		&b.ID, &b.BillNumber, &b.ClientID, &b.FromDate, &b.ToDate,
		&b.DailyRent, &b.Days, &b.TotalRent, &b.TotalExtraCosts, &b.TotalDiscounts,
		&b.GrandTotal, &b.TotalPayments, &b.DuePayment, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PostgresBillRepo) BillNumberExists(ctx context.Context, number string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM bill WHERE bill_number=$1)`, number).Scan(&exists)
	return exists, err
}

// CreateBill writes the bill header and every adjustment row in one
// transaction; nothing is left behind when any insert fails.
func (r *PostgresBillRepo) CreateBill(ctx context.Context, bill *models.Bill, extras []models.ExtraCost, discounts []models.Discount, payments []models.Payment) error {
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = time.Now().UTC()
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO bill(
			bill_number,client_id,from_date,to_date,daily_rent,days,
			total_rent,total_extra_costs,total_discounts,grand_total,
			total_payments,due_payment,status,created_at
		)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING id
	`,
		bill.BillNumber, bill.ClientID, bill.FromDate, bill.ToDate, bill.DailyRent, bill.Days,
		bill.TotalRent, bill.TotalExtraCosts, bill.TotalDiscounts, bill.GrandTotal,
		bill.TotalPayments, bill.DuePayment, bill.Status, bill.CreatedAt,
	).Scan(&bill.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ledger.ErrDuplicateBillNumber
		}
		if isForeignKeyViolation(err) {
			return errUnknownBillClient
		}
		return fmt.Errorf("insert bill: %w", err)
	}

	for i := range extras {
		e := &extras[i]
		e.BillID = bill.ID
		err := tx.QueryRowContext(ctx, `
			INSERT INTO bill_extra_cost(bill_id,date,note,pieces,rate,total)
			VALUES($1,NULLIF($2,'')::date,$3,$4,$5,$6)
			RETURNING id
		`, bill.ID, e.Date, e.Note, e.Pieces, e.Rate, e.Total).Scan(&e.ID)
		if err != nil {
			return fmt.Errorf("insert extra_costs: %w", err)
		}
	}
	for i := range discounts {
		d := &discounts[i]
		d.BillID = bill.ID
		err := tx.QueryRowContext(ctx, `
			INSERT INTO bill_discount(bill_id,date,note,pieces,rate,total)
			VALUES($1,NULLIF($2,'')::date,$3,$4,$5,$6)
			RETURNING id
		`, bill.ID, d.Date, d.Note, d.Pieces, d.Rate, d.Total).Scan(&d.ID)
		if err != nil {
			return fmt.Errorf("insert discounts: %w", err)
		}
	}
	for i := range payments {
		p := &payments[i]
		p.BillID = bill.ID
		err := tx.QueryRowContext(ctx, `
			INSERT INTO bill_payment(bill_id,date,note,amount)
			VALUES($1,NULLIF($2,'')::date,$3,$4)
			RETURNING id
		`, bill.ID, p.Date, p.Note, p.Amount).Scan(&p.ID)
		if err != nil {
			return fmt.Errorf("insert payments: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return ledger.ErrDuplicateBillNumber
		}
		return err
	}
	return nil
}

// GetBill loads a bill with its adjustment rows; nil, nil when missing.
func (r *PostgresBillRepo) GetBill(ctx context.Context, number string) (*models.Bill, error) {
	b, err := scanBill(r.DB.QueryRowContext(ctx, `SELECT `+billColumns+` FROM bill WHERE bill_number=$1`, number))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.loadAdjustments(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *PostgresBillRepo) ListBills(ctx context.Context, clientID int64) ([]*models.Bill, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+billColumns+` FROM bill WHERE client_id=$1 ORDER BY created_at DESC`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresBillRepo) UpdateBillStatus(ctx context.Context, number string, status models.BillStatus) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE bill SET status=$1, updated_at=$2 WHERE bill_number=$3
	`, status, time.Now().UTC(), number)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ledger.ErrBillNotFound
	}
	return nil
}

func (r *PostgresBillRepo) loadAdjustments(ctx context.Context, b *models.Bill) error {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, bill_id, COALESCE(to_char(date, 'YYYY-MM-DD'), ''), note, pieces, rate, total
		FROM bill_extra_cost WHERE bill_id=$1 ORDER BY id
	`, b.ID)
	if err != nil {
		return err
	}
	for rows.Next() {
		var e models.ExtraCost
		if err := rows.Scan(&e.ID, &e.BillID, &e.Date, &e.Note, &e.Pieces, &e.Rate, &e.Total); err != nil {
			rows.Close()
			return err
		}
		b.ExtraCosts = append(b.ExtraCosts, e)
	}
	rows.Close()

	rows, err = r.DB.QueryContext(ctx, `
		SELECT id, bill_id, COALESCE(to_char(date, 'YYYY-MM-DD'), ''), note, pieces, rate, total
		FROM bill_discount WHERE bill_id=$1 ORDER BY id
	`, b.ID)
	if err != nil {
		return err
	}
	for rows.Next() {
		var d models.Discount
		if err := rows.Scan(&d.ID, &d.BillID, &d.Date, &d.Note, &d.Pieces, &d.Rate, &d.Total); err != nil {
			rows.Close()
			return err
		}
		b.Discounts = append(b.Discounts, d)
	}
	rows.Close()

	rows, err = r.DB.QueryContext(ctx, `
		SELECT id, bill_id, COALESCE(to_char(date, 'YYYY-MM-DD'), ''), note, amount
		FROM bill_payment WHERE bill_id=$1 ORDER BY id
	`, b.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.BillID, &p.Date, &p.Note, &p.Amount); err != nil {
			return err
		}
		b.Payments = append(b.Payments, p)
	}
	return rows.Err()
}
