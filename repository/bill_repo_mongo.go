package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"platerental/ledger"
	"platerental/models"
)

// Amounts are stored as strings so no precision is lost in BSON doubles.
type billDoc struct {
	ID              int64             `bson:"_id"`
	BillNumber      string            `bson:"bill_number"`
	ClientID        int64             `bson:"client_id"`
	FromDate        string            `bson:"from_date"`
	ToDate          string            `bson:"to_date"`
	DailyRent       string            `bson:"daily_rent"`
	Days            int               `bson:"days"`
	TotalRent       string            `bson:"total_rent"`
	TotalExtraCosts string            `bson:"total_extra_costs"`
	TotalDiscounts  string            `bson:"total_discounts"`
	GrandTotal      string            `bson:"grand_total"`
	TotalPayments   string            `bson:"total_payments"`
	DuePayment      string            `bson:"due_payment"`
	Status          models.BillStatus `bson:"status"`
	CreatedAt       time.Time         `bson:"created_at"`
	UpdatedAt       *time.Time        `bson:"updated_at,omitempty"`
}

// adjustmentDoc holds extra costs, discounts and payments; Kind tells them apart.
type adjustmentDoc struct {
	ID     int64  `bson:"_id"`
	BillID int64  `bson:"bill_id"`
	Kind   string `bson:"kind"`
	Date   string `bson:"date"`
	Note   string `bson:"note"`
	Pieces int    `bson:"pieces,omitempty"`
	Rate   string `bson:"rate,omitempty"`
	Total  string `bson:"total"`
}

const (
	kindExtraCost = "extra_cost"
	kindDiscount  = "discount"
	kindPayment   = "payment"
)

func toBillDoc(b *models.Bill) billDoc {
	return billDoc{
		ID:              b.ID,
		BillNumber:      b.BillNumber,
		ClientID:        b.ClientID,
		FromDate:        b.FromDate,
		ToDate:          b.ToDate,
		DailyRent:       b.DailyRent.String(),
		Days:            b.Days,
		TotalRent:       b.TotalRent.String(),
		TotalExtraCosts: b.TotalExtraCosts.String(),
		TotalDiscounts:  b.TotalDiscounts.String(),
		GrandTotal:      b.GrandTotal.String(),
		TotalPayments:   b.TotalPayments.String(),
		DuePayment:      b.DuePayment.String(),
		Status:          b.Status,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func (d billDoc) toModel() *models.Bill {
	return &models.Bill{
		ID:              d.ID,
		BillNumber:      d.BillNumber,
		ClientID:        d.ClientID,
		FromDate:        d.FromDate,
		ToDate:          d.ToDate,
		DailyRent:       ledger.ParseAmount(d.DailyRent),
		Days:            d.Days,
		TotalRent:       ledger.ParseAmount(d.TotalRent),
		TotalExtraCosts: ledger.ParseAmount(d.TotalExtraCosts),
		TotalDiscounts:  ledger.ParseAmount(d.TotalDiscounts),
		GrandTotal:      ledger.ParseAmount(d.GrandTotal),
		TotalPayments:   ledger.ParseAmount(d.TotalPayments),
		DuePayment:      ledger.ParseAmount(d.DuePayment),
		Status:          d.Status,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

type MongoBillRepo struct {
	DB *mongo.Database
}

func NewMongoBillRepo(db *mongo.Database) *MongoBillRepo {
	return &MongoBillRepo{DB: db}
}

func (r *MongoBillRepo) BillNumberExists(ctx context.Context, number string) (bool, error) {
	n, err := r.DB.Collection("bill").CountDocuments(ctx, bson.M{"bill_number": number})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CreateBill inserts the header, then each group of adjustment rows. Mongo
// has no multi-collection transaction on a standalone server, so a failure
// after the header deletes what was written and returns a PartialWriteError.
func (r *MongoBillRepo) CreateBill(ctx context.Context, bill *models.Bill, extras []models.ExtraCost, discounts []models.Discount, payments []models.Payment) error {
	n, err := r.DB.Collection("client").CountDocuments(ctx, bson.M{"_id": bill.ClientID})
	if err != nil {
		return err
	}
	if n == 0 {
		return errUnknownBillClient
	}

	id, err := nextID(ctx, r.DB, "bill")
	if err != nil {
		return err
	}
	bill.ID = id

	if _, err := r.DB.Collection("bill").InsertOne(ctx, toBillDoc(bill)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ledger.ErrDuplicateBillNumber
		}
		return err
	}

	steps := []struct {
		name string
		docs func() ([]interface{}, error)
	}{
		{"extra_costs", func() ([]interface{}, error) {
			docs := make([]interface{}, 0, len(extras))
			for i := range extras {
				d, err := r.adjustment(ctx, id, kindExtraCost, extras[i].Date, extras[i].Note, extras[i].Pieces, extras[i].Rate, extras[i].Total)
				if err != nil {
					return nil, err
				}
				extras[i].ID, extras[i].BillID = d.ID, id
				docs = append(docs, d)
			}
			return docs, nil
		}},
		{"discounts", func() ([]interface{}, error) {
			docs := make([]interface{}, 0, len(discounts))
			for i := range discounts {
				d, err := r.adjustment(ctx, id, kindDiscount, discounts[i].Date, discounts[i].Note, discounts[i].Pieces, discounts[i].Rate, discounts[i].Total)
				if err != nil {
					return nil, err
				}
				discounts[i].ID, discounts[i].BillID = d.ID, id
				docs = append(docs, d)
			}
			return docs, nil
		}},
		{"payments", func() ([]interface{}, error) {
			docs := make([]interface{}, 0, len(payments))
			for i := range payments {
				d, err := r.adjustment(ctx, id, kindPayment, payments[i].Date, payments[i].Note, 0, decimal.Zero, payments[i].Amount)
				if err != nil {
					return nil, err
				}
				d.Rate = ""
				payments[i].ID, payments[i].BillID = d.ID, id
				docs = append(docs, d)
			}
			return docs, nil
		}},
	}

	for _, step := range steps {
		docs, err := step.docs()
		if err == nil && len(docs) > 0 {
			_, err = r.DB.Collection("bill_adjustment").InsertMany(ctx, docs)
		}
		if err != nil {
			return &ledger.PartialWriteError{
				Step:        step.name,
				Compensated: r.compensate(id) == nil,
				Err:         err,
			}
		}
	}
	return nil
}

func (r *MongoBillRepo) adjustment(ctx context.Context, billID int64, kind, date, note string, pieces int, rate, total decimal.Decimal) (adjustmentDoc, error) {
	id, err := nextID(ctx, r.DB, "bill_adjustment")
	if err != nil {
		return adjustmentDoc{}, err
	}
	return adjustmentDoc{
		ID:     id,
		BillID: billID,
		Kind:   kind,
		Date:   date,
		Note:   note,
		Pieces: pieces,
		Rate:   rate.String(),
		Total:  total.String(),
	}, nil
}

// compensate runs on a fresh context so a cancelled request still cleans up.
func (r *MongoBillRepo) compensate(billID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := r.DB.Collection("bill_adjustment").DeleteMany(ctx, bson.M{"bill_id": billID}); err != nil {
		return err
	}
	_, err := r.DB.Collection("bill").DeleteOne(ctx, bson.M{"_id": billID})
	return err
}

func (r *MongoBillRepo) GetBill(ctx context.Context, number string) (*models.Bill, error) {
	var doc billDoc
	err := r.DB.Collection("bill").FindOne(ctx, bson.M{"bill_number": number}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	bill := doc.toModel()
	if err := r.loadAdjustments(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

func (r *MongoBillRepo) loadAdjustments(ctx context.Context, bill *models.Bill) error {
	cur, err := r.DB.Collection("bill_adjustment").Find(ctx,
		bson.M{"bill_id": bill.ID},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var d adjustmentDoc
		if err := cur.Decode(&d); err != nil {
			return err
		}
		switch d.Kind {
		case kindExtraCost:
			bill.ExtraCosts = append(bill.ExtraCosts, models.ExtraCost{
				ID: d.ID, BillID: d.BillID, Date: d.Date, Note: d.Note, Pieces: d.Pieces,
				Rate: ledger.ParseAmount(d.Rate), Total: ledger.ParseAmount(d.Total),
			})
		case kindDiscount:
			bill.Discounts = append(bill.Discounts, models.Discount{
				ID: d.ID, BillID: d.BillID, Date: d.Date, Note: d.Note, Pieces: d.Pieces,
				Rate: ledger.ParseAmount(d.Rate), Total: ledger.ParseAmount(d.Total),
			})
		case kindPayment:
			bill.Payments = append(bill.Payments, models.Payment{
				ID: d.ID, BillID: d.BillID, Date: d.Date, Note: d.Note,
				Amount: ledger.ParseAmount(d.Total),
			})
		}
	}
	return cur.Err()
}

func (r *MongoBillRepo) ListBills(ctx context.Context, clientID int64) ([]*models.Bill, error) {
	cur, err := r.DB.Collection("bill").Find(ctx,
		bson.M{"client_id": clientID},
		options.Find().SetSort(bson.D{{Key: "from_date", Value: 1}, {Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var bills []*models.Bill
	for cur.Next(ctx) {
		var doc billDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		bills = append(bills, doc.toModel())
	}
	return bills, cur.Err()
}

func (r *MongoBillRepo) UpdateBillStatus(ctx context.Context, number string, status models.BillStatus) error {
	res, err := r.DB.Collection("bill").UpdateOne(ctx,
		bson.M{"bill_number": number},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ledger.ErrBillNotFound
	}
	return nil
}
