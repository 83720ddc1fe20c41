package handlers

import (
	"context"
	"errors"
	"sync"

	"platerental/auth"
	"platerental/ledger"
	"platerental/models"
	"platerental/repository"
	"platerental/utils"
)

type fakeChallans struct {
	mu      sync.Mutex
	records map[models.ChallanType][]models.ChallanRecord
}

func newFakeChallans() *fakeChallans {
	return &fakeChallans{records: map[models.ChallanType][]models.ChallanRecord{}}
}

func (f *fakeChallans) CreateChallan(_ context.Context, rec *models.ChallanRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records[rec.Type] {
		if r.ChallanNumber == rec.ChallanNumber {
			return repository.ErrChallanExists
		}
	}
	rec.ID = int64(len(f.records[rec.Type]) + 1)
	f.records[rec.Type] = append(f.records[rec.Type], *rec)
	return nil
}

func (f *fakeChallans) ListChallans(_ context.Context, clientID int64, t models.ChallanType) ([]models.ChallanRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ChallanRecord
	for _, r := range f.records[t] {
		if r.ClientID == clientID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeChallans) DeleteChallan(_ context.Context, t models.ChallanType, number string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := f.records[t]
	for i, r := range list {
		if r.ChallanNumber == number {
			f.records[t] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return repository.ErrChallanNotFound
}

type fakeClients struct {
	clients map[int64]*models.Client
}

func (f *fakeClients) CreateClient(_ context.Context, c *models.Client) error {
	c.ID = int64(len(f.clients) + 1)
	f.clients[c.ID] = c
	return nil
}

func (f *fakeClients) GetClient(_ context.Context, id int64) (*models.Client, error) {
	return f.clients[id], nil
}

func (f *fakeClients) ListClients(_ context.Context) ([]*models.Client, error) {
	var out []*models.Client
	for _, c := range f.clients {
		out = append(out, c)
	}
	return out, nil
}

type fakeBills struct {
	bills map[string]*models.Bill
	known map[int64]bool // client ids that exist; nil accepts any
}

func newFakeBills() *fakeBills {
	return &fakeBills{bills: map[string]*models.Bill{}}
}

func (f *fakeBills) BillNumberExists(_ context.Context, number string) (bool, error) {
	_, ok := f.bills[number]
	return ok, nil
}

func (f *fakeBills) CreateBill(_ context.Context, bill *models.Bill, _ []models.ExtraCost, _ []models.Discount, _ []models.Payment) error {
	if f.known != nil && !f.known[bill.ClientID] {
		return &ledger.ValidationError{Field: "client_id", Reason: "does not exist"}
	}
	bill.ID = int64(len(f.bills) + 1)
	cp := *bill
	f.bills[bill.BillNumber] = &cp
	return nil
}

func (f *fakeBills) GetBill(_ context.Context, number string) (*models.Bill, error) {
	b, ok := f.bills[number]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBills) UpdateBillStatus(_ context.Context, number string, status models.BillStatus) error {
	b, ok := f.bills[number]
	if !ok {
		return ledger.ErrBillNotFound
	}
	b.Status = status
	return nil
}

func (f *fakeBills) ListBills(_ context.Context, clientID int64) ([]*models.Bill, error) {
	var out []*models.Bill
	for _, b := range f.bills {
		if b.ClientID == clientID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeRenderer struct {
	got models.LedgerReceiptData
	err error
}

func (f *fakeRenderer) Render(_ context.Context, data models.LedgerReceiptData, format utils.ReceiptFormat) ([]byte, error) {
	f.got = data
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-" + string(format)), nil
}

type fakeUploader struct{ fail bool }

func (f *fakeUploader) Upload(_ context.Context, _ []byte, key, _ string) (string, error) {
	if f.fail {
		return "", errors.New("bucket unavailable")
	}
	return "https://files.example.com/" + key, nil
}

type fakeVerifier struct{}

func (fakeVerifier) Verify(_ context.Context, username, password string) (*models.AppUser, error) {
	if username == "ramesh" && password == "s3cret" {
		return &models.AppUser{ID: 1, Username: "ramesh", Role: "admin"}, nil
	}
	return nil, auth.ErrInvalidCredentials
}
