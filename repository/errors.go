package repository

import (
	"errors"

	"platerental/ledger"
)

var (
	ErrClientNotFound  = errors.New("client not found")
	ErrChallanExists   = errors.New("challan number already exists for this type")
	ErrChallanNotFound = errors.New("challan not found")
	ErrUserExists      = errors.New("username already exists")
)

// errUnknownBillClient is returned by bill stores for a client_id with no client.
var errUnknownBillClient = &ledger.ValidationError{Field: "client_id", Reason: "does not exist"}
