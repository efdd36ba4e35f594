package core

import (
	"encoding/json"
	"strings"
)

const (
	TypeIn  TxType = "IN"
	TypeOut TxType = "OUT"

	CategoryTravel   Category = "TRAVEL"
	CategoryFood     Category = "FOOD"
	CategoryPurchase Category = "PURCHASE"
	CategoryLeaving  Category = "LEAVING"

	// ModeVoucher is free entry; ModeRequested enables the fixed food amount.
	ModeVoucher   Mode = "VOUCHER"
	ModeRequested Mode = "REQUESTED"
)

// Categories lists the selectable IN categories in display order.
var Categories = []Category{CategoryTravel, CategoryFood, CategoryPurchase, CategoryLeaving}

type (
	TxType   string
	Category string
	Mode     string

	// RowID is the backend-assigned transaction identifier. The gateway may
	// send it as a number (sheet row) or a string.
	RowID string

	Transaction struct {
		ID        RowID    `json:"id"`
		Node      string   `json:"node,omitempty"`
		Type      TxType   `json:"type"`
		Amount    Amount   `json:"amount"`
		Date      string   `json:"date"`
		Reason    string   `json:"reason"`
		Category  Category `json:"category"`
		Image     string   `json:"image,omitempty"`
		Timestamp string   `json:"timestamp,omitempty"`
	}
)

func (t TxType) Valid() bool { return t == TypeIn || t == TypeOut }

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func (m Mode) Valid() bool { return m == ModeVoucher || m == ModeRequested }

// ParseType accepts "in"/"out" in any case.
func ParseType(s string) (TxType, error) {
	t := TxType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", &ValidationError{Field: FieldType, Err: ErrInvalidType}
	}
	return t, nil
}

// ParseCategory accepts a category name in any case. Empty input yields an
// empty category without error.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	c := Category(strings.ToUpper(s))
	if !c.Valid() {
		return "", &ValidationError{Field: FieldCategory, Err: ErrInvalidCategory}
	}
	return c, nil
}

func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToUpper(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", &ValidationError{Field: FieldMode, Err: ErrInvalidMode}
	}
	return m, nil
}

func (id *RowID) UnmarshalJSON(b []byte) error {
	s, err := lenientScalar(b)
	if err != nil {
		return err
	}
	*id = RowID(s)
	return nil
}

// MarshalJSON sends numeric ids back as numbers, the form the gateway issued
// them in.
func (id RowID) MarshalJSON() ([]byte, error) {
	s := string(id)
	if s != "" && strings.Trim(s, "0123456789") == "" && (len(s) == 1 || s[0] != '0') {
		return []byte(s), nil
	}
	return json.Marshal(s)
}

// Normalize enforces the category/type coupling: OUT never carries a category.
func (t Transaction) Normalize() Transaction {
	t.Reason = strings.TrimSpace(t.Reason)
	if t.Type == TypeOut {
		t.Category = ""
	}
	return t
}

// Validate checks a transaction the way the entry form does: amount, date,
// reason and, for IN, category.
func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return &ValidationError{Field: FieldType, Err: ErrInvalidType}
	}
	if _, err := ParseAmount(string(t.Amount)); err != nil {
		return &ValidationError{Field: FieldAmount, Err: err}
	}
	if _, err := ParseDate(t.Date); err != nil {
		return &ValidationError{Field: FieldDate, Err: err}
	}
	if strings.TrimSpace(t.Reason) == "" {
		return &ValidationError{Field: FieldReason, Err: ErrEmptyReason}
	}
	if t.Type == TypeIn {
		if t.Category == "" {
			return &ValidationError{Field: FieldCategory, Err: ErrMissingCategory}
		}
		if !t.Category.Valid() {
			return &ValidationError{Field: FieldCategory, Err: ErrInvalidCategory}
		}
	}
	return nil
}

// lenientScalar decodes a JSON scalar (string, number, bool or null) into
// its trimmed textual form.
func lenientScalar(b []byte) (string, error) {
	raw := strings.TrimSpace(string(b))
	switch {
	case raw == "null":
		return "", nil
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	default:
		return raw, nil
	}
}
