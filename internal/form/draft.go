// Package form implements the transaction entry form: the draft state
// machine with its field coupling rules, validation, and submission.
package form

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/Koushikchikkond/vouchers/internal/core"
	"github.com/Koushikchikkond/vouchers/internal/gateway"
)

const (
	// FixedFoodAmount is imposed on requested IN/FOOD entries.
	FixedFoodAmount = "250"

	MaxImageBytes = 5 << 20
)

var (
	ErrAmountLocked   = errors.New("amount is fixed for requested food entries")
	ErrCategoryHidden = errors.New("category applies to IN transactions only")
	ErrImageTooLarge  = fmt.Errorf("image larger than %d MiB", MaxImageBytes>>20)
	ErrNotAnImage     = errors.New("attachment is not an image")
)

// Draft is the in-progress entry. The zero value is not usable; start from
// NewDraft.
type Draft struct {
	mode     core.Mode
	txType   core.TxType
	amount   string
	date     string
	reason   string
	category core.Category
	image    string
}

// NewDraft starts an IN entry dated today.
func NewDraft(mode core.Mode, today civil.Date) *Draft {
	if !mode.Valid() {
		mode = core.ModeVoucher
	}
	return &Draft{
		mode:   mode,
		txType: core.TypeIn,
		date:   today.String(),
	}
}

func (d *Draft) Mode() core.Mode         { return d.mode }
func (d *Draft) Type() core.TxType       { return d.txType }
func (d *Draft) Amount() string          { return d.amount }
func (d *Draft) Date() string            { return d.date }
func (d *Draft) Reason() string          { return d.reason }
func (d *Draft) Category() core.Category { return d.category }
func (d *Draft) HasImage() bool          { return d.image != "" }

// AmountReadOnly reports whether the fixed food amount is in force.
func (d *Draft) AmountReadOnly() bool {
	return d.fixedAmountApplies(d.category)
}

// CategoryVisible reports whether a category can be chosen.
func (d *Draft) CategoryVisible() bool { return d.txType == core.TypeIn }

func (d *Draft) fixedAmountApplies(c core.Category) bool {
	return d.mode == core.ModeRequested && d.txType == core.TypeIn && c == core.CategoryFood
}

// SetType switches between IN and OUT. The category is always cleared and
// so is the amount, unless the category held before the switch still
// triggers the fixed amount.
func (d *Draft) SetType(t core.TxType) error {
	if !t.Valid() {
		return &core.ValidationError{Field: core.FieldType, Err: core.ErrInvalidType}
	}
	previous := d.category
	d.txType = t
	d.category = ""
	if d.fixedAmountApplies(previous) {
		d.amount = FixedFoodAmount
	} else {
		d.amount = ""
	}
	return nil
}

// SelectCategory sets the IN category. An empty category unsets it.
func (d *Draft) SelectCategory(c core.Category) error {
	if !d.CategoryVisible() {
		return ErrCategoryHidden
	}
	if c != "" && !c.Valid() {
		return &core.ValidationError{Field: core.FieldCategory, Err: core.ErrInvalidCategory}
	}
	d.category = c
	if d.mode == core.ModeRequested {
		switch {
		case c == core.CategoryFood:
			d.amount = FixedFoodAmount
		case d.amount == FixedFoodAmount:
			d.amount = ""
		}
	}
	return nil
}

// SetAmount stores the raw amount; it is checked by Validate.
func (d *Draft) SetAmount(s string) error {
	if d.AmountReadOnly() {
		return ErrAmountLocked
	}
	d.amount = strings.TrimSpace(s)
	return nil
}

func (d *Draft) SetDate(s string) { d.date = strings.TrimSpace(s) }

func (d *Draft) SetReason(s string) { d.reason = s }

// AttachImage stores data as a data URL. Only images up to MaxImageBytes
// are accepted.
func (d *Draft) AttachImage(data []byte) error {
	if len(data) == 0 {
		return &core.ValidationError{Field: core.FieldImage, Err: ErrNotAnImage}
	}
	if len(data) > MaxImageBytes {
		return &core.ValidationError{Field: core.FieldImage, Err: ErrImageTooLarge}
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return &core.ValidationError{Field: core.FieldImage, Err: ErrNotAnImage}
	}
	d.image = "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
	return nil
}

func (d *Draft) ClearImage() { d.image = "" }

// Transaction returns the draft as a normalized transaction.
func (d *Draft) Transaction() core.Transaction {
	return core.Transaction{
		Type:     d.txType,
		Amount:   core.Amount(d.amount),
		Date:     d.date,
		Reason:   d.reason,
		Category: d.category,
		Image:    d.image,
	}.Normalize()
}

// Validate reports the first failing field: amount, date, reason, then the
// category of an IN entry.
func (d *Draft) Validate() error {
	return d.Transaction().Validate()
}

// Payload builds the saveTransaction body.
func (d *Draft) Payload(user, node string) gateway.SavePayload {
	tx := d.Transaction()
	return gateway.SavePayload{
		User:     user,
		Node:     node,
		Type:     tx.Type,
		Amount:   tx.Amount,
		Date:     tx.Date,
		Reason:   tx.Reason,
		Category: tx.Category,
		Image:    tx.Image,
	}
}

// clearEntry keeps type and date for the next entry.
func (d *Draft) clearEntry() {
	d.amount = ""
	d.reason = ""
	d.category = ""
	d.image = ""
}
