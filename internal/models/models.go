package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Product represents a product in the catalog. Catalog data is read-only;
// products are never mutated after load.
type Product struct {
	ID            string            `json:"id"`
	Name          string            `json:"product_name"`
	Category      string            `json:"category"`
	Price         float64           `json:"price"`
	Brand         string            `json:"brand"`
	StockQuantity int               `json:"stock_quantity"`
	ReleaseDate   ReleaseDate       `json:"release_date"`
	Description   string            `json:"description"`
	Option        *SelectableOption `json:"selectible_option"`
}

// SelectableOption is a named group of discrete choices (e.g. size) a product
// requires before purchase. A product has at most one such group.
type SelectableOption struct {
	OptionType string        `json:"option_type"`
	OptionName string        `json:"option_name"`
	Values     []OptionValue `json:"option"`
}

// OptionValue is a single chosen option value. The zero value means "no option
// chosen", which is a distinct identity from every concrete value when cart
// lines are compared.
type OptionValue struct {
	Value string
	Valid bool
}

// Option returns a concrete option value.
func Option(v string) OptionValue {
	return OptionValue{Value: v, Valid: true}
}

// NoOption returns the "no option chosen" value.
func NoOption() OptionValue {
	return OptionValue{}
}

func (o OptionValue) String() string {
	if !o.Valid {
		return ""
	}
	return o.Value
}

// MarshalJSON encodes a missing option as null so persisted carts round-trip.
func (o OptionValue) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// UnmarshalJSON accepts strings, numbers (some option sets are numeric, e.g.
// shoe sizes) and null.
func (o *OptionValue) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = OptionValue{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*o = OptionValue{Value: s, Valid: true}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*o = OptionValue{Value: n.String(), Valid: true}
		return nil
	}

	return fmt.Errorf("option value must be a string, number or null, got %s", data)
}

// ReleaseDate is a product release timestamp. Catalog data carries either a
// plain date or a full RFC 3339 timestamp; both forms are accepted.
type ReleaseDate struct {
	time.Time
}

const releaseDateLayout = "2006-01-02"

// NewReleaseDate builds a ReleaseDate from a time.
func NewReleaseDate(t time.Time) ReleaseDate {
	return ReleaseDate{Time: t}
}

func (d ReleaseDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(releaseDateLayout))
}

func (d *ReleaseDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("release date must be a string: %w", err)
	}

	t, err := time.Parse(releaseDateLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
	}
	if err != nil {
		return fmt.Errorf("invalid release date %q: %w", s, err)
	}

	d.Time = t
	return nil
}

// CartItem is one cart line: a product, the chosen option value (if any) and a
// positive quantity. Two lines differing only in the chosen option are
// distinct.
type CartItem struct {
	Product
	SelectedOption OptionValue `json:"selectedOption"`
	Quantity       int         `json:"quantity"`
}

// Category is a catalog category descriptor.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Brand is a catalog brand descriptor.
type Brand struct {
	Name string `json:"name"`
}

// OptionDescriptor describes an option kind the catalog knows about.
type OptionDescriptor struct {
	OptionType string `json:"option_type"`
	OptionName string `json:"option_name"`
}

// UserData is the buyer information collected at checkout.
type UserData struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	ZipCode string `json:"zipCode"`
}

// CheckoutRequest is the body of POST /checkout: buyer data plus the full cart
// snapshot.
type CheckoutRequest struct {
	UserData  UserData   `json:"userData"`
	CartItems []CartItem `json:"cartItems"`
}

// Total returns the cart snapshot total.
func (r *CheckoutRequest) Total() float64 {
	var total float64
	for _, item := range r.CartItems {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// FormatPrice renders a price the way the storefront displays it.
func FormatPrice(p float64) string {
	return "$" + strconv.FormatFloat(p, 'f', 2, 64)
}
