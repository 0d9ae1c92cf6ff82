package models

import (
	"math"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

var (
	ErrMissingField = errors.New("missing required field")
	ErrEmptyEmail   = errors.New("customer email is empty")
	ErrNotObject    = errors.New("order must be a json object")
	ErrOutOfRange   = errors.New("number out of range")
)

// maxExponent bounds the decimal exponent of amounts and quantities so that
// rendering them stays proportional to the message size.
const maxExponent = 64

var (
	minQuantity = decimal.NewFromInt(math.MinInt)
	maxQuantity = decimal.NewFromInt(math.MaxInt)
)

// FieldError reports which field of the order could not be decoded.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return "field " + e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error { return e.Err }

// Wire keys. The first set is what the storefront publishes, the second is
// the English naming accepted from newer producers.
const (
	keyOrderID       = "pedidoId"
	keyCustomerName  = "usuarioNombre"
	keyCustomerEmail = "usuarioEmail"
	keyTotal         = "precioTotal"
	keyItems         = "items"
	keyProductName   = "nombreProducto"
	keyQuantity      = "cantidad"
	keyUnitPrice     = "precioUnitario"
	keyLineTotal     = "precioTotal"

	aliasOrderID       = "orderId"
	aliasCustomerName  = "customerName"
	aliasCustomerEmail = "customerEmail"
	aliasTotal         = "totalPrice"
	aliasProductName   = "productName"
	aliasQuantity      = "quantity"
	aliasUnitPrice     = "unitPrice"
	aliasLineTotal     = "lineTotal"
)

// DecodeOrder parses a raw queue message body into an Order.
//
// Order id and customer email are required, as is the items array (which may
// be empty). Every item needs all four of its fields. Unknown keys are
// skipped.
func DecodeOrder(body []byte) (Order, error) {
	d := jx.DecodeBytes(body)
	if d.Next() != jx.Object {
		return Order{}, ErrNotObject
	}

	var (
		o        Order
		hasID    bool
		hasEmail bool
		hasItems bool
	)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case keyOrderID, aliasOrderID:
			id, ok, err := decodeID(d)
			if err != nil {
				return &FieldError{Field: key, Err: err}
			}
			o.ID, hasID = id, ok
		case keyCustomerName, aliasCustomerName:
			s, _, err := decodeOptionalStr(d)
			if err != nil {
				return &FieldError{Field: key, Err: err}
			}
			o.CustomerName = s
		case keyCustomerEmail, aliasCustomerEmail:
			s, ok, err := decodeOptionalStr(d)
			if err != nil {
				return &FieldError{Field: key, Err: err}
			}
			o.CustomerEmail, hasEmail = s, ok
		case keyTotal, aliasTotal:
			v, _, err := decodeAmount(d)
			if err != nil {
				return &FieldError{Field: key, Err: err}
			}
			o.Total = v
		case keyItems:
			items, ok, err := decodeItems(d)
			if err != nil {
				return errors.Wrap(err, key)
			}
			o.Items, hasItems = items, ok
		default:
			return d.Skip()
		}
		return nil
	})
	if err != nil {
		return Order{}, errors.Wrap(err, "decode order")
	}

	switch {
	case !hasID:
		return Order{}, &FieldError{Field: keyOrderID, Err: ErrMissingField}
	case !hasEmail:
		return Order{}, &FieldError{Field: keyCustomerEmail, Err: ErrMissingField}
	case o.CustomerEmail == "":
		return Order{}, &FieldError{Field: keyCustomerEmail, Err: ErrEmptyEmail}
	case !hasItems:
		return Order{}, &FieldError{Field: keyItems, Err: ErrMissingField}
	}
	return o, nil
}

func decodeItems(d *jx.Decoder) ([]LineItem, bool, error) {
	if d.Next() == jx.Null {
		return nil, false, d.Null()
	}
	items := []LineItem{}
	i := 0
	err := d.Arr(func(d *jx.Decoder) error {
		it, err := decodeItem(d)
		if err != nil {
			return errors.Wrapf(err, "item %d", i)
		}
		items = append(items, it)
		i++
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return items, true, nil
}

func decodeItem(d *jx.Decoder) (LineItem, error) {
	if d.Next() != jx.Object {
		return LineItem{}, ErrNotObject
	}
	var (
		it                                 LineItem
		hasName, hasQty, hasUnit, hasTotal bool
	)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case keyProductName, aliasProductName:
			it.ProductName, hasName, err = decodeOptionalStr(d)
		case keyQuantity, aliasQuantity:
			it.Quantity, hasQty, err = decodeQuantity(d)
		case keyUnitPrice, aliasUnitPrice:
			it.UnitPrice, hasUnit, err = decodeAmount(d)
		case keyLineTotal, aliasLineTotal:
			it.LineTotal, hasTotal, err = decodeAmount(d)
		default:
			return d.Skip()
		}
		if err != nil {
			return &FieldError{Field: key, Err: err}
		}
		return nil
	})
	if err != nil {
		return LineItem{}, err
	}

	switch {
	case !hasName:
		return LineItem{}, &FieldError{Field: keyProductName, Err: ErrMissingField}
	case !hasQty:
		return LineItem{}, &FieldError{Field: keyQuantity, Err: ErrMissingField}
	case !hasUnit:
		return LineItem{}, &FieldError{Field: keyUnitPrice, Err: ErrMissingField}
	case !hasTotal:
		return LineItem{}, &FieldError{Field: keyLineTotal, Err: ErrMissingField}
	}
	return it, nil
}

// decodeID keeps the identifier as literal text whether it arrives as a JSON
// string or a JSON number.
func decodeID(d *jx.Decoder) (string, bool, error) {
	switch d.Next() {
	case jx.Null:
		return "", false, d.Null()
	case jx.String:
		s, err := d.Str()
		return s, err == nil, err
	case jx.Number:
		n, err := d.Num()
		if err != nil {
			return "", false, err
		}
		return n.String(), true, nil
	default:
		return "", false, errors.Errorf("unexpected %s", d.Next())
	}
}

func decodeOptionalStr(d *jx.Decoder) (string, bool, error) {
	switch d.Next() {
	case jx.Null:
		return "", false, d.Null()
	case jx.String:
		s, err := d.Str()
		return s, err == nil, err
	default:
		return "", false, errors.Errorf("unexpected %s, want string", d.Next())
	}
}

func decodeQuantity(d *jx.Decoder) (int, bool, error) {
	switch d.Next() {
	case jx.Null:
		return 0, false, d.Null()
	case jx.Number:
		n, err := d.Num()
		if err != nil {
			return 0, false, err
		}
		v, err := parseDecimal(n.String())
		if err != nil {
			return 0, false, errors.Wrap(err, "parse quantity")
		}
		if v.LessThan(minQuantity) || v.GreaterThan(maxQuantity) {
			return 0, false, errors.Wrapf(ErrOutOfRange, "quantity %s", n.String())
		}
		if !v.IsInteger() {
			return 0, false, errors.Errorf("quantity %s is not an integer", n.String())
		}
		return int(v.IntPart()), true, nil
	default:
		return 0, false, errors.Errorf("unexpected %s, want integer", d.Next())
	}
}

// decodeAmount accepts a JSON number or a numeric string. Precision is kept
// as written; no rounding is applied.
func decodeAmount(d *jx.Decoder) (decimal.Decimal, bool, error) {
	var raw string
	switch d.Next() {
	case jx.Null:
		return decimal.Zero, false, d.Null()
	case jx.Number:
		n, err := d.Num()
		if err != nil {
			return decimal.Zero, false, err
		}
		raw = n.String()
	case jx.String:
		s, err := d.Str()
		if err != nil {
			return decimal.Zero, false, err
		}
		raw = s
	default:
		return decimal.Zero, false, errors.Errorf("unexpected %s, want number", d.Next())
	}
	v, err := parseDecimal(raw)
	if err != nil {
		return decimal.Zero, false, errors.Wrap(err, "parse amount")
	}
	return v, true, nil
}

func parseDecimal(raw string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if exp := v.Exponent(); exp > maxExponent || exp < -maxExponent {
		return decimal.Zero, errors.Wrapf(ErrOutOfRange, "%s", raw)
	}
	return v, nil
}
