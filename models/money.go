package models

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Money is an exact decimal amount. It is stored as BSON Decimal128 and rendered
// as a JSON number.
type Money struct {
	Value decimal.Decimal
}

func NewMoney(value decimal.Decimal) Money { return Money{Value: value} }

func MoneyFromInt(value int64) Money { return Money{Value: decimal.NewFromInt(value)} }

// ParseMoney parses a decimal literal such as "1250.75".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{Value: d}, nil
}

func (m Money) Add(o Money) Money  { return Money{Value: m.Value.Add(o.Value)} }
func (m Money) Sub(o Money) Money  { return Money{Value: m.Value.Sub(o.Value)} }
func (m Money) Equal(o Money) bool { return m.Value.Equal(o.Value) }
func (m Money) IsZero() bool       { return m.Value.IsZero() }
func (m Money) IsNegative() bool   { return m.Value.IsNegative() }
func (m Money) String() string     { return m.Value.String() }

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Value.String()), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	return m.Value.UnmarshalJSON(data)
}

// MarshalBSONValue writes the amount as Decimal128.
func (m Money) MarshalBSONValue() (bsontype.Type, []byte, error) {
	d, err := primitive.ParseDecimal128(m.Value.String())
	if err != nil {
		return 0, nil, fmt.Errorf("encode amount %s: %w", m.Value.String(), err)
	}
	return bson.MarshalValue(d)
}

// UnmarshalBSONValue accepts Decimal128 as well as the numeric and string
// encodings older documents were written with.
func (m *Money) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Decimal128:
		d, err := decimal.NewFromString(raw.Decimal128().String())
		if err != nil {
			return fmt.Errorf("decode decimal128 amount: %w", err)
		}
		m.Value = d
	case bsontype.Double:
		m.Value = decimal.NewFromFloat(raw.Double())
	case bsontype.Int32:
		m.Value = decimal.NewFromInt32(raw.Int32())
	case bsontype.Int64:
		m.Value = decimal.NewFromInt(raw.Int64())
	case bsontype.String:
		d, err := decimal.NewFromString(raw.StringValue())
		if err != nil {
			return fmt.Errorf("decode string amount: %w", err)
		}
		m.Value = d
	case bsontype.Null, bsontype.Undefined:
		m.Value = decimal.Zero
	default:
		return fmt.Errorf("cannot decode amount from BSON %s", t)
	}
	return nil
}
