package fixdec

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MarshalJSON implements the [json.Marshaler] interface.
// MarshalJSON always returns a record object holding the canonical digits
// and the scale, so the round trip reconstructs an equal decimal:
//
//	{"value":"5.67","scale":2}
//
// See also method [Decimal.UnmarshalJSON].
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (d Decimal) MarshalJSON() ([]byte, error) {
	text := make([]byte, 0, len(d.val())+24)
	text = append(text, `{"value":"`...)
	text = append(text, d.val()...)
	text = append(text, `","scale":`...)
	text = strconv.AppendInt(text, int64(d.scale), 10)
	text = append(text, '}')
	return text, nil
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// The following JSON forms are accepted:
//
//   - a record object {"value":"5.67","scale":2}; a missing scale means
//     [DefaultScale], exactly as construction does;
//   - a JSON string, with the scale inferred like [Parse];
//   - a raw JSON number, with the scale inferred like [Parse];
//   - null, which leaves the decimal unchanged.
//
// The value is re-validated through [New], and the deserialized decimal
// carries the default engine.
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (d *Decimal) UnmarshalJSON(text []byte) error {
	t := strings.TrimSpace(string(text))
	if t == "null" {
		return nil
	}
	var (
		v   Decimal
		err error
	)
	switch {
	case strings.HasPrefix(t, "{"):
		var rec struct {
			Value string `json:"value"`
			Scale *int   `json:"scale"`
		}
		err = json.Unmarshal(text, &rec)
		if err == nil {
			scale := DefaultScale
			if rec.Scale != nil {
				scale = *rec.Scale
			}
			v, err = New(rec.Value, scale)
		}
	case strings.HasPrefix(t, `"`):
		var s string
		err = json.Unmarshal(text, &s)
		if err == nil {
			v, err = Parse(s)
		}
	default:
		v, err = Parse(t)
	}
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", *d, err)
	}
	*d = v
	return nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// The scale is inferred from the text.
// See also constructor [Parse].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (d *Decimal) UnmarshalText(text []byte) error {
	var err error
	*d, err = Parse(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", *d, err)
	}
	return err
}

// AppendText implements the [encoding.TextAppender] interface.
// AppendText always appends the canonical digits.
// See also method [Decimal.String].
//
// [encoding.TextAppender]: https://pkg.go.dev/encoding#TextAppender
func (d Decimal) AppendText(text []byte) ([]byte, error) {
	return append(text, d.val()...), nil
}

// MarshalText implements the [encoding.TextMarshaler] interface.
// MarshalText always returns the canonical digits; the scale is not carried
// and is re-inferred on unmarshaling.
// See also method [Decimal.String].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (d Decimal) MarshalText() ([]byte, error) {
	return []byte(d.val()), nil
}

// UnmarshalBinary implements the [encoding.BinaryUnmarshaler] interface.
// See also constructor [Parse].
//
// [encoding.BinaryUnmarshaler]: https://pkg.go.dev/encoding#BinaryUnmarshaler
func (d *Decimal) UnmarshalBinary(data []byte) error {
	var err error
	*d, err = Parse(string(data))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", *d, err)
	}
	return err
}

// AppendBinary implements the [encoding.BinaryAppender] interface.
// AppendBinary always appends the canonical digits.
// See also method [Decimal.String].
//
// [encoding.BinaryAppender]: https://pkg.go.dev/encoding#BinaryAppender
func (d Decimal) AppendBinary(data []byte) ([]byte, error) {
	return append(data, d.val()...), nil
}

// MarshalBinary implements the [encoding.BinaryMarshaler] interface.
// MarshalBinary always returns the canonical digits.
// See also method [Decimal.String].
//
// [encoding.BinaryMarshaler]: https://pkg.go.dev/encoding#BinaryMarshaler
func (d Decimal) MarshalBinary() ([]byte, error) {
	return []byte(d.val()), nil
}

// UnmarshalBSONValue implements the [v2/bson.ValueUnmarshaler] interface.
// See also constructor [Parse].
//
// [v2/bson.ValueUnmarshaler]: https://pkg.go.dev/go.mongodb.org/mongo-driver/v2/bson#ValueUnmarshaler
func (d *Decimal) UnmarshalBSONValue(typ byte, data []byte) error {
	// constants are from https://bsonspec.org/spec.html
	var err error
	switch typ {
	case 2:
		*d, err = parseBSONString(data)
	case 10:
		// null, do nothing
	default:
		err = fmt.Errorf("BSON type %d is not supported", typ)
	}
	if err != nil {
		err = fmt.Errorf("converting from BSON type %d to %T: %w", typ, *d, err)
	}
	return err
}

// MarshalBSONValue implements the [v2/bson.ValueMarshaler] interface.
// MarshalBSONValue always returns a BSON string holding the canonical digits.
// See also method [Decimal.String].
//
// [v2/bson.ValueMarshaler]: https://pkg.go.dev/go.mongodb.org/mongo-driver/v2/bson#ValueMarshaler
func (d Decimal) MarshalBSONValue() (typ byte, data []byte, err error) {
	return 2, d.bsonString(), nil
}

// parseBSONString parses a BSON string to a decimal.
// The byte order of the input data must be little-endian.
func parseBSONString(data []byte) (Decimal, error) {
	if len(data) < 4 {
		return Decimal{}, fmt.Errorf("%w: invalid data length %v", ErrInvalidNumber, len(data))
	}
	u := uint32(data[0])
	u |= uint32(data[1]) << 8
	u |= uint32(data[2]) << 16
	u |= uint32(data[3]) << 24
	l := int(int32(u)) //nolint:gosec
	if l < 1 || len(data) < l+4 {
		return Decimal{}, fmt.Errorf("%w: invalid string length %v", ErrInvalidNumber, l)
	}
	if data[l+4-1] != 0 {
		return Decimal{}, fmt.Errorf("%w: invalid null terminator %v", ErrInvalidNumber, data[l+4-1])
	}
	s := string(data[4 : l+4-1])
	return Parse(s)
}

// bsonString returns the BSON string representation of the decimal.
// The byte order of the result is little-endian.
func (d Decimal) bsonString() []byte {
	s := d.String()
	l := len(s) + 1
	data := make([]byte, 4+l)
	data[0] = byte(l)
	data[1] = byte(l >> 8)
	data[2] = byte(l >> 16)
	data[3] = byte(l >> 24)
	copy(data[4:], s)
	data[4+l-1] = 0
	return data
}

// Scan implements the [sql.Scanner] interface.
// Strings and byte slices are parsed like [Parse], with the scale inferred
// from the fractional digits; int64 and float64 values are converted at
// [DefaultScale].
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (d *Decimal) Scan(value any) error {
	var err error
	switch value := value.(type) {
	case string:
		*d, err = Parse(value)
	case []byte:
		*d, err = Parse(string(value))
	case int64:
		*d, err = NewDefault(value)
	case float64:
		*d, err = NewDefault(value)
	case nil:
		err = fmt.Errorf("%T does not support null values, use %T or *%T", *d, NullDecimal{}, *d)
	default:
		err = fmt.Errorf("type %T is not supported", value)
	}
	if err != nil {
		err = fmt.Errorf("converting from %T to %T: %w", value, *d, err)
	}
	return err
}

// Value implements the [driver.Valuer] interface.
// Value always returns the canonical digits.
// See also method [Decimal.String].
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (d Decimal) Value() (driver.Value, error) {
	return d.String(), nil
}

// NullDecimal represents a decimal that can be null.
// Its zero value is null.
// NullDecimal is not thread-safe.
type NullDecimal struct {
	Decimal Decimal
	Valid   bool
}

// Scan implements the [sql.Scanner] interface.
// See also method [Decimal.Scan].
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (n *NullDecimal) Scan(value any) error {
	if value == nil {
		n.Decimal = Decimal{}
		n.Valid = false
		return nil
	}
	n.Valid = true
	return n.Decimal.Scan(value)
}

// Value implements the [driver.Valuer] interface.
// See also method [Decimal.Value].
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (n NullDecimal) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Decimal.Value()
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// See also method [Decimal.UnmarshalJSON].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (n *NullDecimal) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		n.Decimal = Decimal{}
		n.Valid = false
		return nil
	}
	n.Valid = true
	return n.Decimal.UnmarshalJSON(text)
}

// MarshalJSON implements the [json.Marshaler] interface.
// See also method [Decimal.MarshalJSON].
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (n NullDecimal) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return n.Decimal.MarshalJSON()
}

// UnmarshalBSONValue implements the [v2/bson.ValueUnmarshaler] interface.
// See also method [Decimal.UnmarshalBSONValue].
//
// [v2/bson.ValueUnmarshaler]: https://pkg.go.dev/go.mongodb.org/mongo-driver/v2/bson#ValueUnmarshaler
func (n *NullDecimal) UnmarshalBSONValue(typ byte, data []byte) error {
	if typ == 10 {
		n.Decimal = Decimal{}
		n.Valid = false
		return nil
	}
	n.Valid = true
	return n.Decimal.UnmarshalBSONValue(typ, data)
}

// MarshalBSONValue implements the [v2/bson.ValueMarshaler] interface.
// See also method [Decimal.MarshalBSONValue].
//
// [v2/bson.ValueMarshaler]: https://pkg.go.dev/go.mongodb.org/mongo-driver/v2/bson#ValueMarshaler
func (n NullDecimal) MarshalBSONValue() (typ byte, data []byte, err error) {
	if !n.Valid {
		return 10, nil, nil
	}
	return n.Decimal.MarshalBSONValue()
}
