package fixdec

import (
	"bytes"
	"encoding/json"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestDecimal_MarshalJSON(t *testing.T) {
	tests := []struct {
		d    Decimal
		want string
	}{
		{Decimal{}, `{"value":"0","scale":0}`},
		{MustParse("5.67"), `{"value":"5.67","scale":2}`},
		{MustParse("-0.10"), `{"value":"-0.10","scale":2}`},
		{MustNew(7, 18), `{"value":"7","scale":18}`},
	}
	for _, tt := range tests {
		got, err := json.Marshal(tt.d)
		if err != nil {
			t.Errorf("json.Marshal(%q) failed: %v", tt.d, err)
			continue
		}
		if string(got) != tt.want {
			t.Errorf("json.Marshal(%q) = %s, want %s", tt.d, got, tt.want)
		}
	}
}

func TestDecimal_UnmarshalJSON(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			text      string
			want      string
			wantScale int
		}{
			{`{"value":"5.67","scale":2}`, "5.67", 2},
			{`{"scale":4,"value":"5.67"}`, "5.6700", 4},
			{`{"value":"1.005","scale":2}`, "1.00", 2},
			{`{"value":"5.67"}`, "5.670000000000000000", DefaultScale},
			{`"5.67"`, "5.67", 2},
			{`"12e-2"`, "0.12", 2},
			{`5.67`, "5.67", 2},
			{`-7`, "-7", 0},
			{`1.5e3`, "1500", 0},
		}
		for _, tt := range tests {
			var got Decimal
			if err := json.Unmarshal([]byte(tt.text), &got); err != nil {
				t.Errorf("json.Unmarshal(%s) failed: %v", tt.text, err)
				continue
			}
			if got.String() != tt.want || got.Scale() != tt.wantScale {
				t.Errorf("json.Unmarshal(%s) = %q at scale %v, want %q at scale %v", tt.text, got, got.Scale(), tt.want, tt.wantScale)
			}
		}
	})

	t.Run("null", func(t *testing.T) {
		got := MustParse("1.5")
		if err := json.Unmarshal([]byte("null"), &got); err != nil {
			t.Fatalf("json.Unmarshal(null) failed: %v", err)
		}
		if got.String() != "1.5" {
			t.Errorf("json.Unmarshal(null) = %q, want %q", got, "1.5")
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]struct {
			text string
			err  error
		}{
			"record value":  {`{"value":"abc","scale":2}`, ErrInvalidNumber},
			"record scale":  {`{"value":"5.67","scale":-1}`, ErrInvalidScale},
			"scale too big": {`{"value":"5.67","scale":2147483647}`, ErrInvalidScale},
			"string":        {`"abc"`, ErrInvalidNumber},
			"boolean":       {`true`, ErrInvalidNumber},
			"array":         {`[1]`, ErrInvalidNumber},
			"typed value":   {`{"value":5.67,"scale":2}`, nil},
			"typed scale":   {`{"value":"5.67","scale":"2"}`, nil},
			"big int scale": {`{"value":"5.67","scale":1099511627776}`, nil},
		}
		for name, tt := range tests {
			t.Run(name, func(t *testing.T) {
				var got Decimal
				err := json.Unmarshal([]byte(tt.text), &got)
				if err == nil {
					t.Errorf("json.Unmarshal(%s) did not fail", tt.text)
					return
				}
				if tt.err != nil && !errors.Is(err, tt.err) {
					t.Errorf("json.Unmarshal(%s) = %v, want %v", tt.text, err, tt.err)
				}
			})
		}
	})
}

// A JSON round trip reconstructs an equal decimal at the same scale.
func TestDecimal_JSONRoundTrip(t *testing.T) {
	tests := []Decimal{
		{},
		MustParse("0.000"),
		MustParse("5.67"),
		MustParse("-0.10"),
		MustNew(5, 18),
		MustNew("123456789.123456789", 9),
	}
	for _, d := range tests {
		text, err := json.Marshal(d)
		if err != nil {
			t.Errorf("json.Marshal(%q) failed: %v", d, err)
			continue
		}
		var got Decimal
		if err := json.Unmarshal(text, &got); err != nil {
			t.Errorf("json.Unmarshal(%s) failed: %v", text, err)
			continue
		}
		eq, err := got.Equal(d)
		if err != nil {
			t.Errorf("%q.Equal(%q) failed: %v", got, d, err)
			continue
		}
		if !eq || got.Scale() != d.Scale() {
			t.Errorf("round trip of %q = %q at scale %v, want scale %v", d, got, got.Scale(), d.Scale())
		}
	}
}

func TestDecimal_Text_Codec(t *testing.T) {
	d := MustParse("5.67")
	text, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() failed: %v", err)
	}
	if string(text) != "5.67" {
		t.Errorf("MarshalText() = %q, want %q", text, "5.67")
	}
	text, err = d.AppendText([]byte("n="))
	if err != nil {
		t.Fatalf("AppendText() failed: %v", err)
	}
	if string(text) != "n=5.67" {
		t.Errorf("AppendText(\"n=\") = %q, want %q", text, "n=5.67")
	}

	var got Decimal
	if err := got.UnmarshalText([]byte("5.67")); err != nil {
		t.Fatalf("UnmarshalText(\"5.67\") failed: %v", err)
	}
	if got != d {
		t.Errorf("UnmarshalText(\"5.67\") = %q, want %q", got, d)
	}
	if err := got.UnmarshalText([]byte("abc")); !errors.Is(err, ErrInvalidNumber) {
		t.Errorf("UnmarshalText(\"abc\") = %v, want %v", err, ErrInvalidNumber)
	}
}

func TestDecimal_Binary(t *testing.T) {
	d := MustParse("-0.10")
	data, err := d.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() failed: %v", err)
	}
	if string(data) != "-0.10" {
		t.Errorf("MarshalBinary() = %q, want %q", data, "-0.10")
	}
	data, err = d.AppendBinary(nil)
	if err != nil {
		t.Fatalf("AppendBinary() failed: %v", err)
	}

	var got Decimal
	if err := got.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary(%q) failed: %v", data, err)
	}
	if got != d {
		t.Errorf("UnmarshalBinary(%q) = %q, want %q", data, got, d)
	}
	if err := got.UnmarshalBinary([]byte("")); !errors.Is(err, ErrInvalidNumber) {
		t.Errorf("UnmarshalBinary(\"\") = %v, want %v", err, ErrInvalidNumber)
	}
}

func TestDecimal_MarshalBSONValue(t *testing.T) {
	d := MustParse("5.67")
	typ, data, err := d.MarshalBSONValue()
	if err != nil {
		t.Fatalf("MarshalBSONValue() failed: %v", err)
	}
	if typ != 2 {
		t.Errorf("MarshalBSONValue() type = %v, want 2", typ)
	}
	want := append([]byte{5, 0, 0, 0}, "5.67\x00"...)
	if !bytes.Equal(data, want) {
		t.Errorf("MarshalBSONValue() = % x, want % x", data, want)
	}
}

func TestDecimal_UnmarshalBSONValue(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		d := MustParse("5.67")
		typ, data, err := d.MarshalBSONValue()
		if err != nil {
			t.Fatalf("MarshalBSONValue() failed: %v", err)
		}
		var got Decimal
		if err := got.UnmarshalBSONValue(typ, data); err != nil {
			t.Fatalf("UnmarshalBSONValue(%v, % x) failed: %v", typ, data, err)
		}
		if got != d {
			t.Errorf("UnmarshalBSONValue(%v, % x) = %q, want %q", typ, data, got, d)
		}
	})

	t.Run("null", func(t *testing.T) {
		got := MustParse("1.5")
		if err := got.UnmarshalBSONValue(10, nil); err != nil {
			t.Fatalf("UnmarshalBSONValue(10, nil) failed: %v", err)
		}
		if got.String() != "1.5" {
			t.Errorf("UnmarshalBSONValue(10, nil) = %q, want %q", got, "1.5")
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]struct {
			typ  byte
			data []byte
			err  error
		}{
			"type":        {1, []byte{0, 0, 0, 0, 0, 0, 0, 0}, nil},
			"data length": {2, []byte{5, 0, 0}, ErrInvalidNumber},
			"zero length": {2, []byte{0, 0, 0, 0}, ErrInvalidNumber},
			"long length": {2, []byte{9, 0, 0, 0, '5', 0}, ErrInvalidNumber},
			"terminator":  {2, append([]byte{5, 0, 0, 0}, "5.671"...), ErrInvalidNumber},
			"digits":      {2, append([]byte{4, 0, 0, 0}, "abc\x00"...), ErrInvalidNumber},
		}
		for name, tt := range tests {
			t.Run(name, func(t *testing.T) {
				var got Decimal
				err := got.UnmarshalBSONValue(tt.typ, tt.data)
				if err == nil {
					t.Errorf("UnmarshalBSONValue(%v, % x) did not fail", tt.typ, tt.data)
					return
				}
				if tt.err != nil && !errors.Is(err, tt.err) {
					t.Errorf("UnmarshalBSONValue(%v, % x) = %v, want %v", tt.typ, tt.data, err, tt.err)
				}
			})
		}
	})
}

func TestDecimal_Scan(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			value     any
			want      string
			wantScale int
		}{
			{"5.67", "5.67", 2},
			{[]byte("0.10"), "0.10", 2},
			{int64(7), "7", DefaultScale},
			{float64(1.5), "1.500000000000000000", DefaultScale},
		}
		for _, tt := range tests {
			var got Decimal
			if err := got.Scan(tt.value); err != nil {
				t.Errorf("Scan(%v) failed: %v", tt.value, err)
				continue
			}
			if got.String() != tt.want || got.Scale() != tt.wantScale {
				t.Errorf("Scan(%v) = %q at scale %v, want %q at scale %v", tt.value, got, got.Scale(), tt.want, tt.wantScale)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]any{
			"null":    nil,
			"boolean": true,
			"string":  "abc",
		}
		for name, value := range tests {
			t.Run(name, func(t *testing.T) {
				var got Decimal
				if err := got.Scan(value); err == nil {
					t.Errorf("Scan(%v) did not fail", value)
				}
			})
		}
	})
}

func TestDecimal_Value(t *testing.T) {
	d := MustParse("5.67")
	got, err := d.Value()
	if err != nil {
		t.Fatalf("Value() failed: %v", err)
	}
	s, ok := got.(string)
	if !ok {
		t.Fatalf("Value() returned %T, want string", got)
	}
	if s != "5.67" {
		t.Errorf("Value() = %q, want %q", s, "5.67")
	}
}

func TestNullDecimal_Scan(t *testing.T) {
	t.Run("null", func(t *testing.T) {
		n := NullDecimal{Decimal: MustParse("1.5"), Valid: true}
		if err := n.Scan(nil); err != nil {
			t.Fatalf("Scan(nil) failed: %v", err)
		}
		if n.Valid {
			t.Errorf("Scan(nil).Valid = true, want false")
		}
		if n.Decimal != (Decimal{}) {
			t.Errorf("Scan(nil).Decimal = %q, want %q", n.Decimal, Decimal{})
		}
	})

	t.Run("value", func(t *testing.T) {
		var n NullDecimal
		if err := n.Scan("5.67"); err != nil {
			t.Fatalf("Scan(\"5.67\") failed: %v", err)
		}
		if !n.Valid {
			t.Errorf("Scan(\"5.67\").Valid = false, want true")
		}
		if n.Decimal.String() != "5.67" {
			t.Errorf("Scan(\"5.67\").Decimal = %q, want %q", n.Decimal, "5.67")
		}
	})
}

func TestNullDecimal_Value(t *testing.T) {
	n := NullDecimal{}
	got, err := n.Value()
	if err != nil {
		t.Fatalf("Value() failed: %v", err)
	}
	if got != nil {
		t.Errorf("Value() = %v, want nil", got)
	}

	n = NullDecimal{Decimal: MustParse("5.67"), Valid: true}
	got, err = n.Value()
	if err != nil {
		t.Fatalf("Value() failed: %v", err)
	}
	if got != "5.67" {
		t.Errorf("Value() = %v, want %q", got, "5.67")
	}
}

func TestNullDecimal_JSON(t *testing.T) {
	t.Run("null", func(t *testing.T) {
		n := NullDecimal{Decimal: MustParse("1.5"), Valid: true}
		if err := json.Unmarshal([]byte("null"), &n); err != nil {
			t.Fatalf("json.Unmarshal(null) failed: %v", err)
		}
		if n.Valid {
			t.Errorf("json.Unmarshal(null).Valid = true, want false")
		}
		text, err := json.Marshal(n)
		if err != nil {
			t.Fatalf("json.Marshal() failed: %v", err)
		}
		if string(text) != "null" {
			t.Errorf("json.Marshal() = %s, want null", text)
		}
	})

	t.Run("value", func(t *testing.T) {
		var n NullDecimal
		if err := json.Unmarshal([]byte(`{"value":"5.67","scale":2}`), &n); err != nil {
			t.Fatalf("json.Unmarshal() failed: %v", err)
		}
		if !n.Valid || n.Decimal.String() != "5.67" {
			t.Errorf("json.Unmarshal() = %q valid %v, want %q valid true", n.Decimal, n.Valid, "5.67")
		}
		text, err := json.Marshal(n)
		if err != nil {
			t.Fatalf("json.Marshal() failed: %v", err)
		}
		if string(text) != `{"value":"5.67","scale":2}` {
			t.Errorf("json.Marshal() = %s, want %s", text, `{"value":"5.67","scale":2}`)
		}
	})
}

func TestNullDecimal_BSON(t *testing.T) {
	n := NullDecimal{}
	typ, data, err := n.MarshalBSONValue()
	if err != nil {
		t.Fatalf("MarshalBSONValue() failed: %v", err)
	}
	if typ != 10 || data != nil {
		t.Errorf("MarshalBSONValue() = (%v, %v), want (10, nil)", typ, data)
	}

	n = NullDecimal{Decimal: MustParse("5.67"), Valid: true}
	if err := n.UnmarshalBSONValue(10, nil); err != nil {
		t.Fatalf("UnmarshalBSONValue(10, nil) failed: %v", err)
	}
	if n.Valid {
		t.Errorf("UnmarshalBSONValue(10, nil).Valid = true, want false")
	}
}

// Decimal scans query results and binds statement arguments through
// database/sql without an intermediate string column type.
func TestDecimal_SQL(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() failed: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"price"}).
		AddRow("5.67").
		AddRow(nil)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT price FROM orders")).WillReturnRows(rows)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO orders (price) VALUES ($1)")).
		WithArgs("5.67").
		WillReturnResult(sqlmock.NewResult(1, 1))

	rs, err := db.Query("SELECT price FROM orders")
	if err != nil {
		t.Fatalf("querying prices failed: %v", err)
	}
	defer rs.Close()

	var got []NullDecimal
	for rs.Next() {
		var n NullDecimal
		if err := rs.Scan(&n); err != nil {
			t.Fatalf("scanning price failed: %v", err)
		}
		got = append(got, n)
	}
	if err := rs.Err(); err != nil {
		t.Fatalf("iterating prices failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("scanned %v prices, want 2", len(got))
	}
	if !got[0].Valid || got[0].Decimal.String() != "5.67" {
		t.Errorf("first price = %q valid %v, want %q valid true", got[0].Decimal, got[0].Valid, "5.67")
	}
	if got[1].Valid {
		t.Errorf("second price valid = true, want false")
	}

	if _, err := db.Exec("INSERT INTO orders (price) VALUES ($1)", MustParse("5.67")); err != nil {
		t.Fatalf("inserting price failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
