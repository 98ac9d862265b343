package value

import "testing"

func TestParseDataType(t *testing.T) {
	tests := []struct {
		name    string
		want    DataType
		wantErr bool
	}{
		{"xsd:integer", Integer, false},
		{"http://www.w3.org/2001/XMLSchema#integer", Integer, false},
		{"nonNegativeInteger", Integer, false},
		{"double", Float, false},
		{"boolean", Boolean, false},
		{"date", Date, false},
		{"time", Time, false},
		{"dateTime", DateTime, false},
		{"", String, false},
		{"anyURI", String, false},
		{"totallyUnknownType", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDataType(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDataType(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseDataType(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestValue_ScalarAndSet(t *testing.T) {
	s := Scalar("5")
	if s.IsSet() {
		t.Fatalf("Scalar value reports IsSet() = true")
	}
	if s.AsScalar() != "5" {
		t.Fatalf("AsScalar() = %q, want 5", s.AsScalar())
	}
	if got := s.AsSet(); len(got) != 1 || got[0] != "5" {
		t.Fatalf("AsSet() on scalar = %v, want [5]", got)
	}

	set := Set([]string{"a", "b", "c"})
	if !set.IsSet() {
		t.Fatalf("Set value reports IsSet() = false")
	}
	if set.AsScalar() != "a b c" {
		t.Fatalf("AsScalar() on set = %q, want 'a b c'", set.AsScalar())
	}
	got := set.AsSet()
	if len(got) != 3 || got[1] != "b" {
		t.Fatalf("AsSet() = %v, want [a b c]", got)
	}
}

func TestValue_ParseInteger(t *testing.T) {
	v := Scalar(" 42 ")
	i, err := v.ParseInteger()
	if err != nil {
		t.Fatalf("ParseInteger() error: %v", err)
	}
	if i != 42 {
		t.Fatalf("ParseInteger() = %d, want 42", i)
	}

	if _, err := Scalar("not-a-number").ParseInteger(); err == nil {
		t.Fatalf("ParseInteger() on non-numeric: expected error, got nil")
	}
}

func TestValue_ParseFloat(t *testing.T) {
	f, err := Scalar("3.14").ParseFloat()
	if err != nil {
		t.Fatalf("ParseFloat() error: %v", err)
	}
	if f != 3.14 {
		t.Fatalf("ParseFloat() = %v, want 3.14", f)
	}
}

func TestValue_ParseBoolean(t *testing.T) {
	b, err := Scalar("true").ParseBoolean()
	if err != nil {
		t.Fatalf("ParseBoolean() error: %v", err)
	}
	if !b {
		t.Fatalf("ParseBoolean() = false, want true")
	}
}

func TestValue_ParseTimestamp(t *testing.T) {
	tests := []struct {
		name string
		dt   DataType
		in   string
	}{
		{"date", Date, "2024-01-15"},
		{"time", Time, "14:30:00"},
		{"dateTime", DateTime, "2024-01-15T14:30:00Z"},
	}
	for _, tt := range tests {
		if _, err := Scalar(tt.in).ParseTimestamp(tt.dt); err != nil {
			t.Errorf("ParseTimestamp(%v) on %q: unexpected error: %v", tt.dt, tt.in, err)
		}
	}

	if _, err := Scalar("not-a-date").ParseTimestamp(Date); err == nil {
		t.Fatalf("ParseTimestamp() on garbage input: expected error, got nil")
	}
}
