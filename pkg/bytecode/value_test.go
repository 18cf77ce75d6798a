package bytecode

import "testing"

func TestValueTypes(t *testing.T) {
	tests := []struct {
		v    Value
		typ  ValueType
		name string
	}{
		{&Integer{Value: 5}, TypeInteger, "INTEGER"},
		{True, TypeBoolean, "BOOLEAN"},
		{NullValue, TypeNull, "NULL"},
	}
	for _, tt := range tests {
		if tt.v.Type() != tt.typ {
			t.Errorf("%s: Type() = %v, want %v", tt.name, tt.v.Type(), tt.typ)
		}
		if tt.v.Type().String() != tt.name {
			t.Errorf("Type().String() = %q, want %q", tt.v.Type().String(), tt.name)
		}
	}
}

func TestValueInspect(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{&Integer{Value: -17}, "-17"},
		{&Integer{Value: 0}, "0"},
		{True, "true"},
		{False, "false"},
		{NullValue, "null"},
	}
	for _, tt := range tests {
		if got := tt.v.Inspect(); got != tt.want {
			t.Errorf("Inspect() = %q, want %q", got, tt.want)
		}
	}
}

func TestBoolValueReturnsCanonicalInstances(t *testing.T) {
	if BoolValue(true) != True {
		t.Error("BoolValue(true) is not the canonical True")
	}
	if BoolValue(false) != False {
		t.Error("BoolValue(false) is not the canonical False")
	}
}
