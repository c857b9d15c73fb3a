package toon

import (
	"reflect"
	"testing"
	"time"
)

func TestIsEmptyValueBasicKinds(t *testing.T) {
	tests := []struct {
		name string
		v    interface{}
		want bool
	}{
		{"empty string", "", true},
		{"non-empty string", "x", false},
		{"zero int", 0, true},
		{"nonzero int", 1, false},
		{"zero float", 0.0, true},
		{"nil slice", []int(nil), true},
		{"empty slice", []int{}, true},
		{"non-empty slice", []int{1}, false},
		{"nil map", map[string]int(nil), true},
		{"false bool", false, true},
		{"true bool", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isEmptyValue(reflect.ValueOf(tt.v))
			if got != tt.want {
				t.Errorf("isEmptyValue(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestIsEmptyValueNilPointerAndInterface(t *testing.T) {
	var p *int
	if !isEmptyValue(reflect.ValueOf(&p).Elem()) {
		t.Error("expected nil pointer to be empty")
	}
	var i interface{}
	if !isEmptyValue(reflect.ValueOf(&i).Elem()) {
		t.Error("expected nil interface to be empty")
	}
}

func TestIsEmptyValueIsZeroer(t *testing.T) {
	if !isEmptyValue(reflect.ValueOf(time.Time{})) {
		t.Error("expected zero time.Time to be empty via IsZeroer")
	}
	if isEmptyValue(reflect.ValueOf(time.Now())) {
		t.Error("expected non-zero time.Time to not be empty")
	}
}
