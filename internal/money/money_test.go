package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr error
	}{
		{input: "100000", want: "100000"},
		{input: "50.25", want: "50.25"},
		{input: " 10 ", want: "10"},
		{input: "-3.50", want: "-3.5"},
		{input: "", wantErr: ErrInvalidAmount},
		{input: "abc", wantErr: ErrInvalidAmount},
		{input: "1.234", wantErr: ErrTooManyDecimals},
	}
	for _, tt := range tests {
		got, err := Parse(tt.input)
		if tt.wantErr != nil {
			if err != tt.wantErr {
				t.Fatalf("Parse(%q): expected %v, got %v", tt.input, tt.wantErr, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error: %v", tt.input, err)
		}
		want, _ := decimal.NewFromString(tt.want)
		if !got.Equal(want) {
			t.Fatalf("Parse(%q): expected %s, got %s", tt.input, want, got)
		}
	}
}

func TestFloatRoundsToTwoPlaces(t *testing.T) {
	amount, _ := decimal.NewFromString("33.333333")
	if got := Float(amount); got != 33.33 {
		t.Fatalf("expected 33.33, got %v", got)
	}
}
