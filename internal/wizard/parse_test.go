package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmountRange(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []float64
		wantErr bool
	}{
		{name: "exact", input: "100", want: []float64{100}},
		{name: "decimal", input: "99.5", want: []float64{99.5}},
		{name: "range", input: "100-500", want: []float64{100, 500}},
		{name: "padded", input: "  100 - 500 ", want: []float64{100, 500}},
		{name: "inverted range kept as entered", input: "500-100", want: []float64{500, 100}},
		{name: "words", input: "abc", wantErr: true},
		{name: "three segments", input: "1-2-3", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "negative reads as a dangling range", input: "-5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmountRange(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMargin(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "plain", input: "3", want: 3},
		{name: "plus sign", input: "+3", want: 3},
		{name: "negative", input: "-2", want: -2},
		{name: "zero", input: "0", want: 0},
		{name: "percent suffix", input: "4%", want: 4},
		{name: "padded percent", input: " -5% ", want: -5},
		{name: "space before percent", input: " -5 % ", want: -5},
		{name: "words", input: "lots", wantErr: true},
		{name: "decimal rejected", input: "2.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMargin(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
