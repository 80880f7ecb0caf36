package keyboard_test

import (
	"strings"
	"testing"

	"github.com/lnpeers/tplbot/internal/keyboard"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name          string
		prefix        string
		discriminator string
		want          string
		wantError     bool
	}{
		{
			name:          "with discriminator",
			prefix:        "tpl_list_publish_",
			discriminator: "3f1c2a",
			want:          "tpl_list_publish_3f1c2a",
		},
		{
			name:   "bare prefix",
			prefix: "tpl_list_create",
			want:   "tpl_list_create",
		},
		{
			name:          "uuid fits the limit",
			prefix:        "tpl_list_confirm_delete_",
			discriminator: "123e4567-e89b-12d3-a456-426614174000",
			want:          "tpl_list_confirm_delete_123e4567-e89b-12d3-a456-426614174000",
		},
		{
			name:          "exceeds limit",
			prefix:        "tpl_list_delete_",
			discriminator: strings.Repeat("x", keyboard.PayloadLimitBytes),
			wantError:     true,
		},
		{
			name:      "empty payload",
			prefix:    "",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := keyboard.Encode(tt.prefix, tt.discriminator)
			if tt.wantError {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		prefix  string
		want    string
		wantOK  bool
	}{
		{
			name:    "matching prefix",
			payload: "tpl_cur_USD",
			prefix:  "tpl_cur_",
			want:    "USD",
			wantOK:  true,
		},
		{
			name:    "wrong prefix",
			payload: "tpl_margin_+3",
			prefix:  "tpl_cur_",
			wantOK:  false,
		},
		{
			name:    "empty discriminator",
			payload: "tpl_cur_",
			prefix:  "tpl_cur_",
			want:    "",
			wantOK:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := keyboard.Decode(tt.payload, tt.prefix)
			if ok != tt.wantOK {
				t.Fatalf("Decode() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Decode() = %q, want %q", got, tt.want)
			}
		})
	}
}
