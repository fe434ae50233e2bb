package service

import "testing"

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "3", want: "3"},
		{input: " 0.25 ", want: "0.25"},
		{input: "0", wantErr: true},
		{input: "-2", wantErr: true},
		{input: "two", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseQuantity(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %s", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(dec(tt.want)) {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	if got, err := ParseDate("mfg_date", ""); err != nil || got != "" {
		t.Errorf("expected empty date to be accepted, got %q, %v", got, err)
	}
	if got, err := ParseDate("mfg_date", "2024-02-29"); err != nil || got != "2024-02-29" {
		t.Errorf("expected leap day accepted, got %q, %v", got, err)
	}
	if _, err := ParseDate("mfg_date", "2023-02-29"); !isParseError(err) {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestParseStock(t *testing.T) {
	if n, err := ParseStock(" 12 "); err != nil || n != 12 {
		t.Errorf("expected 12, got %d, %v", n, err)
	}
	if _, err := ParseStock("1.5"); !isParseError(err) {
		t.Errorf("expected parse error, got %v", err)
	}
}
