package validation

import (
	"strings"
	"testing"
)

type pairRequest struct {
	Source      string `validate:"required,country"`
	Destination string `validate:"required,country"`
}

type outputRequest struct {
	Dir         string        `validate:"required"`
	Compression string        `validate:"oneof=none snappy"`
	Accounts    int           `validate:"min=2"`
	Pairs       []pairRequest `validate:"dive"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name       string
		req        outputRequest
		expectErr  bool
		errorField string
	}{
		{
			name:      "Valid request",
			req:       outputRequest{Dir: "data/raw", Compression: "none", Accounts: 500, Pairs: []pairRequest{{"NG", "US"}}},
			expectErr: false,
		},
		{
			name:       "Missing dir",
			req:        outputRequest{Compression: "none", Accounts: 500},
			expectErr:  true,
			errorField: "Dir",
		},
		{
			name:       "Unknown compression",
			req:        outputRequest{Dir: "d", Compression: "zstd", Accounts: 500},
			expectErr:  true,
			errorField: "Compression",
		},
		{
			name:       "Pool too small",
			req:        outputRequest{Dir: "d", Compression: "none", Accounts: 1},
			expectErr:  true,
			errorField: "Accounts",
		},
		{
			name:       "Lower-case country in pair",
			req:        outputRequest{Dir: "d", Compression: "none", Accounts: 2, Pairs: []pairRequest{{"ng", "US"}}},
			expectErr:  true,
			errorField: "Source",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(&tt.req)
			if (err != nil) != tt.expectErr {
				t.Fatalf("Struct() error = %v, expectErr %v", err, tt.expectErr)
			}
			if err != nil && !strings.Contains(err.Error(), tt.errorField) {
				t.Errorf("error %q does not name %s", err, tt.errorField)
			}
		})
	}
}

func TestStructNil(t *testing.T) {
	if err := Struct(nil); err == nil {
		t.Error("Expected error for nil value")
	}
}

func TestCountryCode(t *testing.T) {
	for _, code := range []string{"US", "NG", "ZA"} {
		if err := CountryCode(code); err != nil {
			t.Errorf("CountryCode(%q) = %v", code, err)
		}
	}
	for _, code := range []string{"", "us", "USA", "U1"} {
		if err := CountryCode(code); err == nil {
			t.Errorf("CountryCode(%q) expected error", code)
		}
	}
}

func TestIdentifier(t *testing.T) {
	for _, name := range []string{"public", "_fraud", "raw_2023"} {
		if err := Identifier(name); err != nil {
			t.Errorf("Identifier(%q) = %v", name, err)
		}
	}
	for _, name := range []string{"", "2023raw", "raw-data", "a;drop", strings.Repeat("x", 64)} {
		if err := Identifier(name); err == nil {
			t.Errorf("Identifier(%q) expected error", name)
		}
	}
}
