package services

import (
	"errors"
	"testing"
)

func TestNormalizeAuthEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"lowercases and trims", "  Worker@Example.COM ", "worker@example.com"},
		{"empty", "", ""},
		{"not an address", "not-an-email", ""},
		{"valid", "leader@crew.example", "leader@crew.example"},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeAuthEmail(test.raw); got != test.want {
				t.Fatalf("NormalizeAuthEmail(%q) = %q, want %q", test.raw, got, test.want)
			}
		})
	}
}

func TestNormalizeCredentialsInput(t *testing.T) {
	t.Parallel()

	if _, _, err := NormalizeCredentialsInput("worker@example.com", "  "); !errors.Is(err, ErrAuthCredentialsInvalid) {
		t.Fatalf("expected ErrAuthCredentialsInvalid for blank password, got %v", err)
	}
	if _, _, err := NormalizeCredentialsInput("nonsense", "Secret123"); !errors.Is(err, ErrAuthCredentialsInvalid) {
		t.Fatalf("expected ErrAuthCredentialsInvalid for bad email, got %v", err)
	}

	email, password, err := NormalizeCredentialsInput(" Worker@Example.com ", "Secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if email != "worker@example.com" || password != "Secret123" {
		t.Fatalf("got (%q, %q)", email, password)
	}
}

func TestNormalizeJoinCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"uppercases and trims", " abcd2345 ", "ABCD2345", false},
		{"too short", "ABC234", "", true},
		{"too long", "ABCD23456", "", true},
		{"disallowed characters", "ABCD-234", "", true},
		{"contains zero", "ABCD0234", "", true},
		{"valid", "WXYZ7788", "WXYZ7788", false},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := NormalizeJoinCode(test.raw)
			if test.wantErr {
				if !errors.Is(err, ErrJoinCodeInvalid) {
					t.Fatalf("expected ErrJoinCodeInvalid for %q, got %v", test.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", test.raw, err)
			}
			if got != test.want {
				t.Fatalf("NormalizeJoinCode(%q) = %q, want %q", test.raw, got, test.want)
			}
		})
	}
}

func TestValidateRegistrationProfile(t *testing.T) {
	t.Parallel()

	if err := ValidateRegistrationProfile("  ", 25); !errors.Is(err, ErrRegistrationInvalid) {
		t.Fatalf("expected ErrRegistrationInvalid for blank name, got %v", err)
	}
	if err := ValidateRegistrationProfile("Young", 12); !errors.Is(err, ErrRegistrationInvalid) {
		t.Fatalf("expected ErrRegistrationInvalid for underage, got %v", err)
	}
	if err := ValidateRegistrationProfile("Methuselah", 200); !errors.Is(err, ErrRegistrationInvalid) {
		t.Fatalf("expected ErrRegistrationInvalid for implausible age, got %v", err)
	}
	if err := ValidateRegistrationProfile("Sam Visser", 17); err != nil {
		t.Fatalf("expected a 17-year-old with a name to pass, got %v", err)
	}
}
