package domain

import "testing"

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"+8801712345678", "01712345678"},
		{"8801712345678", "01712345678"},
		{"01712345678", "01712345678"},
		{"+880 17 1234 5678", "01712345678"},
		{"(017) 12-345678", "01712345678"},
		{"017abc12345678", "01712345678"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizePhone(tc.in); got != tc.want {
			t.Fatalf("NormalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizePhoneIdempotent(t *testing.T) {
	for _, in := range []string{"01712345678", "+8801712345678", "garbage123"} {
		once := NormalizePhone(in)
		if twice := NormalizePhone(once); twice != once {
			t.Fatalf("NormalizePhone not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestIsValidPhone(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"01712345678", true},
		{"01312345678", true},
		{"01912345678", true},
		{"02712345678", false},
		{"01212345678", false},
		{"0171234567", false},
		{"017123456789", false},
		{"0171234567a", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsValidPhone(tc.in); got != tc.want {
			t.Fatalf("IsValidPhone(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
