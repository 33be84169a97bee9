package utils

import "testing"

func TestSanitizeCNPJ(t *testing.T) {
	if got := SanitizeCNPJ(" 11.222.333/0001-81 "); got != "11222333000181" {
		t.Fatalf("got=%q", got)
	}
}

func TestValidateCNPJ(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"11222333000181", true},
		{"11444777000161", true},
		{"33556677000160", true},
		{"11222333000182", false}, // segundo dígito errado
		{"11222333000191", false}, // primeiro dígito errado
		{"00000000000000", false},
		{"1122233300018", false},
		{"11.222.333/0001-81", false}, // precisa vir sanitizado
		{"1122233300018a", false},
	}
	for _, tc := range cases {
		if got := ValidateCNPJ(tc.in); got != tc.want {
			t.Fatalf("cnpj=%q want=%v got=%v", tc.in, tc.want, got)
		}
	}
}

func TestFormatCNPJ(t *testing.T) {
	if got := FormatCNPJ("11222333000181"); got != "11.222.333/0001-81" {
		t.Fatalf("got=%q", got)
	}
	if got := FormatCNPJ("123"); got != "123" {
		t.Fatalf("got=%q", got)
	}
}
