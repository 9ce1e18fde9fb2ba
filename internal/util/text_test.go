package util

import "testing"

func TestNormalizeFoldsGreekDiacritics(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Μοντέλο", "μοντελο"},
		{"Μοντελο", "μοντελο"},
		{"  Κωδικός ERP ", "κωδικοσ erp"},
		{"Ισχύς", "ισχυσ"},
		{"ΙΣΧΥΣ", "ισχυσ"},
		{"Brand   Name", "brand name"},
	}
	for _, tc := range cases {
		if got := Normalize(tc.input); got != tc.want {
			t.Fatalf("Normalize(%q)=%q want %q", tc.input, got, tc.want)
		}
	}
}

func TestNormalizeCode(t *testing.T) {
	if got := NormalizeCode(" hp-1234 "); got != "HP-1234" {
		t.Fatalf("got %q", got)
	}
	if got := NormalizeCode("hp 12/34"); got != "HP12/34" {
		t.Fatalf("got %q", got)
	}
}

func TestLooksLikeCode(t *testing.T) {
	if !LooksLikeCode("HP1234") {
		t.Fatal("HP1234 should look like a code")
	}
	if LooksLikeCode("Aqua Monoblock") {
		t.Fatal("model names with spaces are not codes")
	}
	if LooksLikeCode("12") {
		t.Fatal("too short")
	}
}

func TestDiceCoefficient(t *testing.T) {
	if got := DiceCoefficient("aqua 9", "aqua 9"); got != 1 {
		t.Fatalf("identical strings: %v", got)
	}
	if got := DiceCoefficient("aqua 9", "terra 12"); got > 0.3 {
		t.Fatalf("unrelated strings scored %v", got)
	}
	near := DiceCoefficient("aqua monoblock 9", "aqua monoblock 9kw")
	far := DiceCoefficient("aqua monoblock 9", "terra split 12")
	if near <= far {
		t.Fatalf("near=%v far=%v", near, far)
	}
}
