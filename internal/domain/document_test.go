package domain

import "testing"

func TestValidDocumentID(t *testing.T) {
	valid := []string{
		"529.982.247-25",
		"52998224725",
		"123.456.789-09",
		"111.444.777-35",
		" 935.411.347-80 ",
	}
	for _, doc := range valid {
		if !ValidDocumentID(doc) {
			t.Fatalf("expected %q to be valid", doc)
		}
	}

	invalid := []string{
		"",
		"123.456.789-00",
		"529.982.247-24",
		"111.111.111-11",
		"5299822472",
		"529982247250",
		"abc.def.ghi-jk",
	}
	for _, doc := range invalid {
		if ValidDocumentID(doc) {
			t.Fatalf("expected %q to be invalid", doc)
		}
	}
}

func TestNormalizeDigits(t *testing.T) {
	if got := NormalizeDigits("(11) 99999-1111"); got != "11999991111" {
		t.Fatalf("got=%q", got)
	}
}
