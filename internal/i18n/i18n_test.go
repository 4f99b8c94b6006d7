package i18n

import "testing"

func TestTablesComplete(t *testing.T) {
	ref := translations[English]
	for _, lang := range Languages {
		table, ok := translations[lang]
		if !ok {
			t.Fatalf("no table for %s", lang.Tag())
		}
		if len(table) != len(ref) {
			t.Fatalf("%s table has %d keys, english has %d", lang.Tag(), len(table), len(ref))
		}
		for key := range ref {
			if _, ok := table[key]; !ok {
				t.Fatalf("%s table missing key %q", lang.Tag(), key)
			}
		}
	}
}

func TestLookup(t *testing.T) {
	if got := English.T("status_ready"); got != "Ready" {
		t.Fatalf("english status_ready = %q", got)
	}
	if got := Arabic.T("status_ready"); got != "جاهز" {
		t.Fatalf("arabic status_ready = %q", got)
	}
	if got := English.T("no_such_key"); got != "no_such_key" {
		t.Fatalf("unknown key should echo, got %q", got)
	}
}

func TestDirection(t *testing.T) {
	if English.Direction() != "ltr" {
		t.Fatalf("english direction %q", English.Direction())
	}
	if Arabic.Direction() != "rtl" {
		t.Fatalf("arabic direction %q", Arabic.Direction())
	}
}

func TestParseAndTagRoundTrip(t *testing.T) {
	for _, lang := range Languages {
		parsed, err := ParseLanguage(lang.Tag())
		if err != nil {
			t.Fatalf("parse %q: %v", lang.Tag(), err)
		}
		if parsed != lang {
			t.Fatalf("round trip %q: got %v", lang.Tag(), parsed)
		}
	}
	if _, err := ParseLanguage("fr"); err == nil {
		t.Fatalf("expected error for unsupported tag")
	}
}

func TestHints(t *testing.T) {
	if English.Hint() != "English" || Arabic.Hint() != "Arabic" {
		t.Fatalf("hints wrong: %q %q", English.Hint(), Arabic.Hint())
	}
}
