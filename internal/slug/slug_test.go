package slug

import "testing"

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"finanzas-personales":   "finanzas-personales",
		"Finanzas Personales":   "finanzas-personales",
		"  Inversión / Ahorro ": "inversion-ahorro",
		"Crédito__Fácil!!":      "credito-facil",
		"DeFi":                  "defi",
		"":                      "",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSlugifyTruncates(t *testing.T) {
	long := "aaaaaaaaaa bbbbbbbbbb cccccccccc dddddddddd eeeeeeeeee"
	got := Slugify(long)
	if len(got) > 40 {
		t.Fatalf("expected at most 40 chars, got %d (%q)", len(got), got)
	}
	if !IsSlug(got) {
		t.Fatalf("expected a valid slug, got %q", got)
	}
}

func TestIsSlug(t *testing.T) {
	if !IsSlug("crypto") || !IsSlug("finanzas-personales") {
		t.Fatalf("expected valid slugs")
	}
	if IsSlug("a") || IsSlug("Crypto") || IsSlug("with space") {
		t.Fatalf("expected invalid slugs")
	}
}
