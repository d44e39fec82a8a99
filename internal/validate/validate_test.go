package validate

import "testing"

func TestItemName(t *testing.T) {
	if _, ok := ItemName("abc"); ok {
		t.Error("three characters must fail")
	}
	if _, ok := ItemName("  abc  "); ok {
		t.Error("padding must not rescue a short name")
	}
	got, ok := ItemName("  Projector  ")
	if !ok || got != "Projector" {
		t.Errorf("got %q, ok=%v", got, ok)
	}
}

func TestUsername(t *testing.T) {
	if _, ok := Username("ab"); ok {
		t.Error("two characters must fail")
	}
	if got, ok := Username("andi"); !ok || got != "andi" {
		t.Errorf("got %q, ok=%v", got, ok)
	}
}

func TestSlug(t *testing.T) {
	good := []string{"tools", "lab-tools", "a1-b2-c3"}
	for _, s := range good {
		if _, ok := Slug(s); !ok {
			t.Errorf("%q rejected", s)
		}
	}
	bad := []string{"", "Lab Tools", "UPPER", "double--dash", "-leading", "trailing-"}
	for _, s := range bad {
		if _, ok := Slug(s); ok {
			t.Errorf("%q accepted", s)
		}
	}
}

func TestStock(t *testing.T) {
	if n, ok := Stock(" 12 "); !ok || n != 12 {
		t.Errorf("got %d, ok=%v", n, ok)
	}
	if _, ok := Stock("-1"); ok {
		t.Error("negative stock accepted")
	}
	if _, ok := Stock("many"); ok {
		t.Error("non-numeric stock accepted")
	}
}

func TestID(t *testing.T) {
	if n, ok := ID("7"); !ok || n != 7 {
		t.Errorf("got %d, ok=%v", n, ok)
	}
	for _, s := range []string{"0", "-3", "x", ""} {
		if _, ok := ID(s); ok {
			t.Errorf("%q accepted", s)
		}
	}
}

func TestSKU(t *testing.T) {
	if _, ok := SKU("ITM_001-a"); !ok {
		t.Error("valid sku rejected")
	}
	for _, s := range []string{"", "has space", "semi;colon"} {
		if _, ok := SKU(s); ok {
			t.Errorf("%q accepted", s)
		}
	}
}
