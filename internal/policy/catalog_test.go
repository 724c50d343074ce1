package policy

import "testing"

func TestChecklist_Goods(t *testing.T) {
	got := Checklist(MerchantTypeGoods)
	want := []Kind{KindPrivacy, KindTerms, KindShipping, KindReturns, KindRefund, KindCancellation}

	if len(got) != len(want) {
		t.Fatalf("Checklist(goods): expected %d kinds, got %d", len(want), len(got))
	}

	for i, kind := range want {
		if got[i] != kind {
			t.Errorf("Checklist(goods)[%d]: expected %q, got %q", i, kind, got[i])
		}
	}
}

func TestChecklist_Services(t *testing.T) {
	got := Checklist(MerchantTypeServices)
	want := []Kind{KindPrivacy, KindTerms, KindRefund, KindCancellation}

	if len(got) != len(want) {
		t.Fatalf("Checklist(services): expected %d kinds, got %d", len(want), len(got))
	}

	for i, kind := range want {
		if got[i] != kind {
			t.Errorf("Checklist(services)[%d]: expected %q, got %q", i, kind, got[i])
		}
	}
}

func TestRelevant(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		mt       MerchantType
		expected bool
	}{
		{"shipping relevant for goods", KindShipping, MerchantTypeGoods, true},
		{"shipping not relevant for services", KindShipping, MerchantTypeServices, false},
		{"returns not relevant for services", KindReturns, MerchantTypeServices, false},
		{"privacy relevant for goods", KindPrivacy, MerchantTypeGoods, true},
		{"privacy relevant for services", KindPrivacy, MerchantTypeServices, true},
		{"refund relevant for services", KindRefund, MerchantTypeServices, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Relevant(tc.kind, tc.mt); got != tc.expected {
				t.Errorf("Relevant(%q, %q): expected %v, got %v", tc.kind, tc.mt, tc.expected, got)
			}
		})
	}
}

func TestResolvableGroup(t *testing.T) {
	goods := ResolvableGroup(MerchantTypeGoods)
	if len(goods) != 5 {
		t.Fatalf("ResolvableGroup(goods): expected 5 kinds, got %d", len(goods))
	}

	for _, kind := range goods {
		if !Relevant(kind, MerchantTypeGoods) {
			t.Errorf("ResolvableGroup(goods) contains %q which is not relevant for goods", kind)
		}
	}

	services := ResolvableGroup(MerchantTypeServices)
	for _, kind := range services {
		if !Relevant(kind, MerchantTypeServices) {
			t.Errorf("ResolvableGroup(services) contains %q which is not relevant for services", kind)
		}
	}
}

func TestLookup_UnknownKind(t *testing.T) {
	if _, err := Lookup(Kind("warranty")); err != ErrUnknownKind {
		t.Errorf("Lookup(warranty): expected ErrUnknownKind, got %v", err)
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName(KindTerms); got != "Terms & Conditions" {
		t.Errorf("DisplayName(terms): expected %q, got %q", "Terms & Conditions", got)
	}

	if got := DisplayName(Kind("warranty")); got != "warranty" {
		t.Errorf("DisplayName(unknown): expected raw kind fallback, got %q", got)
	}
}

func TestEveryKindHasHintsAndKeywords(t *testing.T) {
	for _, def := range definitions {
		if len(def.AnchorHints) == 0 {
			t.Errorf("kind %q has no anchor hints", def.Kind)
		}

		if len(def.ContentKeywords) == 0 {
			t.Errorf("kind %q has no content keywords", def.Kind)
		}

		if len(def.AppliesTo) == 0 {
			t.Errorf("kind %q applies to no merchant type", def.Kind)
		}
	}
}
