package core

import "testing"

func TestClassify(t *testing.T) {
	rules := []ClassificationRule{
		{Name: "Mercado", Keywords: []string{"mercado", "supermercado"}, IncludedInLimit: true},
		{Name: "Transporte", Keywords: []string{"uber", "99"}, IncludedInLimit: true},
		{Name: "Assinaturas", Keywords: []string{"netflix", "spotify"}},
	}

	tests := []struct {
		name string
		desc string
		want []string
	}{
		{"single match case-insensitive", "Compra no SUPERMERCADO Pão", []string{"Mercado"}},
		{"multiple matches", "uber até o mercado", []string{"Mercado", "Transporte"}},
		{"substring match", "assinatura netflix familia", []string{"Assinaturas"}},
		{"no match", "consulta dentista", nil},
		{"empty description", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.desc, rules)
			if len(got) != len(tt.want) {
				t.Fatalf("Classify(%q) matched %d rules, want %d", tt.desc, len(got), len(tt.want))
			}
			for i, rule := range got {
				if rule.Name != tt.want[i] {
					t.Errorf("match %d = %s, want %s", i, rule.Name, tt.want[i])
				}
			}
		})
	}
}

func TestClassifyNoRules(t *testing.T) {
	if got := Classify("anything", nil); got != nil {
		t.Fatalf("expected nil for empty rule set, got %v", got)
	}
}

func TestIncludedInLimit(t *testing.T) {
	rules := []ClassificationRule{
		{Name: "Mercado", Keywords: []string{"mercado"}, IncludedInLimit: true},
		{Name: "Assinaturas", Keywords: []string{"netflix"}},
	}
	if !IncludedInLimit("feira do mercado", rules) {
		t.Error("limit-included rule should count")
	}
	if IncludedInLimit("netflix", rules) {
		t.Error("limit-excluded rule should not count")
	}
	if IncludedInLimit("sem categoria", rules) {
		t.Error("unclassified description should not count")
	}
}
