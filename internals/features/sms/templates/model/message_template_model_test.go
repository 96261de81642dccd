package model

import (
	"reflect"
	"testing"
)

func TestExtractVariables(t *testing.T) {
	cases := []struct {
		content string
		expect  []string
	}{
		{"Bonjour {{prenom}}, séance {{jour}} à {{heure}}", []string{"prenom", "jour", "heure"}},
		{"Simple accolade {jour} à {heure}", []string{"jour", "heure"}},
		// doublons: une seule occurrence, ordre d'apparition conservé
		{"{{jour}} {{heure}} {{jour}}", []string{"jour", "heure"}},
		{"Pas de variables ici", nil},
		{"", nil},
	}
	for _, c := range cases {
		got := ExtractVariables(c.content)
		if !reflect.DeepEqual(got, c.expect) {
			t.Fatalf("ExtractVariables(%q): expected %v, got %v", c.content, c.expect, got)
		}
	}

	// {{1abc}} commence par un chiffre, {{}} est vide: ignorés. a-b donne
	// deux captures partielles, on vérifie juste qu'on ne crashe pas.
	if got := ExtractVariables("{{1abc}} {{}}"); len(got) != 0 {
		t.Fatalf("expected no variables, got %v", got)
	}
}
