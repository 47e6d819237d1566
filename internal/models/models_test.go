package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatNumeroBC(t *testing.T) {
	tests := []struct {
		annee int
		seq   int
		want  string
	}{
		{2025, 1, "BC-2025-0001"},
		{2025, 42, "BC-2025-0042"},
		{2024, 9999, "BC-2024-9999"},
	}
	for _, tt := range tests {
		if got := FormatNumeroBC(tt.annee, tt.seq); got != tt.want {
			t.Errorf("FormatNumeroBC(%d, %d) = %q, want %q", tt.annee, tt.seq, got, tt.want)
		}
	}
}

func TestParseNumeroBC(t *testing.T) {
	annee, seq, ok := ParseNumeroBC("BC-2025-0042")
	if !ok || annee != 2025 || seq != 42 {
		t.Errorf("ParseNumeroBC = (%d, %d, %v), want (2025, 42, true)", annee, seq, ok)
	}
	for _, invalide := range []string{"", "BC-25-0001", "BC-2025-1", "FA-2025-0001", "BC-2025-0001x"} {
		if _, _, ok := ParseNumeroBC(invalide); ok {
			t.Errorf("ParseNumeroBC(%q) accepté, attendu rejet", invalide)
		}
	}
}

func TestValideNumeroBC(t *testing.T) {
	if !ValideNumeroBC("BC-2025-0001") {
		t.Error("BC-2025-0001 devrait être valide")
	}
	if ValideNumeroBC("BC-2025-001") {
		t.Error("séquence à 3 chiffres devrait être rejetée")
	}
}

func TestBudgetRecalculeDisponible(t *testing.T) {
	b := Budget{
		MontantInitial:  decimal.NewFromInt(1000),
		MontantConsomme: decimal.NewFromInt(350),
	}
	b.RecalculeDisponible()
	if !b.MontantDisponible.Equal(decimal.NewFromInt(650)) {
		t.Errorf("disponible = %s, want 650", b.MontantDisponible)
	}
}

func TestBudgetTauxDisponible(t *testing.T) {
	b := Budget{
		MontantInitial:    decimal.NewFromInt(1000),
		MontantDisponible: decimal.NewFromInt(250),
	}
	if taux := b.TauxDisponible(); !taux.Equal(decimal.NewFromFloat(0.25)) {
		t.Errorf("taux = %s, want 0.25", taux)
	}
	vide := Budget{}
	if !vide.TauxDisponible().IsZero() {
		t.Error("taux d'un budget sans initial doit valoir 0")
	}
}

func TestContratAlerteDue(t *testing.T) {
	today := time.Date(2025, 3, 1, 15, 30, 0, 0, time.UTC)
	jour := func(offset int) *time.Time {
		d := today.AddDate(0, 0, offset)
		return &d
	}
	tests := []struct {
		name   string
		statut StatutContrat
		fin    *time.Time
		want   bool
	}{
		{"actif dans la fenêtre", StatutActif, jour(170), true},
		{"actif hors fenêtre", StatutActif, jour(200), false},
		{"borne basse aujourd'hui", StatutActif, jour(0), true},
		{"borne haute 180 jours", StatutActif, jour(180), true},
		{"juste après la borne", StatutActif, jour(181), false},
		{"échéance passée", StatutActif, jour(-1), false},
		{"résilié dans la fenêtre", StatutResilie, jour(30), false},
		{"expiré dans la fenêtre", StatutExpire, jour(30), false},
		{"sans date de fin", StatutActif, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Contrat{Statut: tt.statut, DateFin: tt.fin}
			if got := c.AlerteDue(today); got != tt.want {
				t.Errorf("AlerteDue = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnumsValidAndJoin(t *testing.T) {
	if !NatureFonctionnement.Valid() || Nature("Placement").Valid() {
		t.Error("validation de Nature incohérente")
	}
	if !TypeMateriel.Valid() || TypeBC("Conseil").Valid() {
		t.Error("validation de TypeBC incohérente")
	}
	if !StatutResilie.Valid() || StatutContrat("Suspendu").Valid() {
		t.Error("validation de StatutContrat incohérente")
	}
	if !PrioriteUrgente.Valid() || Priorite("Critique").Valid() {
		t.Error("validation de Priorite incohérente")
	}
	if got := JoinValues(NaturesBudget()); got != "Fonctionnement, Investissement" {
		t.Errorf("JoinValues = %q", got)
	}
}
