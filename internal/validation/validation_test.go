package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/ArnaudP17000/Budget-Projet/internal/models"
	"github.com/shopspring/decimal"
)

func TestRequired(t *testing.T) {
	if err := Required("valeur", "Motif"); err != nil {
		t.Errorf("champ renseigné: %v", err)
	}
	err := Required("   ", "Motif")
	if err == nil || !strings.Contains(err.Error(), "'Motif' est obligatoire") {
		t.Errorf("champ blanc: attendu message obligatoire, obtenu %v", err)
	}
}

func TestMontant(t *testing.T) {
	if !Montant(decimal.Zero) || !Montant(decimal.NewFromInt(10)) {
		t.Error("zéro et positif doivent passer")
	}
	if Montant(decimal.NewFromInt(-1)) {
		t.Error("négatif doit être rejeté")
	}
	if MontantPositif(decimal.Zero) {
		t.Error("MontantPositif doit rejeter zéro")
	}
	if !MontantPositif(decimal.NewFromFloat(0.01)) {
		t.Error("MontantPositif doit accepter un centime")
	}
}

func TestAnnee(t *testing.T) {
	now := time.Now().Year()
	if !Annee(now) || !Annee(2000) || !Annee(now+10) {
		t.Error("années de la plage rejetées à tort")
	}
	if Annee(1999) || Annee(now+11) {
		t.Error("années hors plage acceptées à tort")
	}
}

func TestDateRange(t *testing.T) {
	debut := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	fin := debut.AddDate(1, 0, 0)
	if !DateRange(&debut, &fin) || !DateRange(&debut, &debut) {
		t.Error("plage croissante ou dégénérée devrait passer")
	}
	if DateRange(&fin, &debut) {
		t.Error("fin avant début devrait être rejetée")
	}
	if !DateRange(nil, &fin) || !DateRange(&debut, nil) || !DateRange(nil, nil) {
		t.Error("bornes absentes: pas de contrainte")
	}
}

func TestEmail(t *testing.T) {
	if !Email("") {
		t.Error("email vide est optionnel")
	}
	if !Email("contact@exemple.fr") {
		t.Error("email valide rejeté")
	}
	if Email("pas-un-email") {
		t.Error("email invalide accepté")
	}
}

func TestStructFrenchMessages(t *testing.T) {
	err := Struct(&models.Budget{Annee: 2025, Nature: models.NatureFonctionnement})
	if err == nil || err.Error() != "Client requis" {
		t.Errorf("client manquant: attendu 'Client requis', obtenu %v", err)
	}

	err = Struct(&models.TodoItem{})
	if err == nil || !strings.Contains(err.Error(), "'Motif' est obligatoire") {
		t.Errorf("motif manquant: message inattendu %v", err)
	}

	err = Struct(&models.Contrat{ClientID: 1, NumeroContrat: "CT-1"})
	if err != nil {
		t.Errorf("contrat complet: %v", err)
	}
}
