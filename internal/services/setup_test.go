package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/ArnaudP17000/Budget-Projet/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = conn.AutoMigrate(
		&models.Client{}, &models.Contact{}, &models.Contrat{},
		&models.Budget{}, &models.BonCommande{}, &models.BCCompteur{},
		&models.TodoItem{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func seedClient(t *testing.T, conn *gorm.DB, nom string) models.Client {
	t.Helper()
	client := models.Client{Nom: nom, Ville: "Paris", Actif: true}
	if err := conn.Create(&client).Error; err != nil {
		t.Fatalf("client: %v", err)
	}
	return client
}

// seedBudget creates a current-year budget with the invariant established.
func seedBudget(t *testing.T, conn *gorm.DB, clientID uint, nature models.Nature, initial int64) models.Budget {
	t.Helper()
	montant := decimal.NewFromInt(initial)
	budget := models.Budget{
		ClientID:          clientID,
		Annee:             time.Now().Year(),
		Nature:            nature,
		MontantInitial:    montant,
		MontantConsomme:   decimal.Zero,
		MontantDisponible: montant,
	}
	if err := conn.Create(&budget).Error; err != nil {
		t.Fatalf("budget: %v", err)
	}
	return budget
}

func seedContrat(t *testing.T, conn *gorm.DB, clientID uint, numero string, fin time.Time, statut models.StatutContrat) models.Contrat {
	t.Helper()
	debut := fin.AddDate(-1, 0, 0)
	contrat := models.Contrat{
		NumeroContrat: numero,
		ClientID:      clientID,
		DateDebut:     &debut,
		DateFin:       &fin,
		Montant:       decimal.NewFromInt(1000),
		Statut:        statut,
		Alerte6Mois:   false,
	}
	if err := conn.Create(&contrat).Error; err != nil {
		t.Fatalf("contrat: %v", err)
	}
	return contrat
}

func draftBC(clientID uint, nature models.Nature, montant int64) *models.BonCommande {
	return &models.BonCommande{
		ClientID: clientID,
		Nature:   nature,
		Type:     models.TypePrestation,
		Montant:  decimal.NewFromInt(montant),
	}
}

func reloadBudget(t *testing.T, conn *gorm.DB, id uint) models.Budget {
	t.Helper()
	var b models.Budget
	if err := conn.First(&b, id).Error; err != nil {
		t.Fatalf("reload budget: %v", err)
	}
	return b
}
