package services

import (
	"fmt"
	"time"

	"github.com/ArnaudP17000/Budget-Projet/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// seuilBudgetBas: un budget de l'exercice courant passe en alerte quand son
// disponible tombe sous 10% de l'initial.
var seuilBudgetBas = decimal.NewFromFloat(0.1)

// AlerteService aggregates the read-only alert views: contracts near
// expiration, budgets running low, BCs awaiting validation.
type AlerteService struct {
	DB *gorm.DB
}

func NewAlerteService(db *gorm.DB) *AlerteService { return &AlerteService{DB: db} }

// BudgetAlerte is a budget of the current year whose disponible dropped under
// the low-balance threshold.
type BudgetAlerte struct {
	Budget                models.Budget
	PourcentageDisponible decimal.Decimal
}

// Alertes is the combined snapshot the dashboards consume.
type Alertes struct {
	Contrats     []models.Contrat
	Budgets      []BudgetAlerte
	BCsEnAttente []models.BonCommande
}

func (a Alertes) Total() int {
	return len(a.Contrats) + len(a.Budgets) + len(a.BCsEnAttente)
}

func (s *AlerteService) GetAll() (Alertes, error) {
	var alertes Alertes
	var err error
	if alertes.Contrats, err = s.GetContratAlertes(); err != nil {
		return alertes, err
	}
	if alertes.Budgets, err = s.GetBudgetAlertes(); err != nil {
		return alertes, err
	}
	if alertes.BCsEnAttente, err = s.GetBCsEnAttente(); err != nil {
		return alertes, err
	}
	return alertes, nil
}

// GetContratAlertes lists the active contracts whose alert flag is set, soonest
// expiration first.
func (s *AlerteService) GetContratAlertes() ([]models.Contrat, error) {
	var contrats []models.Contrat
	err := s.DB.Where("alerte_6_mois = ? AND statut = ?", true, models.StatutActif).
		Order("date_fin asc").Find(&contrats).Error
	if err != nil {
		return nil, fmt.Errorf("Erreur lors de la lecture des alertes contrats: %w", err)
	}
	return contrats, nil
}

// GetBudgetAlertes lists the current-year budgets with less than 10% of their
// initial amount still available.
func (s *AlerteService) GetBudgetAlertes() ([]BudgetAlerte, error) {
	var budgets []models.Budget
	err := s.DB.Where("annee = ?", time.Now().Year()).
		Order("montant_disponible asc").Find(&budgets).Error
	if err != nil {
		return nil, fmt.Errorf("Erreur lors de la lecture des alertes budgets: %w", err)
	}
	alertes := make([]BudgetAlerte, 0)
	for _, b := range budgets {
		if b.MontantInitial.IsPositive() && b.MontantDisponible.Cmp(b.MontantInitial.Mul(seuilBudgetBas)) < 0 {
			alertes = append(alertes, BudgetAlerte{
				Budget:                b,
				PourcentageDisponible: b.TauxDisponible().Mul(decimal.NewFromInt(100)),
			})
		}
	}
	return alertes, nil
}

// GetBCsEnAttente lists the draft BCs still waiting for validation.
func (s *AlerteService) GetBCsEnAttente() ([]models.BonCommande, error) {
	var bcs []models.BonCommande
	err := s.DB.Where("valide = ?", false).Order("numero_bc desc").Find(&bcs).Error
	if err != nil {
		return nil, fmt.Errorf("Erreur lors de la lecture des BC en attente: %w", err)
	}
	return bcs, nil
}
