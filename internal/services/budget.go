package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/ArnaudP17000/Budget-Projet/internal/config"
	"github.com/ArnaudP17000/Budget-Projet/internal/models"
	"github.com/ArnaudP17000/Budget-Projet/internal/validation"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetService owns the budget rows and their accounting invariant
// disponible = initial − consommé. It is stateless: every operation reloads the
// rows it touches from the injected handle.
type BudgetService struct {
	DB *gorm.DB
}

func NewBudgetService(db *gorm.DB) *BudgetService { return &BudgetService{DB: db} }

// BudgetFilters narrows List; zero values mean "no filter".
type BudgetFilters struct {
	Annee  int
	Nature models.Nature
}

func (s *BudgetService) List(f BudgetFilters) ([]models.Budget, error) {
	q := s.DB.Model(&models.Budget{})
	if f.Annee != 0 {
		q = q.Where("annee = ?", f.Annee)
	}
	if f.Nature != "" {
		q = q.Where("nature = ?", f.Nature)
	}
	var budgets []models.Budget
	if err := q.Order("annee desc").Find(&budgets).Error; err != nil {
		return nil, fmt.Errorf("Erreur lors de la lecture des budgets: %w", err)
	}
	return budgets, nil
}

func (s *BudgetService) GetByID(id uint) (*models.Budget, error) {
	var b models.Budget
	if err := s.DB.First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("Budget introuvable")
		}
		return nil, fmt.Errorf("Erreur lors de la lecture du budget: %w", err)
	}
	return &b, nil
}

func (s *BudgetService) GetByClientAnneeNature(clientID uint, annee int, nature models.Nature) (*models.Budget, error) {
	var b models.Budget
	err := s.DB.Where("client_id = ? AND annee = ? AND nature = ?", clientID, annee, nature).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Erreur lors de la lecture du budget: %w", err)
	}
	return &b, nil
}

// Create inserts a new budget row with consommé = 0 and the invariant
// established. One row per (client, année, nature).
func (s *BudgetService) Create(b *models.Budget) (uint, error) {
	if err := s.checkFields(b); err != nil {
		return 0, err
	}
	existing, err := s.GetByClientAnneeNature(b.ClientID, b.Annee, b.Nature)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, errors.New("Un budget existe déjà pour ce client, cette année et cette nature")
	}
	b.MontantConsomme = decimal.Zero
	b.RecalculeDisponible()
	if err := s.DB.Create(b).Error; err != nil {
		config.LogError(config.GetLogger(), "services", "BudgetService.Create", "insert budget", err)
		return 0, fmt.Errorf("Erreur lors de la création: %w", err)
	}
	return b.ID, nil
}

// Update re-validates the row and recomputes disponible from the stored
// consommé. It does not re-check already validated BCs against the new initial
// amount: lowering the initial below the committed total silently leaves the
// budget over-committed, which matches the historical behavior.
func (s *BudgetService) Update(b *models.Budget) error {
	if b.ID == 0 {
		return errors.New("ID budget requis")
	}
	if err := s.checkFields(b); err != nil {
		return err
	}
	existing, err := s.GetByID(b.ID)
	if err != nil {
		return err
	}
	b.MontantConsomme = existing.MontantConsomme
	b.RecalculeDisponible()
	err = s.DB.Model(&models.Budget{ID: b.ID}).Updates(map[string]any{
		"client_id":          b.ClientID,
		"annee":              b.Annee,
		"nature":             b.Nature,
		"montant_initial":    b.MontantInitial,
		"montant_disponible": b.MontantDisponible,
		"service_demandeur":  b.ServiceDemandeur,
	}).Error
	if err != nil {
		config.LogError(config.GetLogger(), "services", "BudgetService.Update", "update budget", err)
		return fmt.Errorf("Erreur lors de la modification: %w", err)
	}
	return nil
}

// Delete refuses while validated BCs match the budget's client and nature. The
// match deliberately ignores the year: a validated BC protects every exercise of
// the same client/nature pair.
func (s *BudgetService) Delete(id uint) error {
	b, err := s.GetByID(id)
	if err != nil {
		return err
	}
	var count int64
	err = s.DB.Model(&models.BonCommande{}).
		Where("client_id = ? AND nature = ? AND valide = ?", b.ClientID, b.Nature, true).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("Erreur lors de la suppression: %w", err)
	}
	if count > 0 {
		return errors.New("Impossible de supprimer: des bons de commande validés sont imputés sur ce client et cette nature")
	}
	if err := s.DB.Delete(&models.Budget{}, id).Error; err != nil {
		config.LogError(config.GetLogger(), "services", "BudgetService.Delete", "delete budget", err)
		return fmt.Errorf("Erreur lors de la suppression: %w", err)
	}
	return nil
}

// CheckDisponibilite verifies that the current-year budget of the client can
// absorb montant. The messages carry the exact amounts so the caller can act.
func (s *BudgetService) CheckDisponibilite(clientID uint, nature models.Nature, montant decimal.Decimal) error {
	return s.checkDisponibilite(s.DB, clientID, nature, montant)
}

// checkDisponibilite is the tx-scoped variant shared with BC validation so the
// availability check and the debit can live in one transaction.
func (s *BudgetService) checkDisponibilite(tx *gorm.DB, clientID uint, nature models.Nature, montant decimal.Decimal) error {
	b, err := loadBudgetCourant(tx, clientID, nature)
	if err != nil {
		return err
	}
	if b.MontantDisponible.Cmp(montant) < 0 {
		return fmt.Errorf("Budget insuffisant. Disponible: %s €, Demandé: %s €",
			b.MontantDisponible.StringFixed(2), montant.StringFixed(2))
	}
	return nil
}

// loadBudgetCourant fetches the budget of the current calendar year for the
// client and nature. The current-year matching is the documented imputation
// target for BC validation.
func loadBudgetCourant(tx *gorm.DB, clientID uint, nature models.Nature) (*models.Budget, error) {
	annee := time.Now().Year()
	var b models.Budget
	err := tx.Where("client_id = ? AND annee = ? AND nature = ?", clientID, annee, nature).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("Aucun budget %s trouvé pour ce client en %d", nature, annee)
	}
	if err != nil {
		return nil, fmt.Errorf("Erreur lors de la lecture du budget: %w", err)
	}
	return &b, nil
}

// imputer debits the current-year budget inside the caller's transaction and
// restores the invariant. Called exactly once per Draft→Validated transition.
func (s *BudgetService) imputer(tx *gorm.DB, bc *models.BonCommande) error {
	b, err := loadBudgetCourant(tx, bc.ClientID, bc.Nature)
	if err != nil {
		return err
	}
	b.MontantConsomme = b.MontantConsomme.Add(bc.Montant)
	b.RecalculeDisponible()
	return tx.Model(&models.Budget{ID: b.ID}).Updates(map[string]any{
		"montant_consomme":   b.MontantConsomme,
		"montant_disponible": b.MontantDisponible,
	}).Error
}

// Reporter carries the remaining balance of a budget into the following year as
// a fresh row (copy-forward: the source row is left untouched).
func (s *BudgetService) Reporter(budgetID uint) (uint, error) {
	src, err := s.GetByID(budgetID)
	if err != nil {
		return 0, err
	}
	if !src.MontantDisponible.IsPositive() {
		return 0, errors.New("Aucun montant disponible à reporter")
	}
	cible := src.Annee + 1
	existing, err := s.GetByClientAnneeNature(src.ClientID, cible, src.Nature)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, fmt.Errorf("Un budget existe déjà pour ce client en %d (%s)", cible, src.Nature)
	}
	report := models.Budget{
		ClientID:         src.ClientID,
		Annee:            cible,
		Nature:           src.Nature,
		MontantInitial:   src.MontantDisponible,
		ServiceDemandeur: src.ServiceDemandeur,
	}
	return s.Create(&report)
}

// ReporterTous rolls every budget of fromYear forward to toYear, skipping the
// pairs already present in the target year. Returns the number of rows created.
func (s *BudgetService) ReporterTous(fromYear, toYear int) (int, error) {
	budgets, err := s.List(BudgetFilters{Annee: fromYear})
	if err != nil {
		return 0, err
	}
	if len(budgets) == 0 {
		return 0, fmt.Errorf("Aucun budget trouvé pour l'année %d", fromYear)
	}
	reported := 0
	for _, src := range budgets {
		existing, err := s.GetByClientAnneeNature(src.ClientID, toYear, src.Nature)
		if err != nil {
			return reported, err
		}
		if existing != nil {
			continue
		}
		report := models.Budget{
			ClientID:         src.ClientID,
			Annee:            toYear,
			Nature:           src.Nature,
			MontantInitial:   src.MontantDisponible,
			ServiceDemandeur: src.ServiceDemandeur,
		}
		if _, err := s.Create(&report); err != nil {
			return reported, err
		}
		reported++
	}
	return reported, nil
}

func (s *BudgetService) checkFields(b *models.Budget) error {
	if err := validation.Struct(b); err != nil {
		return err
	}
	if !validation.Annee(b.Annee) {
		return errors.New("Année invalide")
	}
	if !b.Nature.Valid() {
		return fmt.Errorf("Nature invalide. Valeurs acceptées: %s", models.JoinValues(models.NaturesBudget()))
	}
	if !validation.Montant(b.MontantInitial) {
		return errors.New("Montant initial invalide")
	}
	return nil
}
