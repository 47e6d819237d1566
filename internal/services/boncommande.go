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

// BonCommandeService owns the BC lifecycle: numbering, creation as draft, and
// the one-way Draft → Validé transition that debits the client's budget.
type BonCommandeService struct {
	DB      *gorm.DB
	Budgets *BudgetService
}

func NewBonCommandeService(db *gorm.DB, budgets *BudgetService) *BonCommandeService {
	return &BonCommandeService{DB: db, Budgets: budgets}
}

// BCFilters narrows List; nil/empty values mean "no filter".
type BCFilters struct {
	Valide *bool
	Nature models.Nature
}

func (s *BonCommandeService) List(f BCFilters) ([]models.BonCommande, error) {
	q := s.DB.Model(&models.BonCommande{})
	if f.Valide != nil {
		q = q.Where("valide = ?", *f.Valide)
	}
	if f.Nature != "" {
		q = q.Where("nature = ?", f.Nature)
	}
	var bcs []models.BonCommande
	if err := q.Order("numero_bc desc").Find(&bcs).Error; err != nil {
		return nil, fmt.Errorf("Erreur lors de la lecture des BC: %w", err)
	}
	return bcs, nil
}

func (s *BonCommandeService) GetByID(id uint) (*models.BonCommande, error) {
	var bc models.BonCommande
	if err := s.DB.First(&bc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("BC introuvable")
		}
		return nil, fmt.Errorf("Erreur lors de la lecture du BC: %w", err)
	}
	return &bc, nil
}

// GenerateNextNumero claims the next sequence number of the year and returns the
// formatted numero. The sequence lives in a dedicated per-year counter row
// claimed transactionally, so concurrent callers never observe the same value.
// The first claim of a year seeds the counter from the highest numero already
// stored for that year.
func (s *BonCommandeService) GenerateNextNumero(annee int) (string, error) {
	var numero string
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		seq, err := nextSequence(tx, annee)
		if err != nil {
			return err
		}
		numero = models.FormatNumeroBC(annee, seq)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("Erreur lors de la génération du numéro: %w", err)
	}
	return numero, nil
}

// nextSequence bumps the year's counter inside the caller's transaction.
func nextSequence(tx *gorm.DB, annee int) (int, error) {
	var compteur models.BCCompteur
	err := tx.Where("annee = ?", annee).First(&compteur).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		seq, seedErr := seedSequence(tx, annee)
		if seedErr != nil {
			return 0, seedErr
		}
		compteur = models.BCCompteur{Annee: annee, ProchaineSeq: seq + 1}
		return seq, tx.Create(&compteur).Error
	}
	if err != nil {
		return 0, err
	}
	seq := compteur.ProchaineSeq
	return seq, tx.Model(&models.BCCompteur{}).Where("annee = ?", annee).
		Update("prochaine_seq", seq+1).Error
}

// seedSequence derives the first free sequence of a year from the numeros that
// predate the counter table.
func seedSequence(tx *gorm.DB, annee int) (int, error) {
	var dernier models.BonCommande
	err := tx.Where("numero_bc LIKE ?", fmt.Sprintf("BC-%d-%%", annee)).
		Order("numero_bc desc").First(&dernier).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	if _, seq, ok := models.ParseNumeroBC(dernier.NumeroBC); ok {
		return seq + 1, nil
	}
	return 1, nil
}

// Create inserts a BC as draft. The numero is assigned from the current year's
// sequence when the caller did not provide one.
func (s *BonCommandeService) Create(bc *models.BonCommande) (uint, error) {
	if err := s.checkFields(bc); err != nil {
		return 0, err
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if bc.NumeroBC == "" {
			seq, err := nextSequence(tx, time.Now().Year())
			if err != nil {
				return fmt.Errorf("Erreur lors de la génération du numéro: %w", err)
			}
			bc.NumeroBC = models.FormatNumeroBC(time.Now().Year(), seq)
		} else {
			var count int64
			if err := tx.Model(&models.BonCommande{}).Where("numero_bc = ?", bc.NumeroBC).Count(&count).Error; err != nil {
				return fmt.Errorf("Erreur lors de la création: %w", err)
			}
			if count > 0 {
				return fmt.Errorf("Un BC avec le numéro '%s' existe déjà", bc.NumeroBC)
			}
		}
		bc.Valide = false
		bc.DateValidation = nil
		if err := tx.Create(bc).Error; err != nil {
			config.LogError(config.GetLogger(), "services", "BonCommandeService.Create", "insert bc", err)
			return fmt.Errorf("Erreur lors de la création: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return bc.ID, nil
}

// Update rewrites a draft BC. Validated BCs are immutable.
func (s *BonCommandeService) Update(bc *models.BonCommande) error {
	if bc.ID == 0 {
		return errors.New("ID BC requis")
	}
	existing, err := s.GetByID(bc.ID)
	if err != nil {
		return err
	}
	if existing.Valide {
		return errors.New("Impossible de modifier un BC validé")
	}
	if err := s.checkFields(bc); err != nil {
		return err
	}
	err = s.DB.Model(&models.BonCommande{ID: bc.ID}).Updates(map[string]any{
		"client_id":         bc.ClientID,
		"contrat_id":        bc.ContratID,
		"nature":            bc.Nature,
		"type":              bc.Type,
		"service_demandeur": bc.ServiceDemandeur,
		"montant":           bc.Montant,
		"description":       bc.Description,
	}).Error
	if err != nil {
		config.LogError(config.GetLogger(), "services", "BonCommandeService.Update", "update bc", err)
		return fmt.Errorf("Erreur lors de la mise à jour: %w", err)
	}
	return nil
}

// Delete removes a draft BC. Validated BCs are immutable.
func (s *BonCommandeService) Delete(id uint) error {
	bc, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if bc.Valide {
		return errors.New("Impossible de supprimer un BC validé")
	}
	if err := s.DB.Delete(&models.BonCommande{}, id).Error; err != nil {
		config.LogError(config.GetLogger(), "services", "BonCommandeService.Delete", "delete bc", err)
		return fmt.Errorf("Erreur lors de la suppression: %w", err)
	}
	return nil
}

// Valider flips a BC to validated and debits the matching budget. The
// availability check and the debit run in one transaction on the same budget
// row, so two concurrent validations cannot both pass the check and overspend,
// and a validated BC can never be left unimputed.
func (s *BonCommandeService) Valider(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var bc models.BonCommande
		if err := tx.First(&bc, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("BC introuvable")
			}
			return fmt.Errorf("Erreur lors de la lecture du BC: %w", err)
		}
		if bc.Valide {
			return errors.New("BC déjà validé")
		}
		if err := s.Budgets.checkDisponibilite(tx, bc.ClientID, bc.Nature, bc.Montant); err != nil {
			return fmt.Errorf("Validation impossible: %s", err.Error())
		}
		now := time.Now()
		err := tx.Model(&models.BonCommande{ID: bc.ID}).Updates(map[string]any{
			"valide":          true,
			"date_validation": now,
		}).Error
		if err != nil {
			config.LogError(config.GetLogger(), "services", "BonCommandeService.Valider", "update bc", err)
			return fmt.Errorf("Erreur lors de la validation: %w", err)
		}
		if err := s.Budgets.imputer(tx, &bc); err != nil {
			config.LogError(config.GetLogger(), "services", "BonCommandeService.Valider", "imputation budget", err)
			return fmt.Errorf("Erreur lors de la validation: %w", err)
		}
		return nil
	})
}

// BCStatistiques aggregates the current year's BCs for the dashboards.
type BCStatistiques struct {
	TotalBCs     int
	BCsValides   int
	BCsEnAttente int
	MontantTotal decimal.Decimal
	ParNature    map[models.Nature]BCStatNature
}

type BCStatNature struct {
	Valides   int
	EnAttente int
	Montant   decimal.Decimal
}

// Statistiques groups the current year's BCs by nature and validation state.
func (s *BonCommandeService) Statistiques() (BCStatistiques, error) {
	stats := BCStatistiques{
		MontantTotal: decimal.Zero,
		ParNature:    make(map[models.Nature]BCStatNature),
	}
	var bcs []models.BonCommande
	prefix := fmt.Sprintf("BC-%d-%%", time.Now().Year())
	if err := s.DB.Where("numero_bc LIKE ?", prefix).Find(&bcs).Error; err != nil {
		return stats, fmt.Errorf("Erreur lors de la lecture des BC: %w", err)
	}
	for _, bc := range bcs {
		stats.TotalBCs++
		stats.MontantTotal = stats.MontantTotal.Add(bc.Montant)
		n := stats.ParNature[bc.Nature]
		n.Montant = n.Montant.Add(bc.Montant)
		if bc.Valide {
			stats.BCsValides++
			n.Valides++
		} else {
			stats.BCsEnAttente++
			n.EnAttente++
		}
		stats.ParNature[bc.Nature] = n
	}
	return stats, nil
}

func (s *BonCommandeService) checkFields(bc *models.BonCommande) error {
	if err := validation.Struct(bc); err != nil {
		return err
	}
	if !bc.Nature.Valid() {
		return fmt.Errorf("Nature invalide. Valeurs acceptées: %s", models.JoinValues(models.NaturesBudget()))
	}
	if !bc.Type.Valid() {
		return fmt.Errorf("Type invalide. Valeurs acceptées: %s", models.JoinValues(models.TypesBC()))
	}
	if !validation.MontantPositif(bc.Montant) {
		return errors.New("Le montant doit être supérieur à zéro")
	}
	if bc.NumeroBC != "" && !models.ValideNumeroBC(bc.NumeroBC) {
		return fmt.Errorf("Numéro de BC invalide: '%s' (format attendu BC-AAAA-NNNN)", bc.NumeroBC)
	}
	return nil
}
