package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/ArnaudP17000/Budget-Projet/internal/config"
	"github.com/ArnaudP17000/Budget-Projet/internal/models"
	"github.com/ArnaudP17000/Budget-Projet/internal/validation"
	"gorm.io/gorm"
)

// ContratService maintains contracts and their 6-month expiration alert. The
// alert flag is a cached projection: it is recomputed on every write and by the
// UpdateAlertes sweep, never edited directly.
type ContratService struct {
	DB *gorm.DB
}

func NewContratService(db *gorm.DB) *ContratService { return &ContratService{DB: db} }

// ContratFilters narrows List; zero values mean "no filter".
type ContratFilters struct {
	Statut     models.StatutContrat
	AlerteOnly bool
}

func (s *ContratService) List(f ContratFilters) ([]models.Contrat, error) {
	q := s.DB.Model(&models.Contrat{})
	if f.Statut != "" {
		q = q.Where("statut = ?", f.Statut)
	}
	if f.AlerteOnly {
		q = q.Where("alerte_6_mois = ?", true)
	}
	var contrats []models.Contrat
	if err := q.Order("date_fin asc").Find(&contrats).Error; err != nil {
		return nil, fmt.Errorf("Erreur lors de la lecture des contrats: %w", err)
	}
	return contrats, nil
}

func (s *ContratService) GetByID(id uint) (*models.Contrat, error) {
	var c models.Contrat
	if err := s.DB.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("Contrat introuvable")
		}
		return nil, fmt.Errorf("Erreur lors de la lecture du contrat: %w", err)
	}
	return &c, nil
}

func (s *ContratService) Create(c *models.Contrat) (uint, error) {
	if err := s.checkFields(c); err != nil {
		return 0, err
	}
	var count int64
	if err := s.DB.Model(&models.Contrat{}).Where("numero_contrat = ?", c.NumeroContrat).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("Erreur lors de la création: %w", err)
	}
	if count > 0 {
		return 0, fmt.Errorf("Un contrat avec le numéro '%s' existe déjà", c.NumeroContrat)
	}
	c.Alerte6Mois = c.AlerteDue(time.Now())
	if err := s.DB.Create(c).Error; err != nil {
		config.LogError(config.GetLogger(), "services", "ContratService.Create", "insert contrat", err)
		return 0, fmt.Errorf("Erreur lors de la création: %w", err)
	}
	return c.ID, nil
}

func (s *ContratService) Update(c *models.Contrat) error {
	if c.ID == 0 {
		return errors.New("ID contrat requis")
	}
	if err := s.checkFields(c); err != nil {
		return err
	}
	var count int64
	if err := s.DB.Model(&models.Contrat{}).
		Where("numero_contrat = ? AND id != ?", c.NumeroContrat, c.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("Erreur lors de la mise à jour: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("Un autre contrat avec le numéro '%s' existe déjà", c.NumeroContrat)
	}
	c.Alerte6Mois = c.AlerteDue(time.Now())
	err := s.DB.Model(&models.Contrat{ID: c.ID}).Updates(map[string]any{
		"numero_contrat": c.NumeroContrat,
		"client_id":      c.ClientID,
		"contact_id":     c.ContactID,
		"date_debut":     c.DateDebut,
		"date_fin":       c.DateFin,
		"montant":        c.Montant,
		"description":    c.Description,
		"statut":         c.Statut,
		"alerte_6_mois":  c.Alerte6Mois,
	}).Error
	if err != nil {
		config.LogError(config.GetLogger(), "services", "ContratService.Update", "update contrat", err)
		return fmt.Errorf("Erreur lors de la mise à jour: %w", err)
	}
	return nil
}

// Delete refuses while BCs reference the contract.
func (s *ContratService) Delete(id uint) error {
	var count int64
	if err := s.DB.Model(&models.BonCommande{}).Where("contrat_id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("Erreur lors de la suppression: %w", err)
	}
	if count > 0 {
		return errors.New("Impossible de supprimer: des bons de commande sont associés à ce contrat")
	}
	if err := s.DB.Delete(&models.Contrat{}, id).Error; err != nil {
		config.LogError(config.GetLogger(), "services", "ContratService.Delete", "delete contrat", err)
		return fmt.Errorf("Erreur lors de la suppression: %w", err)
	}
	return nil
}

// UpdateAlertes sweeps every active contract with an end date, recomputes the
// alert flag and persists it. Full O(n) rescan, sized for this data volume.
// Returns the number of contracts currently in alert.
func (s *ContratService) UpdateAlertes() (int, error) {
	var contrats []models.Contrat
	err := s.DB.Where("statut = ? AND date_fin IS NOT NULL", models.StatutActif).Find(&contrats).Error
	if err != nil {
		return 0, fmt.Errorf("Erreur lors de la lecture des contrats: %w", err)
	}
	today := time.Now()
	alertes := 0
	for _, c := range contrats {
		alerte := c.AlerteDue(today)
		if err := s.DB.Model(&models.Contrat{ID: c.ID}).Update("alerte_6_mois", alerte).Error; err != nil {
			return alertes, fmt.Errorf("Erreur lors de la mise à jour des alertes: %w", err)
		}
		if alerte {
			alertes++
		}
	}
	return alertes, nil
}

// GetContratsEnAlerte returns the contracts whose alert flag is set.
func (s *ContratService) GetContratsEnAlerte() ([]models.Contrat, error) {
	return s.List(ContratFilters{AlerteOnly: true})
}

func (s *ContratService) checkFields(c *models.Contrat) error {
	if err := validation.Struct(c); err != nil {
		return err
	}
	if !validation.Montant(c.Montant) {
		return errors.New("Montant invalide")
	}
	if !validation.DateRange(c.DateDebut, c.DateFin) {
		return errors.New("La date de fin doit être postérieure à la date de début")
	}
	if !c.Statut.Valid() {
		return fmt.Errorf("Statut invalide. Valeurs acceptées: %s", models.JoinValues(models.StatutsContrat()))
	}
	return nil
}
