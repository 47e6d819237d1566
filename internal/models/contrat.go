package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SeuilAlerteJours: un contrat actif expirant dans cette fenêtre déclenche
// l'alerte 6 mois.
const SeuilAlerteJours = 180

// Contrat client. Alerte6Mois est une projection recalculée à chaque écriture et
// par le balayage UpdateAlertes; la colonne n'est qu'un cache de lecture.
type Contrat struct {
	ID            uint            `gorm:"primaryKey"`
	NumeroContrat string          `gorm:"size:50;not null;uniqueIndex" validate:"required"`
	ClientID      uint            `gorm:"not null;index" validate:"required"`
	Client        Client          `gorm:"foreignKey:ClientID"`
	ContactID     *uint           `gorm:"index"`
	DateDebut     *time.Time
	DateFin       *time.Time      `gorm:"index"`
	Montant       decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Description   string
	Statut        StatutContrat `gorm:"size:20;not null;default:'Actif'"`
	Alerte6Mois   bool          `gorm:"column:alerte_6_mois;not null;default:false"`
}

func (Contrat) TableName() string { return "contrats" }

// AlerteDue reports whether the contract must carry the 6-month alert as of today:
// statut Actif and today <= date_fin <= today+180 jours. Contracts without an end
// date never alert.
func (c *Contrat) AlerteDue(today time.Time) bool {
	if c.Statut != StatutActif || c.DateFin == nil {
		return false
	}
	jour := truncateToDay(today)
	fin := truncateToDay(*c.DateFin)
	limite := jour.AddDate(0, 0, SeuilAlerteJours)
	return !fin.Before(jour) && !fin.After(limite)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
