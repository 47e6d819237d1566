package models

import "github.com/shopspring/decimal"

// Budget annuel d'un client pour une nature de dépense donnée.
// Invariant comptable: MontantDisponible == MontantInitial − MontantConsomme après toute
// mutation commitée (création, imputation d'un BC, report d'exercice).
type Budget struct {
	ID                uint            `gorm:"primaryKey"`
	ClientID          uint            `gorm:"not null;uniqueIndex:idx_budget_client_annee_nature" validate:"required"`
	Client            Client          `gorm:"foreignKey:ClientID"`
	Annee             int             `gorm:"not null;uniqueIndex:idx_budget_client_annee_nature;index" validate:"required"`
	Nature            Nature          `gorm:"size:20;not null;uniqueIndex:idx_budget_client_annee_nature" validate:"required"`
	MontantInitial    decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	MontantConsomme   decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	MontantDisponible decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	ServiceDemandeur  string
}

func (Budget) TableName() string { return "budgets" }

// RecalculeDisponible rétablit l'invariant disponible = initial − consommé.
func (b *Budget) RecalculeDisponible() {
	b.MontantDisponible = b.MontantInitial.Sub(b.MontantConsomme)
}

// TauxDisponible returns disponible/initial in [0,1]; zero-initial budgets report 0.
func (b *Budget) TauxDisponible() decimal.Decimal {
	if b.MontantInitial.IsZero() {
		return decimal.Zero
	}
	return b.MontantDisponible.Div(b.MontantInitial)
}
