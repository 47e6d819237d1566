package models

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// BonCommande (BC): engagement de dépense contre le budget d'un client.
// Cycle de vie binaire et irréversible: brouillon (Valide=false) puis validé.
// Un BC validé est immuable; l'imputation budgétaire a lieu au moment du passage
// à l'état validé et n'est jamais annulée.
type BonCommande struct {
	ID               uint            `gorm:"primaryKey"`
	NumeroBC         string          `gorm:"size:20;not null;uniqueIndex"`
	ClientID         uint            `gorm:"not null;index" validate:"required"`
	Client           Client          `gorm:"foreignKey:ClientID"`
	ContratID        *uint           `gorm:"index"`
	Nature           Nature          `gorm:"size:20;not null" validate:"required"`
	Type             TypeBC          `gorm:"size:20;not null" validate:"required"`
	ServiceDemandeur string
	Montant          decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Valide           bool            `gorm:"not null;default:false;index"`
	DateValidation   *time.Time
	Description      string
}

func (BonCommande) TableName() string { return "bons_commande" }

// BCCompteur porte la séquence de numérotation par exercice. La ligne est réclamée
// dans la même transaction que l'insertion du BC, ce qui rend la numérotation
// monotone même sous créations concurrentes.
type BCCompteur struct {
	Annee        int `gorm:"primaryKey"`
	ProchaineSeq int `gorm:"not null"`
}

func (BCCompteur) TableName() string { return "bc_compteurs" }

var numeroBCRe = regexp.MustCompile(`^BC-(\d{4})-(\d{4})$`)

// FormatNumeroBC renders the wire format BC-{year}-{seq:04d}.
func FormatNumeroBC(annee, seq int) string {
	return fmt.Sprintf("BC-%d-%04d", annee, seq)
}

// ParseNumeroBC splits a numero into year and sequence; ok is false when the
// value does not match the BC-YYYY-NNNN contract.
func ParseNumeroBC(numero string) (annee, seq int, ok bool) {
	m := numeroBCRe.FindStringSubmatch(numero)
	if m == nil {
		return 0, 0, false
	}
	annee, _ = strconv.Atoi(m[1])
	seq, _ = strconv.Atoi(m[2])
	return annee, seq, true
}

// ValideNumeroBC reports whether numero respects the BC-YYYY-NNNN format.
func ValideNumeroBC(numero string) bool {
	return numeroBCRe.MatchString(numero)
}
