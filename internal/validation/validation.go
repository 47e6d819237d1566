// Package validation porte les règles de saisie du domaine avec leurs messages
// français. Les contrôles de présence passent par go-playground/validator (tags
// `validate` sur les modèles); les règles métier (montants, exercices, plages de
// dates) restent des fonctions dédiées.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// French field labels for validator errors. Unlisted fields fall back to the Go
// field name.
var fieldLabels = map[string]string{
	"ClientID":      "Client",
	"Annee":         "Année",
	"Nature":        "Nature",
	"Type":          "Type",
	"Motif":         "Motif",
	"NumeroContrat": "Numéro de contrat",
}

// Struct runs the `validate` tags of a model and converts the first violation to
// the domain's French message shape.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		label := fieldLabels[fe.StructField()]
		if label == "" {
			label = fe.StructField()
		}
		if label == "Client" {
			return errors.New("Client requis")
		}
		return fmt.Errorf("Le champ '%s' est obligatoire", label)
	}
	return err
}

// Required rejects empty or blank required string fields.
func Required(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("Le champ '%s' est obligatoire", fieldName)
	}
	return nil
}

// Montant accepts any non-negative amount.
func Montant(m decimal.Decimal) bool {
	return !m.IsNegative()
}

// MontantPositif accepts strictly positive amounts only.
func MontantPositif(m decimal.Decimal) bool {
	return m.IsPositive()
}

// Annee bounds budget years to a plausible window around the current year.
func Annee(annee int) bool {
	return annee >= 2000 && annee <= time.Now().Year()+10
}

// DateRange checks fin >= debut when both ends are set.
func DateRange(debut, fin *time.Time) bool {
	if debut == nil || fin == nil {
		return true
	}
	return !fin.Before(*debut)
}

// Email validates an optional email address.
func Email(email string) bool {
	if email == "" {
		return true
	}
	return validate.Var(email, "email") == nil
}
