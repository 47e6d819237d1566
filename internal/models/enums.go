package models

import "strings"

// Nature d'un budget: fonctionnement (OPEX) ou investissement (CAPEX).
type Nature string

const (
	NatureFonctionnement Nature = "Fonctionnement"
	NatureInvestissement Nature = "Investissement"
)

func (n Nature) Valid() bool {
	return n == NatureFonctionnement || n == NatureInvestissement
}

// NaturesBudget returns the accepted values, in display order.
func NaturesBudget() []Nature {
	return []Nature{NatureFonctionnement, NatureInvestissement}
}

// TypeBC qualifie l'objet d'un bon de commande.
type TypeBC string

const (
	TypeAssistance TypeBC = "Assistance"
	TypeFormation  TypeBC = "Formation"
	TypePrestation TypeBC = "Prestation"
	TypeMateriel   TypeBC = "Matériel"
	TypeLicences   TypeBC = "Licences"
)

func (t TypeBC) Valid() bool {
	switch t {
	case TypeAssistance, TypeFormation, TypePrestation, TypeMateriel, TypeLicences:
		return true
	}
	return false
}

func TypesBC() []TypeBC {
	return []TypeBC{TypeAssistance, TypeFormation, TypePrestation, TypeMateriel, TypeLicences}
}

// StatutContrat représente l'état d'un contrat.
type StatutContrat string

const (
	StatutActif   StatutContrat = "Actif"
	StatutExpire  StatutContrat = "Expiré"
	StatutResilie StatutContrat = "Résilié"
)

func (s StatutContrat) Valid() bool {
	switch s {
	case StatutActif, StatutExpire, StatutResilie:
		return true
	}
	return false
}

func StatutsContrat() []StatutContrat {
	return []StatutContrat{StatutActif, StatutExpire, StatutResilie}
}

// Priorite d'une tâche de la todo list.
type Priorite string

const (
	PrioriteBasse   Priorite = "Basse"
	PrioriteNormale Priorite = "Normale"
	PrioriteHaute   Priorite = "Haute"
	PrioriteUrgente Priorite = "Urgente"
)

func (p Priorite) Valid() bool {
	switch p {
	case PrioriteBasse, PrioriteNormale, PrioriteHaute, PrioriteUrgente:
		return true
	}
	return false
}

func PrioritesTodo() []Priorite {
	return []Priorite{PrioriteBasse, PrioriteNormale, PrioriteHaute, PrioriteUrgente}
}

// JoinValues renders an enum slice for the "Valeurs acceptées: ..." messages.
func JoinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
