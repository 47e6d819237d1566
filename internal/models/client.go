package models

// Client entity. Le CRUD client vit dans la couche appelante; le modèle n'existe ici
// que pour les clés étrangères et les jointures d'affichage.
type Client struct {
	ID            uint   `gorm:"primaryKey"`
	Nom           string `gorm:"not null;uniqueIndex"`
	RaisonSociale string
	Adresse       string
	CodePostal    string
	Ville         string
	Email         string
	Telephone     string
	Actif         bool `gorm:"not null;default:true"`
}

// Contact rattaché à un client.
type Contact struct {
	ID        uint  `gorm:"primaryKey"`
	ClientID  *uint  `gorm:"index"`
	Nom       string `gorm:"not null"`
	Prenom    string `gorm:"not null"`
	Fonction  string
	Telephone string
	Email     string
	Notes     string
}
