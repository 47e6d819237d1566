package models

import "time"

// TodoItem: rappel de la todo list. ContratID est une back-reference (le contrat ne
// possède pas la tâche); la synchronisation des alertes ne crée jamais de doublon
// tant qu'une tâche incomplète référence le même contrat.
type TodoItem struct {
	ID             uint   `gorm:"primaryKey"`
	Motif          string `gorm:"not null" validate:"required"`
	Description    string
	ContratID      *uint `gorm:"index"`
	DateEcheance   *time.Time
	Priorite       Priorite `gorm:"size:20;not null;default:'Normale'"`
	Complete       bool     `gorm:"not null;default:false;index"`
	DateCompletion *time.Time
}

func (TodoItem) TableName() string { return "todo_list" }
