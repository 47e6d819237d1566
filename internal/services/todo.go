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

// TodoService maintains the reminder list and materializes contract alerts into
// it. One incomplete todo per alerted contract; completing a todo re-arms the
// alert for the next sync.
type TodoService struct {
	DB *gorm.DB
}

func NewTodoService(db *gorm.DB) *TodoService { return &TodoService{DB: db} }

// List returns todos, most urgent first. complete=nil lists everything.
func (s *TodoService) List(complete *bool) ([]models.TodoItem, error) {
	q := s.DB.Model(&models.TodoItem{})
	if complete != nil {
		q = q.Where("complete = ?", *complete)
	}
	ordre := "CASE priorite WHEN 'Urgente' THEN 1 WHEN 'Haute' THEN 2 WHEN 'Normale' THEN 3 ELSE 4 END, date_echeance"
	var todos []models.TodoItem
	if err := q.Order(ordre).Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("Erreur lors de la lecture des tâches: %w", err)
	}
	return todos, nil
}

func (s *TodoService) GetByID(id uint) (*models.TodoItem, error) {
	var todo models.TodoItem
	if err := s.DB.First(&todo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("Tâche introuvable")
		}
		return nil, fmt.Errorf("Erreur lors de la lecture de la tâche: %w", err)
	}
	return &todo, nil
}

func (s *TodoService) Create(todo *models.TodoItem) (uint, error) {
	if err := s.checkFields(todo); err != nil {
		return 0, err
	}
	todo.Complete = false
	todo.DateCompletion = nil
	if err := s.DB.Create(todo).Error; err != nil {
		config.LogError(config.GetLogger(), "services", "TodoService.Create", "insert todo", err)
		return 0, fmt.Errorf("Erreur lors de la création: %w", err)
	}
	return todo.ID, nil
}

func (s *TodoService) Update(todo *models.TodoItem) error {
	if todo.ID == 0 {
		return errors.New("ID todo requis")
	}
	if err := s.checkFields(todo); err != nil {
		return err
	}
	err := s.DB.Model(&models.TodoItem{ID: todo.ID}).Updates(map[string]any{
		"motif":         todo.Motif,
		"description":   todo.Description,
		"contrat_id":    todo.ContratID,
		"date_echeance": todo.DateEcheance,
		"priorite":      todo.Priorite,
	}).Error
	if err != nil {
		config.LogError(config.GetLogger(), "services", "TodoService.Update", "update todo", err)
		return fmt.Errorf("Erreur lors de la mise à jour: %w", err)
	}
	return nil
}

// ToggleComplete flips completion and stamps or clears the completion date.
func (s *TodoService) ToggleComplete(id uint) error {
	todo, err := s.GetByID(id)
	if err != nil {
		return err
	}
	var dateCompletion *time.Time
	if !todo.Complete {
		now := time.Now()
		dateCompletion = &now
	}
	err = s.DB.Model(&models.TodoItem{ID: id}).Updates(map[string]any{
		"complete":        !todo.Complete,
		"date_completion": dateCompletion,
	}).Error
	if err != nil {
		config.LogError(config.GetLogger(), "services", "TodoService.ToggleComplete", "update todo", err)
		return fmt.Errorf("Erreur lors de la mise à jour: %w", err)
	}
	return nil
}

func (s *TodoService) Delete(id uint) error {
	if err := s.DB.Delete(&models.TodoItem{}, id).Error; err != nil {
		config.LogError(config.GetLogger(), "services", "TodoService.Delete", "delete todo", err)
		return fmt.Errorf("Erreur lors de la suppression: %w", err)
	}
	return nil
}

// SyncContrats materializes one reminder per alerted contract. A contract
// already covered by an incomplete todo is skipped, so running the sync twice
// adds nothing; a completed todo no longer covers its contract and the next
// sync re-creates one. Returns the number of todos added.
func (s *TodoService) SyncContrats(contrats []models.Contrat) (int, error) {
	added := 0
	for _, contrat := range contrats {
		var count int64
		err := s.DB.Model(&models.TodoItem{}).
			Where("contrat_id = ? AND complete = ?", contrat.ID, false).
			Count(&count).Error
		if err != nil {
			return added, fmt.Errorf("Erreur lors de la synchronisation: %w", err)
		}
		if count > 0 {
			continue
		}
		contratID := contrat.ID
		todo := models.TodoItem{
			Motif:        fmt.Sprintf("Renouvellement contrat %s", contrat.NumeroContrat),
			ContratID:    &contratID,
			DateEcheance: contrat.DateFin,
			Priorite:     models.PrioriteHaute,
		}
		if contrat.DateFin != nil {
			todo.Description = fmt.Sprintf("Le contrat %s expire le %s. Action requise.",
				contrat.NumeroContrat, contrat.DateFin.Format("2006-01-02"))
		}
		if _, err := s.Create(&todo); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

func (s *TodoService) checkFields(todo *models.TodoItem) error {
	if err := validation.Struct(todo); err != nil {
		return err
	}
	if err := validation.Required(todo.Motif, "Motif"); err != nil {
		return err
	}
	if !todo.Priorite.Valid() {
		return fmt.Errorf("Priorité invalide. Valeurs acceptées: %s", models.JoinValues(models.PrioritesTodo()))
	}
	return nil
}
