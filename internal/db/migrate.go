package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ArnaudP17000/Budget-Projet/internal/config"
	"github.com/ArnaudP17000/Budget-Projet/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectAndMigrate ouvre le stockage et applique les migrations GORM.
// Le déploiement par défaut est un fichier sqlite embarqué; un DSN postgres://
// bascule de driver sans toucher au reste du code.
func ConnectAndMigrate(dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("DATABASE_DSN est vide, vérifiez la configuration de l'environnement")
	}
	logLevel := logger.Silent
	if config.ParseBool("DB_DEBUG", false) {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var (
		conn *gorm.DB
		err  error
	)
	lower := strings.ToLower(dsn)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		conn, err = gorm.Open(postgres.Open(dsn), cfg)
	} else {
		conn, err = gorm.Open(sqlite.Open(dsn), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("connexion BDD échouée : %w", err)
	}
	if pingErr := conn.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	if err := Migrate(conn); err != nil {
		return nil, err
	}
	if config.ParseBool("DB_SEED", false) {
		seed(conn)
	}
	return conn, nil
}

// Migrate applique le schéma de chaque modèle du coeur et vérifie ensuite la
// présence des tables indispensables.
func Migrate(conn *gorm.DB) error {
	modelsToMigrate := []interface{}{
		&models.Client{}, &models.Contact{}, &models.Contrat{},
		&models.Budget{}, &models.BonCommande{}, &models.BCCompteur{},
		&models.TodoItem{},
	}
	for _, m := range modelsToMigrate {
		if migErr := conn.AutoMigrate(m); migErr != nil {
			return fmt.Errorf("migrations échouées : automigrate %T: %w", m, migErr)
		}
	}
	for _, table := range []string{"clients", "budgets", "bons_commande", "contrats", "todo_list"} {
		if !conn.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return nil
}

// seed installe un client de démonstration pour qu'une base neuve soit utilisable
// en développement. Uniquement derrière DB_SEED.
func seed(conn *gorm.DB) {
	demo := models.Client{Nom: "Client démo", Ville: "Paris", Actif: true}
	var existing models.Client
	if err := conn.Where("nom = ?", demo.Nom).First(&existing).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		conn.Create(&demo)
	}
}
