package main

import (
	"fmt"
	"os"

	"github.com/ArnaudP17000/Budget-Projet/internal/config"
	"github.com/ArnaudP17000/Budget-Projet/internal/db"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var flagDSN string

var rootCmd = &cobra.Command{
	Use:   "budget-projet",
	Short: "Suivi des budgets clients et des bons de commande",
	Long:  "Outils d'exploitation du coeur budgétaire: migrations, balayage des alertes contrats, report d'exercice et statistiques BC.",
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDSN, "dsn", "", "Chemin du fichier sqlite ou DSN postgres (défaut: DATABASE_DSN)")
	rootCmd.AddCommand(migrateCmd, alertesCmd, reportCmd, statsCmd)
}

// openDB resolves the DSN (flag first, then env/config) and connects.
func openDB() (*gorm.DB, error) {
	dsn := flagDSN
	if dsn == "" {
		dsn = config.Load().DatabaseDSN
	}
	conn, err := db.ConnectAndMigrate(dsn)
	if err != nil {
		return nil, fmt.Errorf("ouverture de la base: %w", err)
	}
	return conn, nil
}
