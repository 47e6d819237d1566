package main

import (
	"fmt"

	"github.com/ArnaudP17000/Budget-Projet/internal/services"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Applique le schéma et s'arrête",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := openDB(); err != nil {
			return err
		}
		fmt.Println("Migrations appliquées.")
		return nil
	},
}

// alertesCmd is the batch sweep: recompute every contract alert, then mirror
// the alerted contracts into the todo list.
var alertesCmd = &cobra.Command{
	Use:   "alertes",
	Short: "Recalcule les alertes contrats et synchronise la todo list",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openDB()
		if err != nil {
			return err
		}
		contrats := services.NewContratService(conn)
		todos := services.NewTodoService(conn)

		enAlerte, err := contrats.UpdateAlertes()
		if err != nil {
			return err
		}
		alertes, err := contrats.GetContratsEnAlerte()
		if err != nil {
			return err
		}
		ajoutees, err := todos.SyncContrats(alertes)
		if err != nil {
			return err
		}
		fmt.Printf("%d contrat(s) en alerte, %d tâche(s) ajoutée(s).\n", enAlerte, ajoutees)
		return nil
	},
}

var (
	flagFromYear int
	flagToYear   int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Reporte les budgets disponibles d'un exercice vers le suivant",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagFromYear == 0 || flagToYear == 0 {
			return fmt.Errorf("--from et --to sont obligatoires")
		}
		conn, err := openDB()
		if err != nil {
			return err
		}
		budgets := services.NewBudgetService(conn)
		n, err := budgets.ReporterTous(flagFromYear, flagToYear)
		if err != nil {
			return err
		}
		fmt.Printf("%d budget(s) reporté(s) de %d vers %d.\n", n, flagFromYear, flagToYear)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Statistiques des BC de l'exercice courant",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openDB()
		if err != nil {
			return err
		}
		budgets := services.NewBudgetService(conn)
		bcs := services.NewBonCommandeService(conn, budgets)
		stats, err := bcs.Statistiques()
		if err != nil {
			return err
		}
		fmt.Printf("BC: %d au total (%d validés, %d en attente), montant cumulé %s €\n",
			stats.TotalBCs, stats.BCsValides, stats.BCsEnAttente, stats.MontantTotal.StringFixed(2))
		for nature, n := range stats.ParNature {
			fmt.Printf("  %-15s validés=%d en_attente=%d montant=%s €\n",
				nature, n.Valides, n.EnAttente, n.Montant.StringFixed(2))
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().IntVar(&flagFromYear, "from", 0, "Exercice source")
	reportCmd.Flags().IntVar(&flagToYear, "to", 0, "Exercice cible")
}
