package db

import (
	"fmt"
	"testing"

	"github.com/ArnaudP17000/Budget-Projet/internal/models"
)

func TestConnectAndMigrateSqlite(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := ConnectAndMigrate(dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	for _, table := range []string{"clients", "contacts", "contrats", "budgets", "bons_commande", "bc_compteurs", "todo_list"} {
		if !conn.Migrator().HasTable(table) {
			t.Errorf("table manquante: %s", table)
		}
	}
}

func TestConnectRejectsEmptyDSN(t *testing.T) {
	if _, err := ConnectAndMigrate("   "); err == nil {
		t.Fatal("DSN vide: erreur attendue")
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	t.Setenv("DB_SEED", "1")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := ConnectAndMigrate(dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	seed(conn)

	var count int64
	if err := conn.Model(&models.Client{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("clients = %d, attendu 1 (seed idempotent)", count)
	}
}
