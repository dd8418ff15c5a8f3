package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/anupamroy/invigilation-api-go/pkg/reconcile"
	"github.com/anupamroy/invigilation-api-go/pkg/store"
)

// importroster loads a faculty roster file (xlsx or csv) straight into
// the store, replacing whatever roster is currently persisted.
func main() {
	// Load .env from project root
	_ = godotenv.Load("../.env")

	if len(os.Args) < 2 {
		fmt.Println("Usage: importroster <roster.xlsx|roster.csv>")
		os.Exit(1)
	}

	table, err := reconcile.ReadFile(os.Args[1])
	if err != nil {
		fmt.Printf("Error: could not read %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}

	faculty := reconcile.RosterFromTable(table)
	if len(faculty) == 0 {
		fmt.Println("Error: no faculty rows found (is there a Faculty column?)")
		os.Exit(1)
	}

	s := store.Open()
	if err := s.ReplaceFaculty(faculty); err != nil {
		fmt.Printf("Error: could not save roster: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Imported %d faculty members\n", len(faculty))
}
