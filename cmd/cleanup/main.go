package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"homeworkhub/internal/config"
	"homeworkhub/internal/entity"
	"homeworkhub/internal/repository"
	"homeworkhub/internal/storage"
)

// Retention tool: trims old assignments so the collection blob stays
// small. Practice questions generated from a removed assignment are
// kept, they still belong to the child.
func main() {
	keep := flag.Int("keep", 10, "Number of most recent assignments to keep per child")
	dryRun := flag.Bool("dry-run", false, "Report what would be deleted without deleting")
	flag.Parse()

	if *keep < 0 {
		fmt.Println("Error: -keep must not be negative")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg := config.Load()
	store, err := storage.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	childRepo := repository.NewChildRepository(store)
	assignmentRepo := repository.NewAssignmentRepository(store)

	children, err := childRepo.List(entity.DefaultSort, 0)
	if err != nil {
		log.Fatalf("Failed to list children: %v", err)
	}

	totalDeleted := 0
	for _, child := range children {
		assignments, err := assignmentRepo.ListForChild(child.ID)
		if err != nil {
			log.Fatalf("Failed to list assignments for %s: %v", child.Name, err)
		}
		if len(assignments) <= *keep {
			continue
		}

		for _, old := range assignments[*keep:] {
			if *dryRun {
				fmt.Printf("Would delete %q (%s, %s)\n", old.Title, child.Name, old.CreatedDate.Format("2006-01-02"))
				totalDeleted++
				continue
			}
			if err := assignmentRepo.Delete(old.ID); err != nil {
				log.Fatalf("Failed to delete assignment %s: %v", old.ID, err)
			}
			fmt.Printf("Deleted %q (%s, %s)\n", old.Title, child.Name, old.CreatedDate.Format("2006-01-02"))
			totalDeleted++
		}
	}

	if *dryRun {
		fmt.Printf("Dry run: %d assignments would be deleted\n", totalDeleted)
	} else {
		fmt.Printf("Deleted %d assignments\n", totalDeleted)
	}
}
