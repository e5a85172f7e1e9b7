package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"maeumbaedal/internal/config"
	"maeumbaedal/internal/database"
	"maeumbaedal/internal/service"
)

func main() {
	// Define subcommands
	clearUserCmd := flag.NewFlagSet("clear-user", flag.ExitOnError)
	clearAllCmd := flag.NewFlagSet("clear-all", flag.ExitOnError)

	// clear-user flags
	clearUserID := clearUserCmd.Int64("user", 0, "User ID to clear (required)")

	// clear-all flags
	clearAllConfirm := clearAllCmd.Bool("yes", false, "Confirm wiping every user (required)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations to ensure schema is up to date
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	maintenanceService := service.NewMaintenanceService(db)

	switch os.Args[1] {
	case "clear-user":
		clearUserCmd.Parse(os.Args[2:])
		if *clearUserID == 0 {
			fmt.Println("Error: -user flag is required")
			clearUserCmd.PrintDefaults()
			os.Exit(1)
		}
		if err := maintenanceService.ClearUserData(*clearUserID); err != nil {
			log.Fatalf("Failed to clear user data: %v", err)
		}
		fmt.Printf("Cleared all data for user %d\n", *clearUserID)

	case "clear-all":
		clearAllCmd.Parse(os.Args[2:])
		if !*clearAllConfirm {
			fmt.Println("Error: -yes flag is required to wipe all user data")
			clearAllCmd.PrintDefaults()
			os.Exit(1)
		}
		if err := maintenanceService.ClearAllData(); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		fmt.Println("Cleared all user data")

	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: maintenance <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  clear-user -user <id>   Delete one user and everything attached to them")
	fmt.Println("  clear-all  -yes         Delete every user account and their data")
	fmt.Println()
	fmt.Println("The question template catalog and app settings are never touched.")
}
