package main

import (
	"bufio"
	"flag"
	"fmt"
	"law_folder_app_go/config"
	"law_folder_app_go/db"
	"law_folder_app_go/models"
	"law_folder_app_go/services"
	"log"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"
)

func main() {
	role := flag.String("role", models.RoleLawyer, "user role: admin, lawyer or staff")
	flag.Parse()

	if !models.IsValidRole(*role) {
		log.Fatalf("Invalid role %q: use admin, lawyer or staff", *role)
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(db.DB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New User ===")
	fmt.Println()

	fmt.Print("Full name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)

	fmt.Print("Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.ToLower(strings.TrimSpace(email))

	// Get password securely
	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}
	password := string(passwordBytes)
	fmt.Println() // New line after password input

	if name == "" || email == "" || password == "" {
		log.Fatal("Name, email, and password are required")
	}
	if err := services.ValidatePassword(password); err != nil {
		log.Fatalf("Weak password: %v", err)
	}

	var existing int64
	db.DB.Model(&models.User{}).Where("email = ?", email).Count(&existing)
	if existing > 0 {
		log.Fatalf("User with email %s already exists", email)
	}

	user, err := services.CreateUser(db.DB, name, email, password, *role)
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Println()
	fmt.Println("✓ User created successfully!")
	fmt.Printf("  ID: %s\n", user.ID)
	fmt.Printf("  Name: %s\n", user.FullName)
	fmt.Printf("  Email: %s\n", user.Email)
	fmt.Printf("  Role: %s\n", user.Role)
	fmt.Println()
	fmt.Printf("The user can now log in at %s/api/login\n", cfg.AppURL)
}
