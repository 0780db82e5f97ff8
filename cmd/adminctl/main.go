package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"techfix-hub/internal/auth"
	"techfix-hub/internal/config"
	"techfix-hub/internal/data"
	"techfix-hub/internal/kv"
	"techfix-hub/internal/logging"
	"techfix-hub/internal/model"
	"techfix-hub/internal/notify"
)

// adminctl заводит или сбрасывает учётную запись администратора.
// Пароль вводится с терминала без эха.
func main() {
	godotenv.Load()

	email := flag.String("email", "admin@example.com", "Admin account email")
	name := flag.String("name", "Admin User", "Admin account name")

	var cfg config.Config
	if err := cfg.ParseFlags(); err != nil {
		fmt.Println("Configuration error:", err)
		os.Exit(1)
	}

	logging.Logg = logging.NewLogger(cfg.LogLevel, cfg.LogFormat)

	backend, err := kv.OpenFileBackend(cfg.StoreFile)
	if err != nil {
		fmt.Println("Failed to open document store:", err)
		os.Exit(1)
	}
	store := kv.NewStore(backend)
	defer store.Close()

	svc := data.NewService(store, notify.NewService(store))

	fmt.Print("New admin password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		fmt.Println("Failed to read password:", err)
		os.Exit(1)
	}
	fmt.Print("Repeat password: ")
	repeat, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		fmt.Println("Failed to read password:", err)
		os.Exit(1)
	}
	if string(password) != string(repeat) {
		fmt.Println("Passwords do not match")
		os.Exit(1)
	}

	hash, err := auth.HashPassword(string(password))
	if err != nil {
		fmt.Println("Failed to hash password:", err)
		os.Exit(1)
	}

	user, err := svc.UserByEmail(*email)
	switch {
	case err == nil:
		if _, err := svc.UpdateUser(user.ID, data.UserPatch{PasswordHash: &hash}); err != nil {
			fmt.Println("Failed to update admin account:", err)
			os.Exit(1)
		}
		fmt.Println("Password updated for", *email)
	case errors.Is(err, data.ErrUserNotFound):
		if _, err := svc.AddUser(model.User{
			Name:         *name,
			Email:        *email,
			Role:         model.RoleAdmin,
			PasswordHash: hash,
		}); err != nil {
			fmt.Println("Failed to create admin account:", err)
			os.Exit(1)
		}
		fmt.Println("Admin account created:", *email)
	default:
		fmt.Println("Failed to look up admin account:", err)
		os.Exit(1)
	}
}
