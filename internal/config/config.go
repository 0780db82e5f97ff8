package config

import (
	"errors"
	"flag"
	"os"
)

type Config struct {
	Address   string
	DBDsn     string // Postgres DSN; пустой — используется файловое хранилище
	StoreFile string
	SeedFile  string
	Secret    string
	LogLevel  string
	LogFormat string
}

var (
	ErrAddressEmpty = errors.New("address is an empty string")
	ErrStoreEmpty   = errors.New("neither database_uri nor store_file is set")
	ErrSecretEmpty  = errors.New("auth secret is an empty string")
)

func (cfg *Config) check() error {
	var errs []error

	if len(cfg.Address) == 0 {
		errs = append(errs, ErrAddressEmpty)
	}
	if len(cfg.DBDsn) == 0 && len(cfg.StoreFile) == 0 {
		errs = append(errs, ErrStoreEmpty)
	}
	if len(cfg.Secret) == 0 {
		errs = append(errs, ErrSecretEmpty)
	}
	return errors.Join(errs...)
}

func (cfg *Config) ParseFlags() error {
	flag.StringVar(&cfg.Address, "a", "localhost:8080", "Service address and port")
	flag.StringVar(&cfg.DBDsn, "d", "", "Postgres connection string for the document store")
	flag.StringVar(&cfg.StoreFile, "f", "data/techfixhub.json", "Path to the file-backed document store")
	flag.StringVar(&cfg.SeedFile, "s", "", "Optional YAML file with seed users and products")
	flag.StringVar(&cfg.Secret, "k", "supersecretkey", "Signing key for auth tokens")
	flag.StringVar(&cfg.LogLevel, "l", "info", "Log level")
	flag.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")

	flag.Parse()

	if envVarAddr := os.Getenv("RUN_ADDRESS"); envVarAddr != "" {
		cfg.Address = envVarAddr
	}

	if envVarDB := os.Getenv("DATABASE_URI"); envVarDB != "" {
		cfg.DBDsn = envVarDB
	}

	if envVarFile := os.Getenv("STORE_FILE"); envVarFile != "" {
		cfg.StoreFile = envVarFile
	}

	if envVarSeed := os.Getenv("SEED_FILE"); envVarSeed != "" {
		cfg.SeedFile = envVarSeed
	}

	if envVarSecret := os.Getenv("AUTH_SECRET"); envVarSecret != "" {
		cfg.Secret = envVarSecret
	}
	return cfg.check()
}
