// Package config loads the settings of the cf tool and server from the
// environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strings"

	fund "github.com/etnz/communityfund"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreSheets = "sheets"
	StoreMemory = "memory"
)

// Seed providers.
const (
	SeedGemini = "gemini"
	SeedFile   = "file"
	SeedSample = "sample"
	SeedNone   = "none"
)

var (
	stores = []string{StoreFile, StoreSQLite, StoreSheets, StoreMemory}
	seeds  = []string{SeedGemini, SeedFile, SeedSample, SeedNone}
)

// Config holds the application configuration.
type Config struct {
	// Storage
	Store       string
	File        string
	SQLitePath  string
	SheetID     string
	SheetRange  string
	Credentials string

	// Seeding
	Seed         string
	SeedFile     string
	GeminiModel  string
	GeminiAPIKey string

	Strict   bool
	Role     string
	Addr     string
	LogLevel string
}

// Load reads the configuration. Variables already set in the environment
// take precedence over the .env files, missing files are ignored.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not load env file: %w", err)
	}

	v := viper.New()
	v.SetDefault("FUND_STORE", StoreFile)
	v.SetDefault("FUND_FILE", "fund.json")
	v.SetDefault("FUND_SQLITE_PATH", "./data/fund.db")
	v.SetDefault("FUND_SHEET_RANGE", "Fund!A1")
	v.SetDefault("FUND_SEED", SeedGemini)
	v.SetDefault("FUND_SEED_FILE", "")
	v.SetDefault("FUND_GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("FUND_STRICT", false)
	v.SetDefault("FUND_ROLE", string(fund.Guest))
	v.SetDefault("FUND_ADDR", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.AutomaticEnv()

	return &Config{
		Store:        strings.ToLower(v.GetString("FUND_STORE")),
		File:         v.GetString("FUND_FILE"),
		SQLitePath:   v.GetString("FUND_SQLITE_PATH"),
		SheetID:      v.GetString("FUND_SHEET_ID"),
		SheetRange:   v.GetString("FUND_SHEET_RANGE"),
		Credentials:  v.GetString("GOOGLE_SERVICE_ACCOUNT_FILE"),
		Seed:         strings.ToLower(v.GetString("FUND_SEED")),
		SeedFile:     v.GetString("FUND_SEED_FILE"),
		GeminiModel:  v.GetString("FUND_GEMINI_MODEL"),
		GeminiAPIKey: v.GetString("GEMINI_API_KEY"),
		Strict:       v.GetBool("FUND_STRICT"),
		Role:         v.GetString("FUND_ROLE"),
		Addr:         v.GetString("FUND_ADDR"),
		LogLevel:     v.GetString("LOG_LEVEL"),
	}, nil
}

// Validate reports every problem of the configuration at once.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(stores, c.Store) {
		errs = append(errs, fmt.Errorf("invalid FUND_STORE %q: must be one of %v", c.Store, stores))
	}
	switch c.Store {
	case StoreFile:
		if c.File == "" {
			errs = append(errs, errors.New("FUND_FILE cannot be empty when using the file store"))
		}
	case StoreSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, errors.New("FUND_SQLITE_PATH cannot be empty when using the sqlite store"))
		}
	case StoreSheets:
		if c.SheetID == "" {
			errs = append(errs, errors.New("FUND_SHEET_ID is required when using the sheets store"))
		}
	}

	if !slices.Contains(seeds, c.Seed) {
		errs = append(errs, fmt.Errorf("invalid FUND_SEED %q: must be one of %v", c.Seed, seeds))
	}
	if c.Seed == SeedFile && c.SeedFile == "" {
		errs = append(errs, errors.New("FUND_SEED_FILE is required when seeding from a file"))
	}

	if _, err := fund.ParseRole(c.Role); err != nil {
		errs = append(errs, fmt.Errorf("invalid FUND_ROLE: %w", err))
	}
	if _, err := c.level(); err != nil {
		errs = append(errs, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err))
	}
	return errors.Join(errs...)
}

// User returns the user acting through the CLI.
func (c *Config) User() fund.User {
	role, err := fund.ParseRole(c.Role)
	if err != nil {
		role = fund.Guest
	}
	return fund.NewUser(role)
}

// Logger creates the structured logger of the application, writing to stderr.
func (c *Config) Logger() *slog.Logger {
	level, err := c.level()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).With("component", "app")
}

func (c *Config) level() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.LogLevel))
	return level, err
}
