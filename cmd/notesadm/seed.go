package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/EgehanKilicarslan/notekeeper/internal/database/service"
)

// SeedFile is the YAML layout accepted by `notesadm seed`
type SeedFile struct {
	Users []SeedUser `yaml:"users"`
}

type SeedUser struct {
	Email     string   `yaml:"email"`
	FirstName string   `yaml:"first_name"`
	Password  string   `yaml:"password"`
	Notes     []string `yaml:"notes"`
}

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load users and notes from a YAML file",
	Long: `Load users and notes from a YAML file such as:

  users:
    - email: jo@example.com
      first_name: Jo
      password: password123
      notes: ["buy milk"]

Existing accounts are skipped; their notes are not loaded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(seedFile)
		if err != nil {
			return err
		}
		defer f.Close()

		seed, err := parseSeed(f)
		if err != nil {
			return err
		}

		svc, err := openServices()
		if err != nil {
			return err
		}
		defer svc.Close()

		result, err := applySeed(context.Background(), svc.auth, svc.notes, seed)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d users (%d skipped) and %d notes\n", result.Users, result.Skipped, result.Notes)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "seed.yaml", "Seed file")
	rootCmd.AddCommand(seedCmd)
}

func parseSeed(r io.Reader) (*SeedFile, error) {
	var seed SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		if errors.Is(err, io.EOF) {
			return &seed, nil
		}
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &seed, nil
}

type seedResult struct {
	Users   int
	Skipped int
	Notes   int
}

// applySeed runs every user through account creation and every note through
// note creation, so seed data obeys the same rules as the web forms
func applySeed(ctx context.Context, auth service.AuthService, notes service.NoteService, seed *SeedFile) (seedResult, error) {
	var result seedResult

	for _, u := range seed.Users {
		user, err := auth.CreateAccount(ctx, service.SignUpInput{
			Email:     u.Email,
			FirstName: u.FirstName,
			Password1: u.Password,
			Password2: u.Password,
		})
		if err != nil {
			if errors.Is(err, service.ErrAccountExists) {
				result.Skipped++
				continue
			}
			return result, fmt.Errorf("seed user %q: %w", u.Email, err)
		}
		result.Users++

		for _, content := range u.Notes {
			if _, err := notes.CreateNote(ctx, user.ID, content); err != nil {
				return result, fmt.Errorf("seed note for %q: %w", u.Email, err)
			}
			result.Notes++
		}
	}

	return result, nil
}
