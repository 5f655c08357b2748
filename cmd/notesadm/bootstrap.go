package main

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/EgehanKilicarslan/notekeeper/internal/database"
	"github.com/EgehanKilicarslan/notekeeper/internal/database/repository"
	"github.com/EgehanKilicarslan/notekeeper/internal/database/service"
)

// services are the pieces the account commands drive
type services struct {
	db    *gorm.DB
	auth  service.AuthService
	notes service.NoteService
}

// openServices connects, migrates and builds the credential and note services.
// Accounts created here never get a session, so the session store is the table.
func openServices() (*services, error) {
	logger := slog.Default()

	db, err := database.ConnectDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}

	sessions := service.NewSessionService(repository.NewSessionRepository(db), cfg, logger)
	return &services{
		db:    db,
		auth:  service.NewAuthService(repository.NewUserRepository(db), sessions, cfg, logger),
		notes: service.NewNoteService(repository.NewNoteRepository(db), logger),
	}, nil
}

func (s *services) Close() {
	if sqlDB, err := s.db.DB(); err == nil {
		sqlDB.Close()
	}
}
