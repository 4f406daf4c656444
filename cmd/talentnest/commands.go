package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/talentnest247/Talentnest-sub001/domain"
	"github.com/talentnest247/Talentnest-sub001/internal/app"
	"github.com/talentnest247/Talentnest-sub001/internal/config"
	"github.com/talentnest247/Talentnest-sub001/internal/infrastructure/auth"
	"github.com/talentnest247/Talentnest-sub001/internal/infrastructure/database"
	"github.com/talentnest247/Talentnest-sub001/internal/infrastructure/repositories"
	"github.com/talentnest247/Talentnest-sub001/internal/logging"
)

// loadRuntime reads configuration and builds the process logger
func loadRuntime() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	return cfg, logging.New(cfg.Logging), nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "talentnest",
		Short:        "TalentNest provider verification service",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newDBCheckCmd(), newSeedAdminCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadRuntime()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return app.Run(ctx, cfg, log)
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and seed casbin policies",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadRuntime()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg.DSN)
			if err != nil {
				return err
			}
			if err := database.AutoMigrate(db); err != nil {
				return err
			}
			cas, err := auth.NewCasbinService(db, cfg.CasbinModelPath)
			if err != nil {
				return err
			}
			seeded, err := cas.SeedDefaultPolicies()
			if err != nil {
				return err
			}
			log.WithField("policies_seeded", seeded).Info("migration complete")
			return nil
		},
	}
}

func newDBCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dbcheck",
		Short: "Verify database connectivity and the presence of every table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadRuntime()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg.DSN)
			if err != nil {
				return err
			}
			if err := database.Ping(db); err != nil {
				return fmt.Errorf("ping: %w", err)
			}
			var missing []string
			for _, model := range database.Models() {
				if !db.Migrator().HasTable(model) {
					missing = append(missing, fmt.Sprintf("%T", model))
				}
			}
			if len(missing) > 0 {
				return fmt.Errorf("missing tables for %s; run migrate", strings.Join(missing, ", "))
			}
			log.Info("database ok")
			return nil
		},
	}
}

func newSeedAdminCmd() *cobra.Command {
	var email, password, fullName string
	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || len(password) < 8 {
				return errors.New("--email and a --password of at least 8 characters are required")
			}
			cfg, log, err := loadRuntime()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg.DSN)
			if err != nil {
				return err
			}
			return seedAdmin(cmd.Context(), repositories.NewUserRepository(db), auth.NewPasswordService(), log, email, password, fullName)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	cmd.Flags().StringVar(&fullName, "name", "Administrator", "admin full name")
	return cmd
}

func seedAdmin(ctx context.Context, users domain.UserRepository, passwords domain.PasswordService, log logrus.FieldLogger, email, password, fullName string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := users.FindByEmail(ctx, email); err == nil {
		return domain.ErrUserAlreadyExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := passwords.Hash(password)
	if err != nil {
		return err
	}
	admin := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		FullName:     fullName,
		IsActive:     true,
		IsVerified:   true,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"user_id": admin.ID, "email": email}).Info("admin created")
	return nil
}
