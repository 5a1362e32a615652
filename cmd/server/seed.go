package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/yukikurage/kanban-board-api/internal/database"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/repository"
	"github.com/yukikurage/kanban-board-api/internal/services"
)

const seedPassword = "test123"

var seedUsers = []services.SignupInput{
	{
		Name:     "Single User Test",
		Email:    "single@test.com",
		Password: seedPassword,
		UserType: models.UserTypeSingle,
		Role:     models.RoleNone,
	},
	{
		Name:      "Group Leader Test",
		Email:     "leader@test.com",
		Password:  seedPassword,
		UserType:  models.UserTypeGroup,
		Role:      models.RoleLeader,
		AccessKey: "LEAD1234",
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Recreate the test users",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := connect(); err != nil {
			return err
		}
		userRepo := repository.NewUserRepository(database.GetDB())

		emails := make([]string, 0, len(seedUsers))
		for _, input := range seedUsers {
			emails = append(emails, input.Email)
		}
		removed, err := userRepo.DeleteByEmails(emails)
		if err != nil {
			return fmt.Errorf("failed to remove existing test users: %w", err)
		}
		log.Info("removed existing test users", slog.Int64("count", removed))

		authService := services.NewAuthService(userRepo)
		out := cmd.OutOrStdout()
		for _, input := range seedUsers {
			user, err := authService.Signup(input)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", input.Email, err)
			}
			fmt.Fprintf(out, "created %s (%s/%s)", user.Email, user.UserType, user.Role)
			if user.AccessKey != nil {
				fmt.Fprintf(out, " access key %s", *user.AccessKey)
			}
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "password for all test users: %s\n", seedPassword)
		return nil
	},
}
