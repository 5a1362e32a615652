package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/yukikurage/kanban-board-api/internal/database"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/repository"
	"github.com/yukikurage/kanban-board-api/internal/services"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List registered users grouped by group id",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := connect(); err != nil {
			return err
		}
		authService := services.NewAuthService(repository.NewUserRepository(database.GetDB()))
		users, err := authService.ListUsers()
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}

		groups, order := groupUsers(users)
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "total users: %d\n", len(users))
		for _, key := range order {
			fmt.Fprintf(w, "\n[%s]\n", key)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tTYPE\tROLE\tACCESS KEY")
			for _, u := range groups[key] {
				accessKey := "-"
				if u.AccessKey != nil {
					accessKey = *u.AccessKey
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.UserType, u.Role, accessKey)
			}
		}
		return w.Flush()
	},
}

// groupUsers buckets users by group id, keeping first-seen order.
// Users outside any group share the "no group" bucket.
func groupUsers(users []models.User) (map[string][]models.User, []string) {
	groups := make(map[string][]models.User)
	var order []string
	for _, u := range users {
		key := "no group"
		if u.GroupID != nil && *u.GroupID != "" {
			key = "group " + *u.GroupID
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], u)
	}
	return groups, order
}
