package cli

import (
	"fmt"
	"strings"

	"github.com/autospa/autospa-api/internal/application/service"
	"github.com/autospa/autospa-api/internal/domain/enum"
	"github.com/autospa/autospa-api/internal/infrastructure/repository"
	"github.com/spf13/cobra"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage staff accounts",
	}
	cmd.AddCommand(newUserCreateCmd())
	return cmd
}

func newUserCreateCmd() *cobra.Command {
	var (
		address  string
		name     string
		password string
		role     string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a staff or admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if role != enum.RoleAdmin && role != enum.RoleStaff {
				return fmt.Errorf("unknown role %q (valid: admin, staff)", role)
			}
			if len(password) < 8 {
				return fmt.Errorf("password must be at least 8 characters")
			}

			_, db, err := connect()
			if err != nil {
				return err
			}

			first, last, _ := strings.Cut(strings.TrimSpace(name), " ")
			users := service.NewUserService(
				repository.NewUserRepository(db),
				repository.NewRoleRepository(db),
				repository.NewPermissionRepository(db),
				nil,
			)
			user, err := users.CreateUser(cmd.Context(), &service.CreateUserInput{
				FirstName: first,
				LastName:  strings.TrimSpace(last),
				Email:     address,
				Password:  password,
				Role:      role,
			})
			if err != nil {
				return fmt.Errorf("creating user: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s (%s)\n", role, user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&address, "email", "", "sign-in email address")
	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	cmd.Flags().StringVar(&role, "role", enum.RoleStaff, "admin or staff")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
