package cmd

import (
	"fmt"

	"greenmart/internal/dto/request"
	"greenmart/internal/usecase"
	"greenmart/pkg/utils"

	"github.com/spf13/cobra"
)

var (
	// Account flags
	accountEmail    string
	accountPassword string
	accountName     string
	accountActive   bool
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account",
	Long: `Create an account with the admin role. Admins cannot sign up through
the API; this command is the only way to get one.

Examples:
  greenmart create-admin --email ops@example.com --password 's3cret-pass' --name "Ops"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, done, err := accountService()
		if err != nil {
			return err
		}
		defer done()

		admin, err := svc.CreateAdmin(cmd.Context(), &request.CreateAdminRequest{
			Email:    accountEmail,
			Password: accountPassword,
			FullName: accountName,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Admin %s created with id %d.\n", admin.Email, admin.ID)
		return nil
	},
}

var setActiveCmd = &cobra.Command{
	Use:   "set-active",
	Short: "Enable or disable an account",
	Long: `Enable or disable login for an account. Disabled users are rejected at
login and their existing tokens stop resolving.

Examples:
  greenmart set-active --email jane@example.com --active=false`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, done, err := accountService()
		if err != nil {
			return err
		}
		defer done()

		if err := svc.SetActive(cmd.Context(), accountEmail, accountActive); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Account %s active=%t.\n", accountEmail, accountActive)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createAdminCmd, setActiveCmd)

	createAdminCmd.Flags().StringVar(&accountEmail, "email", "", "Admin email (required)")
	createAdminCmd.Flags().StringVar(&accountPassword, "password", "", "Admin password, at least 8 characters (required)")
	createAdminCmd.Flags().StringVar(&accountName, "name", "Administrator", "Display name")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")

	setActiveCmd.Flags().StringVar(&accountEmail, "email", "", "Account email (required)")
	setActiveCmd.Flags().BoolVar(&accountActive, "active", true, "Whether the account may log in")
	_ = setActiveCmd.MarkFlagRequired("email")
}

func accountService() (usecase.AuthService, func(), error) {
	rt, err := bootstrap()
	if err != nil {
		return nil, nil, err
	}

	tokenSvc, err := rt.tokenService()
	if err != nil {
		rt.close()
		return nil, nil, err
	}

	hasher := utils.NewPasswordHasher(rt.config.Security.BcryptCost)
	return usecase.NewAuthService(rt.repo, tokenSvc, hasher, rt.log), rt.close, nil
}
