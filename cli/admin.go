package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"marketplus/domain"
	"marketplus/server"
)

// registerSessionCommands wires login, logout, and whoami.
func registerSessionCommands() {
	var email, password string
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as the admin operator",
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := commerce.Login(email, password)
			if err != nil {
				return err
			}
			if !ok {
				return domain.NewInvalidCredentialError()
			}
			fmt.Println("logged in as admin")
			return nil
		},
	}
	loginCmd.Flags().StringVar(&email, "email", "", "operator email")
	loginCmd.Flags().StringVar(&password, "password", "", "operator password")
	rootCmd.AddCommand(loginCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "logout",
		Short: "Clear the admin session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := commerce.Logout(); err != nil {
				return err
			}
			fmt.Println("logged out")
			return nil
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if commerce.IsAdmin() {
				fmt.Println("admin")
			} else {
				fmt.Println("guest")
			}
			return nil
		},
	})
}

// registerAdminCommands wires the catalog mutation commands. They require the
// session admin flag; the remote accepts mutations as simulated, so success
// means "accepted", not a durable change.
func registerAdminCommands() {
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage catalog entries (admin only)",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
				return err
			}
			if !commerce.IsAdmin() {
				return errors.New("admin login required")
			}
			return nil
		},
	}

	var cIn domain.ProductInput
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a catalog entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := domain.ValidateInput(cIn, true); err != nil {
				return err
			}
			start := time.Now()
			p, err := catalogClient.CreateProduct(context.Background(), cIn)
			if err != nil {
				slog.Error("create failed", "title", cIn.Title, "error", err)
				return err
			}
			slog.Info("product created",
				"product_id", p.ID,
				"duration_ms", time.Since(start).Milliseconds(),
			)
			b, _ := json.MarshalIndent(p, "", "  ")
			fmt.Println(string(b))
			fmt.Println("accepted by catalog (simulated); refetch the listing for server-visible state")
			return nil
		},
	}
	bindInputFlags(createCmd, &cIn)
	adminCmd.AddCommand(createCmd)

	var uIn domain.ProductInput
	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id: %s", args[0])
			}
			if err := domain.ValidateInput(uIn, false); err != nil {
				return err
			}
			start := time.Now()
			p, err := catalogClient.UpdateProduct(context.Background(), id, uIn)
			if err != nil {
				slog.Error("update failed", "product_id", id, "error", err)
				return err
			}
			slog.Info("product updated",
				"product_id", id,
				"duration_ms", time.Since(start).Milliseconds(),
			)
			b, _ := json.MarshalIndent(p, "", "  ")
			fmt.Println(string(b))
			return nil
		},
	}
	bindInputFlags(updateCmd, &uIn)
	adminCmd.AddCommand(updateCmd)

	var force bool
	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id: %s", args[0])
			}
			if !force {
				fmt.Printf("Delete %d? (y/N): ", id)
				var resp string
				if _, err := fmt.Scanln(&resp); err != nil || (resp != "y" && resp != "Y") {
					fmt.Println("aborted")
					return nil
				}
			}
			dp, err := catalogClient.DeleteProduct(context.Background(), id)
			if err != nil {
				slog.Error("delete failed", "product_id", id, "error", err)
				return err
			}
			fmt.Printf("deleted %q (isDeleted=%t, deletedOn=%s)\n",
				dp.Title, dp.IsDeleted, dp.DeletedOn.Format(time.RFC3339))
			return nil
		},
	}
	deleteCmd.Flags().BoolVar(&force, "force", false, "skip confirmation")
	adminCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(adminCmd)
}

func bindInputFlags(cmd *cobra.Command, in *domain.ProductInput) {
	cmd.Flags().StringVar(&in.Title, "title", "", "title")
	cmd.Flags().StringVar(&in.Description, "description", "", "description")
	cmd.Flags().StringVar(&in.Category, "category", "", "category")
	cmd.Flags().StringVar(&in.Brand, "brand", "", "brand")
	cmd.Flags().Float64Var(&in.Price, "price", 0, "price")
	cmd.Flags().Float64Var(&in.DiscountPercentage, "discount", 0, "discount percentage")
	cmd.Flags().IntVar(&in.Stock, "stock", 0, "stock")
	cmd.Flags().StringVar(&in.Thumbnail, "thumbnail", "", "thumbnail URL")
}

// registerServeCommand wires the HTTP facade.
func registerServeCommand() {
	var addr string
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the storefront as a local HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := server.New(commerce, catalogClient)
			slog.Info("starting storefront server", "addr", addr)
			return srv.Run(addr)
		},
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}
