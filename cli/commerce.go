package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"marketplus/domain"
)

// registerCommerceCommands wires the wishlist, cart, checkout, and history
// commands onto the root command.
func registerCommerceCommands() {
	// wishlist
	wishlistCmd := &cobra.Command{
		Use:   "wishlist",
		Short: "Manage the wishlist",
	}
	wishlistCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List wishlisted products",
		RunE: func(cmd *cobra.Command, args []string) error {
			printProducts(commerce.Wishlist())
			return nil
		},
	})
	wishlistCmd.AddCommand(&cobra.Command{
		Use:   "add <id>",
		Short: "Add a product to the wishlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := fetchProduct(args[0])
			if err != nil {
				return err
			}
			if err := commerce.AddToWishlist(p); err != nil {
				return err
			}
			slog.Info("added to wishlist", "product_id", p.ID)
			fmt.Printf("added %q to wishlist\n", p.Title)
			return nil
		},
	})
	wishlistCmd.AddCommand(&cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a product from the wishlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id: %s", args[0])
			}
			if err := commerce.RemoveFromWishlist(id); err != nil {
				return err
			}
			fmt.Println("removed")
			return nil
		},
	})
	rootCmd.AddCommand(wishlistCmd)

	// cart
	cartCmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
	}
	cartCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the cart contents and total",
		RunE: func(cmd *cobra.Command, args []string) error {
			items := commerce.Cart()
			if len(items) == 0 {
				fmt.Println("cart is empty")
				return nil
			}
			for _, it := range items {
				fmt.Printf("%d | %s | %d x %.2f = %.2f\n",
					it.Product.ID, it.Product.Title, it.Quantity,
					it.Product.DiscountedPrice(), it.Subtotal())
			}
			fmt.Printf("total: %.2f\n", commerce.CartTotal())
			return nil
		},
	})

	var addQuantity int
	cartAddCmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if addQuantity < 1 {
				return errors.New("quantity must be at least 1")
			}
			p, err := fetchProduct(args[0])
			if err != nil {
				return err
			}
			for i := 0; i < addQuantity; i++ {
				if err := commerce.AddToCart(p); err != nil {
					return err
				}
			}
			slog.Info("added to cart", "product_id", p.ID, "quantity", addQuantity)
			fmt.Printf("added %d x %q to cart\n", addQuantity, p.Title)
			return nil
		},
	}
	cartAddCmd.Flags().IntVar(&addQuantity, "quantity", 1, "number of units to add")
	cartCmd.AddCommand(cartAddCmd)

	cartCmd.AddCommand(&cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id: %s", args[0])
			}
			if err := commerce.RemoveFromCart(id); err != nil {
				return err
			}
			fmt.Println("removed")
			return nil
		},
	})

	var updateQuantity int
	cartUpdateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Set the quantity of a cart item",
		Long:  "Set the quantity of a cart item. A quantity of zero or less removes the item.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("quantity") {
				return errors.New("--quantity required")
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id: %s", args[0])
			}
			if err := commerce.UpdateCartQuantity(id, updateQuantity); err != nil {
				return err
			}
			fmt.Println("updated")
			return nil
		},
	}
	cartUpdateCmd.Flags().IntVar(&updateQuantity, "quantity", 0, "new quantity")
	cartCmd.AddCommand(cartUpdateCmd)

	cartCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := commerce.ClearCart(); err != nil {
				return err
			}
			fmt.Println("cart cleared")
			return nil
		},
	})
	rootCmd.AddCommand(cartCmd)

	// checkout
	checkoutCmd := &cobra.Command{
		Use:   "checkout",
		Short: "Convert the cart into a purchase record",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			rec, err := commerce.Checkout()
			if err != nil {
				slog.Error("checkout failed", "error", err)
				return err
			}
			if rec == nil {
				fmt.Println("cart is empty")
				return nil
			}
			slog.Info("checkout complete",
				"purchase_id", rec.ID,
				"total", rec.Total,
				"duration_ms", time.Since(start).Milliseconds(),
			)
			b, _ := json.MarshalIndent(rec, "", "  ")
			fmt.Println(string(b))
			return nil
		},
	}
	rootCmd.AddCommand(checkoutCmd)

	// history
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show purchase history, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			records := commerce.History()
			if len(records) == 0 {
				fmt.Println("no purchases yet")
				return nil
			}
			for _, rec := range records {
				fmt.Printf("%s | %s | %d items | %.2f\n",
					rec.ID, rec.Date.Format(time.RFC3339), len(rec.Items), rec.Total)
			}
			return nil
		},
	}
	rootCmd.AddCommand(historyCmd)
}

// fetchProduct resolves a CLI id argument against the catalog.
func fetchProduct(arg string) (domain.Product, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return domain.Product{}, fmt.Errorf("invalid product id: %s", arg)
	}
	p, err := catalogClient.GetProduct(context.Background(), id)
	if err != nil {
		if domain.IsProductNotFoundError(err) {
			fmt.Fprintln(os.Stderr, err)
		}
		return domain.Product{}, err
	}
	return p, nil
}
