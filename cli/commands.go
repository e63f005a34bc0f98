// Package cli provides the Cobra-based CLI for marketplus.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"marketplus/catalog"
	"marketplus/domain"
	"marketplus/state"
	"marketplus/view"
)

var (
	rootCmd = &cobra.Command{
		Use:   "marketplus",
		Short: "A storefront over the remote product catalog",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// IMPORTANT: allow tests to inject store and client
			if commerce != nil && catalogClient != nil {
				browser = view.NewBrowser(catalogClient)
				return nil
			}

			if cfg := viper.GetString("config"); cfg != "" {
				viper.SetConfigFile(cfg)
				if err := viper.ReadInConfig(); err != nil {
					return err
				}
			}

			lvlStr := strings.ToLower(viper.GetString("log-level"))
			lvl := slog.LevelInfo
			switch lvlStr {
			case "debug":
				lvl = slog.LevelDebug
			case "warn", "warning":
				lvl = slog.LevelWarn
			case "error":
				lvl = slog.LevelError
			}
			slog.SetDefault(slog.New(
				slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}),
			))

			if catalogClient == nil {
				catalogClient = catalog.NewClient(viper.GetString("api-base"), nil)
			}
			browser = view.NewBrowser(catalogClient)

			if commerce == nil {
				slices, err := state.NewSlices(
					viper.GetString("state"),
					viper.GetString("data-dir"),
				)
				if err != nil {
					return err
				}
				commerce = state.NewStore(slices)
			}
			return nil
		},
	}

	commerce      *state.Store
	catalogClient *catalog.Client
	browser       *view.Browser
)

func init() {
	rootCmd.PersistentFlags().String("api-base", catalog.DefaultBaseURL, "catalog API base URL")
	rootCmd.PersistentFlags().String("state", "file", "state backend: file|memory")
	rootCmd.PersistentFlags().String("data-dir", "data", "state directory for the file backend")
	rootCmd.PersistentFlags().String("config", "", "config file")
	rootCmd.PersistentFlags().String("log-level", "info", "log level")

	viper.BindPFlag("api-base", rootCmd.PersistentFlags().Lookup("api-base"))
	viper.BindPFlag("state", rootCmd.PersistentFlags().Lookup("state"))
	viper.BindPFlag("data-dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.SetEnvPrefix("MARKETPLUS")
	viper.AutomaticEnv()

	// shell
	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive shell mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := bufio.NewReader(os.Stdin)
			for {
				fmt.Print("marketplus> ")
				line, err := r.ReadString('\n')
				if err != nil {
					return nil
				}
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					return nil
				}
				rootCmd.SetArgs(strings.Fields(line))
				if err := rootCmd.Execute(); err != nil {
					fmt.Fprintln(os.Stderr, err)
				}
				rootCmd.SetArgs(nil)
			}
		},
	}
	rootCmd.AddCommand(shellCmd)

	// browse
	var bSearch, bCategory, bOutput string
	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog",
		Long:  "Browse the catalog. A search query takes precedence over a category selection.",
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := browser.Products(context.Background(), bSearch, bCategory)
			if err != nil {
				slog.Error("browse failed", "search", bSearch, "category", bCategory, "error", err)
				return err
			}
			if bOutput == "json" {
				b, _ := json.MarshalIndent(products, "", "  ")
				fmt.Println(string(b))
				return nil
			}
			printProducts(products)
			fmt.Printf("%d products\n", len(products))
			return nil
		},
	}
	browseCmd.Flags().StringVar(&bSearch, "search", "", "search query")
	browseCmd.Flags().StringVar(&bCategory, "category", "", "category filter")
	browseCmd.Flags().StringVar(&bOutput, "output", "", "output format")
	rootCmd.AddCommand(browseCmd)

	// categories
	categoriesCmd := &cobra.Command{
		Use:   "categories",
		Short: "List catalog categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := browser.Categories(context.Background())
			if err != nil {
				return err
			}
			for _, c := range categories {
				fmt.Println(c)
			}
			return nil
		},
	}
	rootCmd.AddCommand(categoriesCmd)

	// show
	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show product details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id: %s", args[0])
			}
			p, err := catalogClient.GetProduct(context.Background(), id)
			if err != nil {
				if domain.IsProductNotFoundError(err) {
					fmt.Fprintln(os.Stderr, err)
					return nil
				}
				return err
			}
			printProductDetail(p)
			return nil
		},
	}
	rootCmd.AddCommand(showCmd)

	registerCommerceCommands()
	registerSessionCommands()
	registerAdminCommands()
	registerServeCommand()
}

func printProducts(products []domain.Product) {
	for _, p := range products {
		fmt.Printf("%d | %s | %.2f | %.2f | %.1f | %s\n",
			p.ID, p.Title, p.Price, p.DiscountedPrice(), p.Rating, p.Category)
	}
}

func printProductDetail(p domain.Product) {
	fmt.Printf("#%d %s\n", p.ID, p.Title)
	if p.Brand != "" {
		fmt.Printf("Brand:    %s\n", p.Brand)
	}
	fmt.Printf("Category: %s\n", p.Category)
	fmt.Printf("Price:    %.2f (%.2f after %.1f%% discount)\n",
		p.Price, p.DiscountedPrice(), p.DiscountPercentage)
	fmt.Printf("Rating:   %.1f/5\n", p.Rating)
	fmt.Printf("Stock:    %d\n", p.Stock)
	if p.Description != "" {
		fmt.Println(p.Description)
	}
	if p.ShippingInformation != "" {
		fmt.Printf("Shipping: %s\n", p.ShippingInformation)
	}
	if p.WarrantyInformation != "" {
		fmt.Printf("Warranty: %s\n", p.WarrantyInformation)
	}
	if p.ReturnPolicy != "" {
		fmt.Printf("Returns:  %s\n", p.ReturnPolicy)
	}
	if commerce.IsInWishlist(p.ID) {
		fmt.Println("In wishlist")
	}
	for _, r := range p.Reviews {
		fmt.Printf("  %.0f/5 %q (%s)\n", r.Rating, r.Comment, r.ReviewerName)
	}
}

func Execute() error {
	return rootCmd.Execute()
}
