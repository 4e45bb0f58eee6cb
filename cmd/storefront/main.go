// Command storefront is a terminal shopping session against a running marketd:
// browse products, search, collect a cart, and check out. Browsing feeds the
// AI recommendation trigger the same way the web storefront does.
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/saidafzal264-maker/Elevon-market/internal/cart"
	"github.com/saidafzal264-maker/Elevon-market/internal/client"
)

type rootOptions struct {
	ServerURL string
	CartPath  string
	UserID    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "storefront",
		Short:         "Shop the Elevon marketplace from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ServerURL, "server", envOr("MARKET_URL", "http://localhost:4000"), "marketd base URL")
	cmd.PersistentFlags().StringVar(&opts.CartPath, "cart", envOr("CART_FILE", defaultCartPath()), "cart persistence file")
	cmd.PersistentFlags().StringVar(&opts.UserID, "user", envOr("MARKET_USER", "guest"), "user id for orders")

	cmd.AddCommand(
		newProductsCmd(opts),
		newSearchCmd(opts),
		newBrowseCmd(opts),
		newCartCmd(opts),
		newCheckoutCmd(opts),
	)
	return cmd
}

func newAPIClient(opts *rootOptions) (*client.Client, error) {
	return client.New(opts.ServerURL, &http.Client{Timeout: 60 * time.Second})
}

func openCart(opts *rootOptions) *cart.Store {
	return cart.Open(opts.CartPath)
}

func defaultCartPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".elevon-cart.json"
	}
	return home + "/.elevon-cart.json"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
