package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/saidafzal264-maker/Elevon-market/internal/catalog"
	"github.com/saidafzal264-maker/Elevon-market/internal/checkout"
	"github.com/saidafzal264-maker/Elevon-market/internal/history"
	"github.com/saidafzal264-maker/Elevon-market/internal/recommend"
	"github.com/saidafzal264-maker/Elevon-market/internal/search"
)

func newProductsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := newAPIClient(opts)
			if err != nil {
				return err
			}
			products, err := api.GetProducts(cmd.Context())
			if err != nil {
				return err
			}
			for _, p := range products {
				printProduct(cmd, p)
			}
			return nil
		},
	}
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Semantic catalog search",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := newAPIClient(opts)
			if err != nil {
				return err
			}
			state := search.NewState(api)

			query := joinArgs(args)
			cmd.Printf("searching %q...\n", query)
			if _, err := state.Run(cmd.Context(), query); err != nil {
				return err
			}

			results, _ := state.Results()
			if len(results) == 0 {
				cmd.Println("no matches")
				return nil
			}
			for _, p := range results {
				printProduct(cmd, p)
			}
			return nil
		},
	}
}

func newBrowseCmd(opts *rootOptions) *cobra.Command {
	var wait time.Duration

	cmd := &cobra.Command{
		Use:   "browse <productId>...",
		Short: "View products and get AI suggestions for the session",
		Long: `View one or more products. Each view is recorded in the session's
browsing history; once viewing goes quiet, a single recommendation request is
made and the suggested products are printed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := newAPIClient(opts)
			if err != nil {
				return err
			}
			products, err := api.GetProducts(cmd.Context())
			if err != nil {
				return err
			}
			byID := make(map[string]catalog.Product, len(products))
			for _, p := range products {
				byID[p.ID] = p
			}

			tracker := history.NewTracker()
			trigger := recommend.NewTrigger(api, tracker, wait)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			triggerDone := make(chan struct{})
			go func() {
				trigger.Run(ctx)
				close(triggerDone)
			}()

			for _, id := range args {
				p, ok := byID[id]
				if !ok {
					cmd.Printf("unknown product %s, skipping\n", id)
					continue
				}
				printProduct(cmd, p)
				tracker.Record(p.Title)
			}

			if len(tracker.Snapshot()) == 0 {
				return nil
			}

			// Wait for the quiet window to elapse and the one request to
			// complete.
			select {
			case <-trigger.Updates():
			case <-time.After(wait + time.Minute):
			case <-ctx.Done():
			}
			cancel()
			<-triggerDone

			ids := trigger.Suggestions()
			if len(ids) == 0 {
				cmd.Println("no suggestions right now")
				return nil
			}
			cmd.Println("you might also like:")
			for _, id := range ids {
				if p, ok := byID[id]; ok {
					printProduct(cmd, p)
				}
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&wait, "debounce", 2*time.Second, "quiet window before the recommendation request")
	return cmd
}

func newCartCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show the saved cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := openCart(opts).Entries()
			if len(entries) == 0 {
				cmd.Println("cart is empty")
				return nil
			}
			for _, e := range entries {
				cmd.Printf("%s x%d\n", e.ProductID, e.Quantity)
			}
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <productId> [quantity]",
			Short: "Add a product to the cart",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				qty := 1
				if len(args) == 2 {
					n, err := strconv.Atoi(args[1])
					if err != nil {
						return fmt.Errorf("quantity %q is not a number", args[1])
					}
					qty = n
				}
				if err := openCart(opts).Add(args[0], qty); err != nil {
					return err
				}
				cmd.Printf("added %s x%d\n", args[0], qty)
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <productId>",
			Short: "Remove a product from the cart",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return openCart(opts).Remove(args[0])
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Empty the cart",
			RunE: func(cmd *cobra.Command, args []string) error {
				return openCart(opts).Clear()
			},
		},
	)
	return cmd
}

func newCheckoutCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the cart contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := newAPIClient(opts)
			if err != nil {
				return err
			}
			products, err := api.GetProducts(cmd.Context())
			if err != nil {
				return err
			}

			svc := checkout.NewService(api, openCart(opts))
			placed, err := svc.PlaceOrder(cmd.Context(), opts.UserID, products)
			if err != nil {
				return err
			}
			cmd.Printf("order %s placed: %s, total %.0f\n", placed.ID, placed.Status, placed.Total)
			return nil
		},
	}
}

func printProduct(cmd *cobra.Command, p catalog.Product) {
	price := fmt.Sprintf("%.0f", p.Price)
	if p.DiscountPrice != nil {
		price = fmt.Sprintf("%.0f (was %.0f)", *p.DiscountPrice, p.Price)
	}
	cmd.Printf("%-4s %-30s %s  stock %d\n", p.ID, p.Title, price, p.Stock)
}

func joinArgs(args []string) string {
	out := args[0]
	for _, a := range args[1:] {
		out += " " + a
	}
	return out
}
