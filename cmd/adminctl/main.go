// Command adminctl is a terminal client for the JamolStroy admin API.
// It signs in through the Telegram approval flow, keeps the session on
// disk and exposes the read side of the dashboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/jamolstroy/admin-api/internal/client"
	"github.com/jamolstroy/admin-api/internal/config"
	"github.com/jamolstroy/admin-api/internal/constants"
	"github.com/jamolstroy/admin-api/internal/logger"
	"github.com/jamolstroy/admin-api/internal/models"
)

const usage = `usage: adminctl <command> [flags]

commands:
  login       sign in through Telegram approval
  me          show the signed-in admin account
  dashboard   show dashboard counters
  orders      list orders (-today, -status, -page, -page-size)
  products    list products (-page, -page-size)
  signout     remove the local session
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())

	store, err := client.NewSessionStore(cfg.Client.SessionDir)
	if err != nil {
		fatalf("open session store: %v", err)
	}
	api := client.NewHTTPClient(cfg.Client.BaseURL)
	// A terminal has no Telegram runtime to probe for, so the bridge
	// resolves to the out-of-band login path straight away.
	bridge := client.NewBridge(nil,
		time.Duration(cfg.Client.BridgeProbeIntervalMS)*time.Millisecond,
		time.Duration(cfg.Client.BridgeProbeTimeoutMS)*time.Millisecond,
	)
	ctl := client.NewController(api, store, bridge, cfg.Client)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "login":
		err = runLogin(ctx, ctl)
	case "me":
		err = runMe(ctx, api, store)
	case "dashboard":
		err = runDashboard(ctx, api, store)
	case "orders":
		err = runOrders(ctx, api, store, args)
	case "products":
		err = runProducts(ctx, api, store, args)
	case "signout":
		err = runSignOut(store)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		fatalf("%v", err)
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "adminctl: "+format+"\n", args...)
	os.Exit(1)
}

// attachSession loads the stored profile and arms the bearer token.
func attachSession(api *client.HTTPClient, store *client.SessionStore) error {
	profile, err := store.LoadProfile()
	if err != nil {
		return err
	}
	if profile == nil {
		return fmt.Errorf("not signed in, run: adminctl login")
	}
	api.SetToken(profile.Token)
	return nil
}

func runLogin(ctx context.Context, ctl *client.Controller) error {
	if auth := ctl.Bootstrap(ctx, ""); auth.IsAuthenticated() {
		fmt.Printf("already signed in as %s, run signout first to switch accounts\n", auth.User().FirstName)
		return nil
	}

	request, err := ctl.StartWebsiteLogin(ctx)
	if err != nil {
		return err
	}

	fmt.Println("Open this link in Telegram and approve the login:")
	fmt.Printf("\n  %s\n\n", request.TelegramURL)
	fmt.Printf("The link expires at %s.\n", request.ExpiresAt.Local().Format(time.Kitchen))
	fmt.Println("Waiting for approval...")

	result, err := ctl.AwaitDecision(ctx, request.TempToken)
	if err != nil {
		return err
	}

	switch result.Status {
	case constants.LoginStatusApproved:
		auth := ctl.CompleteWebsiteLogin(result)
		if !auth.IsAuthenticated() {
			return fmt.Errorf("approval could not be stored, try again")
		}
		fmt.Printf("Signed in as %s.\n", auth.User().FirstName)
		return nil
	case constants.LoginStatusRejected:
		return fmt.Errorf("login was rejected in Telegram")
	case constants.LoginStatusUnauthorized:
		return fmt.Errorf("that Telegram account has no admin access")
	default:
		return fmt.Errorf("login expired before it was approved")
	}
}

func runMe(ctx context.Context, api *client.HTTPClient, store *client.SessionStore) error {
	if err := attachSession(api, store); err != nil {
		return err
	}
	user, err := api.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s (%s)\n", user.FirstName, user.LastName, user.Role)
	if user.Username != "" {
		fmt.Printf("telegram: @%s\n", user.Username)
	}
	if user.PhoneNumber != "" {
		fmt.Printf("phone: %s\n", user.PhoneNumber)
	}
	return nil
}

func runDashboard(ctx context.Context, api *client.HTTPClient, store *client.SessionStore) error {
	if err := attachSession(api, store); err != nil {
		return err
	}
	stats, err := api.DashboardStats(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "total orders\t%d\n", stats.TotalOrders)
	fmt.Fprintf(w, "today's orders\t%d\n", stats.TodayOrders)
	fmt.Fprintf(w, "pending orders\t%d\n", stats.PendingOrders)
	fmt.Fprintf(w, "completed orders\t%d\n", stats.CompletedOrders)
	fmt.Fprintf(w, "products\t%d\n", stats.TotalProducts)
	fmt.Fprintf(w, "revenue\t%s so'm\n", stats.TotalRevenue.StringFixed(2))
	return w.Flush()
}

func runOrders(ctx context.Context, api *client.HTTPClient, store *client.SessionStore, args []string) error {
	fs := flag.NewFlagSet("orders", flag.ExitOnError)
	today := fs.Bool("today", false, "only orders created since midnight")
	status := fs.String("status", "", "filter by status")
	search := fs.String("search", "", "match order number, customer name or phone")
	page := fs.Int("page", 1, "page number")
	pageSize := fs.Int("page-size", 20, "rows per page")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := attachSession(api, store); err != nil {
		return err
	}

	query := url.Values{}
	query.Set("page", fmt.Sprint(*page))
	query.Set("page_size", fmt.Sprint(*pageSize))
	if *status != "" {
		query.Set("status", *status)
	}
	if *search != "" {
		query.Set("search", *search)
	}

	var (
		orders []models.Order
		err    error
	)
	if *today {
		orders, err = api.TodayOrders(ctx, query)
	} else {
		orders, err = api.Orders(ctx, query)
	}
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Println("no orders")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tSTATUS\tCUSTOMER\tTOTAL\tCREATED")
	for _, order := range orders {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			order.OrderNumber,
			order.Status,
			order.CustomerName,
			order.TotalAmount.StringFixed(2),
			order.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	return w.Flush()
}

func runProducts(ctx context.Context, api *client.HTTPClient, store *client.SessionStore, args []string) error {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	search := fs.String("search", "", "match product name")
	page := fs.Int("page", 1, "page number")
	pageSize := fs.Int("page-size", 20, "rows per page")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := attachSession(api, store); err != nil {
		return err
	}

	query := url.Values{}
	query.Set("page", fmt.Sprint(*page))
	query.Set("page_size", fmt.Sprint(*pageSize))
	if *search != "" {
		query.Set("search", *search)
	}

	products, err := api.Products(ctx, query)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		fmt.Println("no products")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTYPE\tPRICE\tSTOCK\tAVAILABLE")
	for _, product := range products {
		available := "yes"
		if !product.IsAvailable {
			available = "no"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			product.NameUz,
			product.ProductType,
			product.Price.StringFixed(2),
			product.StockQuantity,
			available,
		)
	}
	return w.Flush()
}

func runSignOut(store *client.SessionStore) error {
	auth := client.NewAuthContext(store)
	if err := auth.SignOut(); err != nil {
		return err
	}
	fmt.Println("signed out")
	return nil
}
