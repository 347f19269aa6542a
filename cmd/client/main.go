// Command client is a terminal storefront: it browses the catalog through
// the listing pipeline, keeps a cart persisted to a local file and submits
// checkouts, all against a running storefront server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"storefront-service/internal/cart"
	"storefront-service/internal/checkout"
	"storefront-service/internal/client"
	"storefront-service/internal/listing"
	"storefront-service/internal/models"
	"storefront-service/internal/redisclient"
	"storefront-service/internal/util"
)

func main() {
	var (
		apiURL    = flag.String("api", "http://localhost:8080", "storefront API base URL")
		cartFile  = flag.String("cart", "cart.json", "path of the persisted cart file")
		redisAddr = flag.String("redis", "", "redis address for cart persistence (overrides -cart)")

		showFilters = flag.Bool("filters", false, "list the available categories, brands and options")

		category = flag.String("category", listing.CategoryAll, "category filter")
		brands   = flag.String("brands", "", "comma-separated brand filter")
		minPrice = flag.Float64("min-price", -1, "minimum price (default: catalog minimum)")
		maxPrice = flag.Float64("max-price", -1, "maximum price (default: catalog maximum)")
		sortMode = flag.String("sort", string(listing.SortReleaseDateDesc), "sort mode")
		page     = flag.Int("page", 1, "page number")

		add    = flag.String("add", "", "add a product to the cart: id or id:option")
		remove = flag.String("remove", "", "remove a cart line: id or id:option")

		doCheckout = flag.Bool("checkout", false, "submit the cart")
		name       = flag.String("name", "", "checkout: first name")
		surname    = flag.String("surname", "", "checkout: surname")
		phone      = flag.String("phone", "", "checkout: 10-digit phone")
		email      = flag.String("email", "", "checkout: email")
		zipCode    = flag.String("zip", "", "checkout: 4-digit zip code")
	)
	flag.Parse()

	logger := util.GetLogger()
	defer util.SyncLogger()

	ctx := context.Background()
	api := client.New(*apiURL)

	var cartStore cart.Store = cart.NewFileStore(*cartFile)
	if *redisAddr != "" {
		rc, err := redisclient.NewClient(*redisAddr, "", 0)
		if err != nil {
			log.Fatalf("Failed to connect to redis at %s: %v", *redisAddr, err)
		}
		defer rc.Close()
		cartStore = rc.NewCartStore()
	}
	c := cart.New(cartStore, logger)

	switch {
	case *showFilters:
		printFilters(ctx, api)

	case *add != "":
		id, option := splitLine(*add)
		product, err := api.ProductByID(ctx, id)
		if err != nil {
			log.Fatalf("Failed to fetch product %s: %v", id, err)
		}
		c.Add(ctx, product, option)
		printCart(c)

	case *remove != "":
		id, option := splitLine(*remove)
		c.Remove(ctx, id, option)
		printCart(c)

	case *doCheckout:
		submitter := checkout.NewSubmitter(api, c, logger)
		msg, err := submitter.Submit(ctx, checkout.Form{
			Name:    *name,
			Surname: *surname,
			Phone:   *phone,
			Email:   *email,
			ZipCode: *zipCode,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(msg)

	default:
		browse(ctx, api, *category, *brands, *minPrice, *maxPrice, *sortMode, *page)
		printCart(c)
	}
}

func browse(ctx context.Context, api *client.Client, category, brands string, minPrice, maxPrice float64, sortMode string, page int) {
	products, err := api.Products(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch products: %v", err)
	}

	state := listing.NewState(products)
	if category != listing.CategoryAll {
		state.SetCategory(category)
	}
	if brands != "" {
		state.SetBrands(strings.Split(brands, ","))
	}
	if minPrice >= 0 || maxPrice >= 0 {
		lo, hi := state.MinPrice, state.MaxPrice
		if minPrice >= 0 {
			lo = minPrice
		}
		if maxPrice >= 0 {
			hi = maxPrice
		}
		state.SetPriceRange(lo, hi)
	}
	state.SetSort(listing.SortMode(sortMode))
	state.Page = page

	result := listing.Apply(products, state)

	fmt.Printf("Page %d/%d (%d products)\n", result.Page, result.TotalPages, result.Total)
	for _, p := range result.Items {
		fmt.Printf("  %-8s %-30s %-12s %-12s %s\n",
			p.ID, p.Name, p.Category, p.Brand, models.FormatPrice(p.Price))
	}
}

// printFilters lists the values usable with -category, -brands and the
// option suffix of -add/-remove.
func printFilters(ctx context.Context, api *client.Client) {
	categories, err := api.Categories(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch categories: %v", err)
	}
	brands, err := api.Brands(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch brands: %v", err)
	}
	options, err := api.Options(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch options: %v", err)
	}

	names := []string{listing.CategoryAll}
	for _, category := range categories {
		names = append(names, category.Name)
	}
	fmt.Printf("Categories: %s\n", strings.Join(names, ", "))

	names = names[:0]
	for _, brand := range brands {
		names = append(names, brand.Name)
	}
	fmt.Printf("Brands:     %s\n", strings.Join(names, ", "))

	names = names[:0]
	for _, option := range options {
		names = append(names, option.OptionName)
	}
	fmt.Printf("Options:    %s\n", strings.Join(names, ", "))
}

func printCart(c *cart.Cart) {
	items := c.Items()
	if len(items) == 0 {
		fmt.Println("Cart is empty")
		return
	}

	fmt.Println("Cart:")
	for _, item := range items {
		line := fmt.Sprintf("  %dx %s", item.Quantity, item.Name)
		if item.SelectedOption.Valid {
			line += fmt.Sprintf(" (%s)", item.SelectedOption.Value)
		}
		fmt.Printf("%s = %s\n", line, models.FormatPrice(item.Price*float64(item.Quantity)))
	}
	fmt.Printf("Subtotal: %s\n", models.FormatPrice(c.Subtotal()))
}

// splitLine parses "id" or "id:option" into an identity key.
func splitLine(s string) (string, models.OptionValue) {
	id, opt, found := strings.Cut(s, ":")
	if !found {
		return id, models.NoOption()
	}
	return id, models.Option(opt)
}
