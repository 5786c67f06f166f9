// Package main runs the FreshBites storefront shell: an interactive
// command loop over the local data layer, wiring the configured
// key-value backend into the repositories and services.
package main

import (
	"bufio"
	"cmp"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/delarro/freshbites/internal/config"
	"github.com/delarro/freshbites/internal/kvstore"
	"github.com/delarro/freshbites/internal/logger"
	"github.com/delarro/freshbites/internal/models"
	"github.com/delarro/freshbites/internal/repository"
	"github.com/delarro/freshbites/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

// openStore picks the key-value backend from the configuration:
// Redis, then PostgreSQL, then the file store.
func openStore(opts *config.Options) (kvstore.Store, error) {
	switch {
	case opts.RedisURL != "":
		return kvstore.NewRedisStore(opts.RedisURL)
	case opts.DatabaseDSN != "":
		return kvstore.OpenPostgres(opts.DatabaseDSN)
	default:
		return kvstore.NewFileStore(opts.StoragePath)
	}
}

// promptProduct reads the fields of a new or updated product from stdin.
func promptProduct(scanner *bufio.Scanner) (models.Product, error) {
	fmt.Print("Name: ")
	scanner.Scan()
	name := strings.TrimSpace(scanner.Text())

	fmt.Print("Price: ")
	scanner.Scan()
	price, err := decimal.NewFromString(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return models.Product{}, fmt.Errorf("invalid price: %w", err)
	}

	fmt.Print("Description (optional): ")
	scanner.Scan()
	description := strings.TrimSpace(scanner.Text())

	fmt.Print("Category id: ")
	scanner.Scan()
	categoryID := strings.TrimSpace(scanner.Text())

	return models.Product{
		Name:        name,
		Price:       price,
		Description: description,
		CategoryID:  categoryID,
	}, nil
}

// app bundles the wired services the shell dispatches to.
type app struct {
	products   *repository.Products
	categories *repository.Categories
	session    *service.Session
	checkout   *service.Checkout
}

func (a *app) printCart(ctx context.Context) {
	items := a.checkout.Cart(ctx)
	if len(items) == 0 {
		fmt.Println("Cart is empty")
		return
	}
	for _, item := range items {
		fmt.Printf("%s  x%d  %s  (subtotal %s)\n",
			item.Name, item.Quantity, item.Price.StringFixed(2), item.Subtotal().StringFixed(2))
	}
	fmt.Printf("Total: %s (%d units)\n",
		a.checkout.CartTotal(ctx).StringFixed(2), a.checkout.CartCount(ctx))
}

// repl runs the interactive shell loop.
func (a *app) repl(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("freshbites> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, register, login, logout, whoami,")
			fmt.Println("  categories, addcat <name>, editcat <id> <name>, delcat <id>,")
			fmt.Println("  products, addproduct, delproduct <id>,")
			fmt.Println("  cart, add <product-id>, qty <product-id> <n>, remove <product-id>, clearcart,")
			fmt.Println("  checkout, orders, allorders, exit")
		case "register":
			fmt.Print("Name: ")
			scanner.Scan()
			name := scanner.Text()
			fmt.Print("Email: ")
			scanner.Scan()
			email := scanner.Text()
			fmt.Print("Password: ")
			scanner.Scan()
			password := scanner.Text()
			fmt.Print("Confirm password: ")
			scanner.Scan()
			confirm := scanner.Text()
			if _, err := a.session.Register(ctx, name, email, password, confirm); err != nil {
				fmt.Println("Registration failed:", err)
			} else {
				fmt.Println("Registered. You can log in now.")
			}
		case "login":
			fmt.Print("Email: ")
			scanner.Scan()
			email := scanner.Text()
			fmt.Print("Password: ")
			scanner.Scan()
			password := scanner.Text()
			user, err := a.session.Login(ctx, email, password)
			if err != nil {
				fmt.Println("Login failed:", err)
			} else {
				fmt.Printf("Welcome, %s\n", user.Name)
			}
		case "logout":
			if err := a.session.Logout(ctx); err != nil {
				fmt.Println("Logout failed:", err)
			} else {
				fmt.Println("Logged out")
			}
		case "whoami":
			if user, ok := a.session.Current(ctx); ok {
				fmt.Printf("%s <%s> (%s)\n", user.Name, user.Email, user.Role)
			} else {
				fmt.Println("Not logged in")
			}
		case "categories":
			for _, c := range a.categories.List(ctx) {
				fmt.Printf("%s  %s\n", c.ID, c.Name)
			}
		case "addcat":
			if !a.session.IsAdmin(ctx) {
				fmt.Println("Admin only")
				continue
			}
			if len(args) < 2 {
				fmt.Println("Usage: addcat <name>")
				continue
			}
			name := strings.Join(args[1:], " ")
			if cat, err := a.categories.Create(ctx, name); err != nil {
				fmt.Println("Failed:", err)
			} else {
				fmt.Println("Created category", cat.ID)
			}
		case "editcat":
			if !a.session.IsAdmin(ctx) {
				fmt.Println("Admin only")
				continue
			}
			if len(args) < 3 {
				fmt.Println("Usage: editcat <id> <name>")
				continue
			}
			name := strings.Join(args[2:], " ")
			if err := a.categories.Update(ctx, args[1], name); err != nil {
				fmt.Println("Failed:", err)
			} else {
				fmt.Println("Category updated")
			}
		case "delcat":
			if !a.session.IsAdmin(ctx) {
				fmt.Println("Admin only")
				continue
			}
			if len(args) < 2 {
				fmt.Println("Usage: delcat <id>")
				continue
			}
			if err := a.categories.Delete(ctx, args[1]); err != nil {
				fmt.Println("Failed:", err)
			} else {
				fmt.Println("Category deleted")
			}
		case "products":
			for _, p := range a.products.List(ctx) {
				fmt.Printf("%s  %s  %s\n", p.ID, p.Name, p.Price.StringFixed(2))
			}
		case "addproduct":
			if !a.session.IsAdmin(ctx) {
				fmt.Println("Admin only")
				continue
			}
			input, err := promptProduct(scanner)
			if err != nil {
				fmt.Println("Failed:", err)
				continue
			}
			if p, err := a.products.Create(ctx, input); err != nil {
				fmt.Println("Failed:", err)
			} else {
				fmt.Println("Created product", p.ID)
			}
		case "delproduct":
			if !a.session.IsAdmin(ctx) {
				fmt.Println("Admin only")
				continue
			}
			if len(args) < 2 {
				fmt.Println("Usage: delproduct <id>")
				continue
			}
			if err := a.products.Delete(ctx, args[1]); err != nil {
				fmt.Println("Failed:", err)
			} else {
				fmt.Println("Product deleted")
			}
		case "cart":
			a.printCart(ctx)
		case "add":
			if len(args) < 2 {
				fmt.Println("Usage: add <product-id>")
				continue
			}
			product, err := a.products.GetByID(ctx, args[1])
			if err != nil {
				fmt.Println("Product not found")
				continue
			}
			if err := a.checkout.AddToCart(ctx, product); err != nil {
				fmt.Println("Failed:", err)
			} else {
				fmt.Println("Added to cart")
			}
		case "qty":
			if len(args) < 3 {
				fmt.Println("Usage: qty <product-id> <n>")
				continue
			}
			n, err := strconv.Atoi(args[2])
			if err != nil {
				fmt.Println("Invalid quantity")
				continue
			}
			if err := a.checkout.UpdateQuantity(ctx, args[1], n); err != nil {
				fmt.Println("Failed:", err)
			} else {
				fmt.Println("Quantity updated")
			}
		case "remove":
			if len(args) < 2 {
				fmt.Println("Usage: remove <product-id>")
				continue
			}
			if err := a.checkout.RemoveFromCart(ctx, args[1]); err != nil {
				fmt.Println("Failed:", err)
			} else {
				fmt.Println("Removed from cart")
			}
		case "clearcart":
			if err := a.checkout.ClearCart(ctx); err != nil {
				fmt.Println("Failed:", err)
			} else {
				fmt.Println("Cart cleared")
			}
		case "checkout":
			order, err := a.checkout.PlaceOrder(ctx)
			if err != nil {
				fmt.Println("Checkout failed:", err)
				continue
			}
			fmt.Printf("Order %s placed, total %s\n", order.ID, order.Total.StringFixed(2))
		case "orders":
			for _, o := range a.checkout.UserOrders(ctx) {
				fmt.Printf("%s  %s  %s\n", o.ID, o.Date.Format("2006-01-02 15:04"), o.Total.StringFixed(2))
			}
		case "allorders":
			if !a.session.IsAdmin(ctx) {
				fmt.Println("Admin only")
				continue
			}
			for _, o := range a.checkout.AllOrders(ctx) {
				fmt.Printf("%s  %s  %s  %s\n", o.ID, o.UserName, o.Date.Format("2006-01-02 15:04"), o.Total.StringFixed(2))
			}
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

func main() {
	options := config.Parse()

	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	store, err := openStore(options)
	if err != nil {
		zapLogger.Fatal("cannot open key-value store", zap.Error(err))
	}

	ctx := context.Background()

	users := repository.NewUsers(store, zapLogger)
	products := repository.NewProducts(store, zapLogger)
	categories := repository.NewCategories(store, zapLogger)
	carts := repository.NewCarts(store, zapLogger)
	orders := repository.NewOrders(store, zapLogger)

	// First-run bootstrap: admin account and an initialized catalog.
	if err := users.EnsureAdmin(ctx); err != nil {
		zapLogger.Fatal("cannot seed administrator", zap.Error(err))
	}
	if err := products.EnsureInitialized(ctx); err != nil {
		zapLogger.Fatal("cannot initialize product catalog", zap.Error(err))
	}

	session := service.NewSession(users, store, zapLogger)
	checkout := service.NewCheckout(session, carts, orders, zapLogger)

	a := &app{
		products:   products,
		categories: categories,
		session:    session,
		checkout:   checkout,
	}
	a.repl(ctx)
}
