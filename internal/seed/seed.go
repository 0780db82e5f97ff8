package seed

import (
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"techfix-hub/internal/auth"
	"techfix-hub/internal/data"
	"techfix-hub/internal/logging"
	"techfix-hub/internal/model"
)

type User struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Role     string `yaml:"role"`
	Credits  int64  `yaml:"credits"`
	Password string `yaml:"password"`
}

type Product struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Category    string           `yaml:"category"`
	Price       int64            `yaml:"price"`
	Prices      map[string]int64 `yaml:"prices"`
}

type File struct {
	Users    []User    `yaml:"users"`
	Products []Product `yaml:"products"`
}

// Initialize наполняет пустое хранилище демо-данными: пользователи и
// товары из YAML-файла (если задан) или встроенные, плюс двадцать
// исторических заказов за последние полгода.
func Initialize(svc *data.Service, path string) error {
	existing, err := svc.Users()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	seedFile := defaults()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := yaml.Unmarshal(raw, &seedFile); err != nil {
			return err
		}
	}

	var users []model.User
	for _, u := range seedFile.Users {
		user := model.User{
			Name:    u.Name,
			Email:   u.Email,
			Role:    u.Role,
			Credits: u.Credits,
		}
		if u.Password != "" {
			hash, err := auth.HashPassword(u.Password)
			if err != nil {
				return err
			}
			user.PasswordHash = hash
		}
		created, err := svc.AddUser(user)
		if err != nil {
			return err
		}
		users = append(users, *created)
	}

	var products []model.Product
	for _, p := range seedFile.Products {
		created, err := svc.AddProduct(model.Product{
			Name:        p.Name,
			Description: p.Description,
			Category:    p.Category,
			Price:       p.Price,
			Prices:      p.Prices,
		})
		if err != nil {
			return err
		}
		products = append(products, *created)
	}

	if len(users) == 0 || len(products) == 0 {
		return nil
	}

	statuses := []model.OrderStatus{model.OrderPending, model.OrderProcessing, model.OrderCompleted}
	now := time.Now()
	for i := 0; i < 20; i++ {
		user := users[rand.Intn(len(users))]
		product := products[rand.Intn(len(products))]
		date := now.AddDate(0, 0, -rand.Intn(180))

		if _, err := svc.AddOrder(model.Order{
			UserID:      user.ID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Amount:      product.PriceFor(user.Role),
			Date:        date,
			Status:      statuses[rand.Intn(len(statuses))],
			Category:    product.Category,
		}); err != nil {
			return err
		}
	}

	logging.Logg.Info("Seeded demo data",
		"users", len(users),
		"products", len(products),
	)
	return nil
}

func defaults() File {
	return File{
		Users: []User{
			{Name: "Admin User", Email: "admin@example.com", Role: "admin", Credits: 100000},
			{Name: "John Doe", Email: "john@example.com", Role: "user", Credits: 50000},
			{Name: "Jane Smith", Email: "jane@example.com", Role: "user", Credits: 75000},
		},
		Products: []Product{
			{Name: "iPhone Unlock Service", Description: "Unlock any iPhone device from carrier restrictions", Price: 4999, Category: model.CategoryIMEI},
			{Name: "Android IMEI Repair", Description: "Fix IMEI issues on Android devices", Price: 3999, Category: model.CategoryIMEI},
			{Name: "PDF Conversion", Description: "Convert documents to PDF format", Price: 999, Category: model.CategoryFile},
			{Name: "Document Recovery", Description: "Recover deleted or corrupted documents", Price: 2999, Category: model.CategoryFile},
			{Name: "VPS Hosting - Basic", Description: "Virtual private server with 2GB RAM and 20GB SSD", Price: 1999, Category: model.CategoryServer},
			{Name: "Dedicated Server Setup", Description: "Setup and configuration of dedicated server", Price: 9999, Category: model.CategoryServer},
			{Name: "Remote PC Support", Description: "One-time remote technical support session", Price: 4999, Category: model.CategoryRemote},
			{Name: "Remote Database Setup", Description: "Setup and configure database systems remotely", Price: 8999, Category: model.CategoryRemote},
		},
	}
}
