package main

import (
	"os"
	"time"

	"github.com/jamolstroy/admin-api/internal/config"
	"github.com/jamolstroy/admin-api/internal/constants"
	"github.com/jamolstroy/admin-api/internal/logger"
	"github.com/jamolstroy/admin-api/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	if telegramID := os.Getenv("JS_DEFAULT_ADMIN_TELEGRAM_ID"); telegramID != "" {
		if err := models.InitDefaultAdmin(telegramID, os.Getenv("JS_DEFAULT_ADMIN_FIRST_NAME")); err != nil {
			stdLog.Printf("Failed to init default admin: %v", err)
		}
	}

	categories := []models.Category{
		{NameUz: "Qurilish materiallari", NameRu: "Стройматериалы", Icon: "🧱", SortOrder: 1},
		{NameUz: "Asbob-uskunalar", NameRu: "Инструменты", Icon: "🔨", SortOrder: 2},
		{NameUz: "Santexnika", NameRu: "Сантехника", Icon: "🚿", SortOrder: 3},
	}

	for i := range categories {
		cat := &categories[i]
		var existing models.Category
		if err := models.DB.Where("name_uz = ?", cat.NameUz).First(&existing).Error; err != nil {
			if err := models.DB.Create(cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.NameUz, err)
			} else {
				stdLog.Printf("Created category: %s", cat.NameUz)
			}
		} else {
			*cat = existing
			stdLog.Printf("Category already exists: %s", cat.NameUz)
		}
	}

	materialsID := categories[0].ID
	toolsID := categories[1].ID
	plumbingID := categories[2].ID

	rentalPrice := models.NewMoneyFromDecimal(decimal.NewFromInt(150000))
	products := []models.Product{
		{
			CategoryID:    materialsID,
			NameUz:        "Sement M400, 50 kg",
			NameRu:        "Цемент М400, 50 кг",
			DescriptionUz: "Yuqori sifatli portlandsement, fundament va suvoq ishlari uchun.",
			DescriptionRu: "Высококачественный портландцемент для фундамента и штукатурки.",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromInt(42000)),
			Unit:          "qop",
			ProductType:   constants.ProductTypeSale,
			Images:        models.StringArray{"https://images.unsplash.com/photo-1590241899810-fb2e99d02f37?w=800"},
			StockQuantity: 500,
			IsAvailable:   true,
			IsFeatured:    true,
		},
		{
			CategoryID:    materialsID,
			NameUz:        "G'isht, qizil",
			NameRu:        "Кирпич красный",
			DescriptionUz: "Pishiq qizil g'isht, tashqi va ichki devorlar uchun.",
			DescriptionRu: "Обожжённый красный кирпич для наружных и внутренних стен.",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromInt(1200)),
			Unit:          "dona",
			ProductType:   constants.ProductTypeSale,
			StockQuantity: 20000,
			IsAvailable:   true,
		},
		{
			CategoryID:         toolsID,
			NameUz:             "Beton aralashtirgich 180L",
			NameRu:             "Бетономешалка 180л",
			DescriptionUz:      "Ijaraga beriladigan beton aralashtirgich, 180 litr.",
			DescriptionRu:      "Бетономешалка в аренду, 180 литров.",
			Price:              models.NewMoneyFromDecimal(decimal.NewFromInt(3500000)),
			Unit:               "dona",
			ProductType:        constants.ProductTypeRental,
			RentalPricePerUnit: &rentalPrice,
			RentalTimeUnit:     constants.RentalTimeUnitDay,
			StockQuantity:      6,
			MinOrderQuantity:   1,
			IsAvailable:        true,
			IsPopular:          true,
		},
		{
			CategoryID:    plumbingID,
			NameUz:        "Polipropilen quvur 20mm",
			NameRu:        "Полипропиленовая труба 20мм",
			DescriptionUz: "Issiq va sovuq suv uchun quvur, 4 metr.",
			DescriptionRu: "Труба для горячей и холодной воды, 4 метра.",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromInt(18000)),
			Unit:          "dona",
			ProductType:   constants.ProductTypeSale,
			StockQuantity: 800,
			IsAvailable:   true,
		},
	}

	for i := range products {
		product := &products[i]
		var existing models.Product
		if err := models.DB.Where("name_uz = ?", product.NameUz).First(&existing).Error; err != nil {
			if err := models.DB.Create(product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.NameUz, err)
			} else {
				stdLog.Printf("Created product: %s", product.NameUz)
			}
		} else {
			*product = existing
			stdLog.Printf("Product already exists: %s", product.NameUz)
		}
	}

	customer := models.User{
		FirstName:   "Bekzod",
		LastName:    "Karimov",
		PhoneNumber: "+998901234567",
		Role:        constants.RoleCustomer,
	}
	var existingCustomer models.User
	if err := models.DB.Where("phone_number = ?", customer.PhoneNumber).First(&existingCustomer).Error; err != nil {
		if err := models.DB.Create(&customer).Error; err != nil {
			stdLog.Printf("Failed to create demo customer: %v", err)
		} else {
			stdLog.Printf("Created demo customer: %s", customer.FullName())
		}
	} else {
		customer = existingCustomer
	}

	if customer.ID != "" && len(products) > 0 {
		seedOrders(stdLog, customer, products)
	}

	stdLog.Printf("Seed finished")
}

type printfLogger interface {
	Printf(format string, v ...interface{})
}

func seedOrders(stdLog printfLogger, customer models.User, products []models.Product) {
	now := time.Now()
	orders := []struct {
		number  string
		status  string
		created time.Time
		items   []models.OrderItem
	}{
		{
			number:  "JS-2024-0001",
			status:  constants.OrderStatusDelivered,
			created: now.AddDate(0, 0, -7),
			items: []models.OrderItem{
				{ProductID: products[0].ID, Quantity: 10, Price: products[0].Price},
			},
		},
		{
			number:  "JS-2024-0002",
			status:  constants.OrderStatusPending,
			created: now,
			items: []models.OrderItem{
				{ProductID: products[1].ID, Quantity: 500, Price: products[1].Price},
				{ProductID: products[3].ID, Quantity: 20, Price: products[3].Price},
			},
		},
	}

	for _, entry := range orders {
		var existing models.Order
		if err := models.DB.Where("order_number = ?", entry.number).First(&existing).Error; err == nil {
			stdLog.Printf("Order already exists: %s", entry.number)
			continue
		}

		total := decimal.Zero
		for _, item := range entry.items {
			total = total.Add(item.Price.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		order := models.Order{
			OrderNumber:   entry.number,
			UserID:        &customer.ID,
			CustomerName:  customer.FullName(),
			CustomerPhone: customer.PhoneNumber,
			Status:        entry.status,
			TotalAmount:   models.NewMoneyFromDecimal(total),
			Items:         entry.items,
			CreatedAt:     entry.created,
		}
		if err := models.DB.Create(&order).Error; err != nil {
			stdLog.Printf("Failed to create order %s: %v", entry.number, err)
		} else {
			stdLog.Printf("Created order: %s (%s)", entry.number, entry.status)
		}
	}
}
