package migrate

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/iceonwheels/storefront-backend/pkg/config"
	"github.com/iceonwheels/storefront-backend/pkg/db"
	"github.com/iceonwheels/storefront-backend/pkg/db/models"
	"github.com/iceonwheels/storefront-backend/pkg/enums"
	"github.com/iceonwheels/storefront-backend/pkg/logger"
)

func strPtr(s string) *string { return &s }

var seedMenuItems = []models.MenuItem{
	{
		Name:        "Vanilla Bean Scoop",
		Description: strPtr("Classic vanilla made with real bean pods"),
		Category:    "scoops",
		Emoji:       strPtr("🍦"),
		PriceCents:  9000,
		Sizes:       pq.StringArray{string(enums.ItemSizeSmall), string(enums.ItemSizeMedium), string(enums.ItemSizeLarge)},
		IsAvailable: true,
		IsFeatured:  true,
	},
	{
		Name:        "Dark Chocolate Scoop",
		Description: strPtr("70% cocoa, churned daily"),
		Category:    "scoops",
		PriceCents:  10000,
		Sizes:       pq.StringArray{string(enums.ItemSizeSmall), string(enums.ItemSizeMedium), string(enums.ItemSizeLarge)},
		IsAvailable: true,
	},
	{
		Name:        "Mango Kulfi",
		Description: strPtr("Alphonso mango, slow reduced"),
		Category:    "kulfi",
		Emoji:       strPtr("🥭"),
		PriceCents:  8000,
		IsAvailable: true,
	},
	{
		Name:        "Cold Coffee Shake",
		Category:    "shakes",
		PriceCents:  12000,
		Sizes:       pq.StringArray{string(enums.ItemSizeMedium), string(enums.ItemSizeLarge)},
		IsAvailable: true,
	},
}

var seedToppings = []models.Topping{
	{Name: "Roasted Almonds", PriceCents: 2000, IsAvailable: true},
	{Name: "Chocolate Chips", PriceCents: 1500, IsAvailable: true},
	{Name: "Fresh Fruit", PriceCents: 2500, IsAvailable: true},
}

// MaybeSeedMenu inserts a starter menu when the flag is set and the
// menu is still empty. Safe to run on every boot.
func MaybeSeedMenu(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.FeatureFlags.SeedMenu {
		return nil
	}

	var count int64
	if err := client.DB().WithContext(ctx).Model(&models.MenuItem{}).Count(&count).Error; err != nil {
		return fmt.Errorf("counting menu items: %w", err)
	}
	if count > 0 {
		logg.Info(ctx, "menu already populated, skipping seed")
		return nil
	}

	if err := client.DB().WithContext(ctx).Create(&seedMenuItems).Error; err != nil {
		return fmt.Errorf("seeding menu items: %w", err)
	}
	if err := client.DB().WithContext(ctx).Create(&seedToppings).Error; err != nil {
		return fmt.Errorf("seeding toppings: %w", err)
	}

	logg.Info(logg.WithFields(ctx, map[string]any{
		"items":    len(seedMenuItems),
		"toppings": len(seedToppings),
	}), "seeded starter menu")
	return nil
}
