package catalog

import (
	"context"
	"fmt"
)

// seedLaptops is the starter catalog inserted on first open. Prices are USD.
var seedLaptops = []Laptop{
	{Brand: "Dell", Model: "Inspiron 15", Price: 650, Description: "15.6\" FHD, Intel i5, 16GB RAM, 512GB SSD, integrated graphics", GPUIntensity: TierLow, DisplayQuality: TierMedium, Portability: TierMedium, Multitasking: TierMedium, ProcessingSpeed: TierMedium},
	{Brand: "ASUS", Model: "TUF Gaming F15", Price: 980, Description: "15.6\" 144Hz, Intel i7, 16GB RAM, RTX 4050, 1TB SSD", GPUIntensity: TierHigh, DisplayQuality: TierHigh, Portability: TierLow, Multitasking: TierHigh, ProcessingSpeed: TierHigh},
	{Brand: "Lenovo", Model: "ThinkPad X1 Carbon", Price: 1450, Description: "14\" WUXGA, Intel i7, 16GB RAM, 512GB SSD, 1.1kg chassis", GPUIntensity: TierLow, DisplayQuality: TierHigh, Portability: TierHigh, Multitasking: TierHigh, ProcessingSpeed: TierHigh},
	{Brand: "HP", Model: "Pavilion 14", Price: 550, Description: "14\" FHD, AMD Ryzen 5, 8GB RAM, 256GB SSD", GPUIntensity: TierLow, DisplayQuality: TierMedium, Portability: TierHigh, Multitasking: TierLow, ProcessingSpeed: TierMedium},
	{Brand: "Acer", Model: "Nitro 5", Price: 850, Description: "15.6\" 144Hz, AMD Ryzen 7, 16GB RAM, RTX 3060, 512GB SSD", GPUIntensity: TierHigh, DisplayQuality: TierHigh, Portability: TierLow, Multitasking: TierHigh, ProcessingSpeed: TierHigh},
	{Brand: "Apple", Model: "MacBook Air M2", Price: 1100, Description: "13.6\" Liquid Retina, M2, 16GB RAM, 512GB SSD, fanless", GPUIntensity: TierMedium, DisplayQuality: TierHigh, Portability: TierHigh, Multitasking: TierHigh, ProcessingSpeed: TierHigh},
	{Brand: "MSI", Model: "Katana 15", Price: 999, Description: "15.6\" 144Hz, Intel i7, 16GB RAM, RTX 4060, 1TB SSD", GPUIntensity: TierHigh, DisplayQuality: TierHigh, Portability: TierLow, Multitasking: TierHigh, ProcessingSpeed: TierHigh},
	{Brand: "Lenovo", Model: "IdeaPad Slim 3", Price: 430, Description: "15.6\" FHD, AMD Ryzen 3, 8GB RAM, 256GB SSD", GPUIntensity: TierLow, DisplayQuality: TierLow, Portability: TierMedium, Multitasking: TierLow, ProcessingSpeed: TierLow},
	{Brand: "Dell", Model: "XPS 15", Price: 1900, Description: "15.6\" 3.5K OLED, Intel i9, 32GB RAM, RTX 4050, 1TB SSD", GPUIntensity: TierMedium, DisplayQuality: TierHigh, Portability: TierMedium, Multitasking: TierHigh, ProcessingSpeed: TierHigh},
	{Brand: "HP", Model: "Victus 16", Price: 780, Description: "16.1\" FHD 144Hz, AMD Ryzen 5, 16GB RAM, RTX 3050, 512GB SSD", GPUIntensity: TierMedium, DisplayQuality: TierMedium, Portability: TierLow, Multitasking: TierHigh, ProcessingSpeed: TierMedium},
}

// Seed inserts the starter catalog when the store is empty. Re-running on a
// populated store is a no-op, so the prune/reseed cron job can call it freely.
func Seed(ctx context.Context, store Store) error {
	count, err := store.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, l := range seedLaptops {
		if _, err := store.Upsert(ctx, l); err != nil {
			return fmt.Errorf("catalog: seed %s %s: %w", l.Brand, l.Model, err)
		}
	}
	return nil
}
