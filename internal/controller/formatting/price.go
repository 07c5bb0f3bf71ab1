package formatting

import "fmt"

// FormatPrice форматирует цену из копеек в рубли
func FormatPrice(priceInKopecks int) string {
	price := float64(priceInKopecks) / 100
	return fmt.Sprintf("%.2f ₽", price)
}

// FormatPriceShort форматирует цену без копеек, если они равны 0
func FormatPriceShort(priceInKopecks int) string {
	price := float64(priceInKopecks) / 100
	if priceInKopecks%100 == 0 {
		return fmt.Sprintf("%.0f ₽", price)
	}
	return fmt.Sprintf("%.2f ₽", price)
}
