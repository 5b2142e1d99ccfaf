package models

import "math"

// DerivePricing computes the tax amount and tax-inclusive price from the base
// price and tax rate (percent). Both derived values are rounded to the
// nearest currency unit. Caller-submitted taxAmount/priceWithTax are never
// trusted; every product write goes through this.
func DerivePricing(basePrice, taxRate float64) (taxAmount, priceWithTax float64) {
	taxAmount = math.Round(basePrice * taxRate / 100)
	priceWithTax = basePrice + taxAmount
	return taxAmount, priceWithTax
}
