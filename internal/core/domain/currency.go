package domain

// RateTable maps a base currency to its quote currencies and rates.
type RateTable map[string]map[string]float64
