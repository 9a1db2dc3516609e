package ports

type CurrencyService interface {
	Convert(amount float64, from, to string) float64
	Currencies() []string
}
