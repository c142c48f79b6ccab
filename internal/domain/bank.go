package domain

// Bank is one row of the banks table. Code is the short name used by the
// scraper ("CBE"); Name is the canonical bank name the persistence layer
// keys on.
type Bank struct {
	ID      int64
	Code    string
	Name    string
	AppName string
	AppID   string // Google Play package id
}

// BankNames maps scraper codes to canonical bank names, mirrored in the
// banks table seed.
var BankNames = map[string]string{
	"CBE":    "Commercial Bank of Ethiopia",
	"BOA":    "Bank of Abyssinia",
	"Dashen": "Dashen Bank",
}
