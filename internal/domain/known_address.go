package domain

// KnownAddress maps a blockchain address to a human label and category
// (exchange, bridge, market_maker, defi, token). Reference data; rows are
// upserted on re-seed. Addresses are stored in canonical lowercase form.
type KnownAddress struct {
	Address  string // natural key, lowercase
	Label    string
	Category string
}

// UnknownWalletLabel is used for addresses with no known-address entry.
const UnknownWalletLabel = "Unknown Wallet"
