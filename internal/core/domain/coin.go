package domain

import "math"

// Coin describes a supported token.
type Coin struct {
	Symbol         string  `json:"symbol"`
	Name           string  `json:"name"`
	Decimals       int     `json:"decimals"`
	Network        string  `json:"network"`
	RealValue      bool    `json:"realValue"`
	EducationTithe float64 `json:"educationTithe,omitempty"`
	TotalSupply    float64 `json:"totalSupply,omitempty"`
	MintAddress    string  `json:"mintAddress,omitempty"`
	StartBalance   float64 `json:"startBalance"`
}

const (
	CoinRC   = "RC"
	CoinRGD  = "RGD"
	CoinHELL = "HELL"
)

// Coins is the built-in coin table.
var Coins = map[string]Coin{
	CoinRC: {
		Symbol:         CoinRC,
		Name:           "RangerCoin",
		Decimals:       9,
		Network:        "solana",
		RealValue:      true,
		EducationTithe: 0.10,
		MintAddress:    "5oe8ERNEfHWo28XhjUTm573rfqVHB86XJyKTCMsKsXyg",
	},
	CoinRGD: {
		Symbol:       CoinRGD,
		Name:         "RangerDollar",
		Decimals:     6,
		Network:      "rangerblock",
		TotalSupply:  100_000_000_000,
		StartBalance: 1000,
	},
	CoinHELL: {
		Symbol:   CoinHELL,
		Name:     "HellCoin",
		Decimals: 8,
		Network:  "rangerblock",
	},
}

// CoinSymbols lists the table in a stable order.
var CoinSymbols = []string{CoinRC, CoinRGD, CoinHELL}

// LookupCoin returns the coin for a symbol.
func LookupCoin(symbol string) (Coin, bool) {
	c, ok := Coins[symbol]
	return c, ok
}

const (
	feeRate = 0.001
	minFee  = 0.001
)

// Fee is zero for play money and max(0.001, 0.1% of amount) for real-value coins.
func (c Coin) Fee(amount float64) float64 {
	if !c.RealValue {
		return 0
	}
	return math.Max(minFee, amount*feeRate)
}

// Tithe is the share of amount routed to the education address.
func (c Coin) Tithe(amount float64) float64 {
	if c.EducationTithe <= 0 {
		return 0
	}
	return amount * c.EducationTithe
}

// StartingBalances is the balance cache of a brand new wallet.
func StartingBalances() map[string]float64 {
	b := make(map[string]float64, len(Coins))
	for _, sym := range CoinSymbols {
		b[sym] = Coins[sym].StartBalance
	}
	return b
}
