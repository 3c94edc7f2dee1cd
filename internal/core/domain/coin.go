package domain

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// MaxCoinAmount is the largest representable coin value in lovelace.
// The total supply is bounded, so any sum exceeding this cap indicates a
// corrupted UTXO set rather than a legitimate balance.
const MaxCoinAmount Coin = 45000000000000000

// LovelacePerAda is the number of base units that make a whole coin.
const LovelacePerAda = 1000000

// Coin is an amount of currency expressed in its smallest unit (lovelace).
type Coin uint64

// NewCoin returns a Coin from a raw amount, checking it against the cap.
func NewCoin(amount uint64) (Coin, error) {
	if Coin(amount) > MaxCoinAmount {
		return 0, ErrCoinOverflow
	}
	return Coin(amount), nil
}

// Add returns c + other, failing loudly if the result would exceed
// MaxCoinAmount. Silent wrapping would misreport funds, so overflow is an
// error, never a truncation.
func (c Coin) Add(other Coin) (Coin, error) {
	sum := c + other
	if sum < c || sum > MaxCoinAmount {
		return 0, ErrCoinOverflow
	}
	return sum, nil
}

// ToDecimal converts the amount from lovelace to whole coins.
func (c Coin) ToDecimal() decimal.Decimal {
	amount := decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(c)), 0)
	return amount.Div(decimal.NewFromInt(LovelacePerAda))
}
