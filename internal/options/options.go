// Package options scrapes the options page: contract expirations and
// the call/put contract chains for each expiration.
package options

import (
	"sort"
	"strconv"
	"time"

	"tickerscrape/internal/clean"
	"tickerscrape/internal/schema"
)

// ContractExpiration is one expiration offered for a symbol. The raw
// timestamp is kept verbatim for building the chain page URL.
type ContractExpiration struct {
	Symbol         string
	Timestamp      string
	ExpirationDate time.Time
}

// NewContractExpiration converts a unix timestamp string into an
// expiration for symbol.
func NewContractExpiration(symbol, timestamp string) (*ContractExpiration, error) {
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return nil, err
	}
	return &ContractExpiration{
		Symbol:         symbol,
		Timestamp:      timestamp,
		ExpirationDate: time.Unix(ts, 0).UTC(),
	}, nil
}

// ContractExpirationList holds expirations sorted ascending by date.
type ContractExpirationList struct {
	Expirations []ContractExpiration
}

// NewContractExpirationList sorts expirations ascending by date.
func NewContractExpirationList(expirations []ContractExpiration) *ContractExpirationList {
	list := &ContractExpirationList{Expirations: expirations}
	list.sort()
	return list
}

func (l *ContractExpirationList) sort() {
	sort.SliceStable(l.Expirations, func(i, j int) bool {
		return l.Expirations[i].ExpirationDate.Before(l.Expirations[j].ExpirationDate)
	})
}

// Len returns the number of expirations.
func (l *ContractExpirationList) Len() int { return len(l.Expirations) }

// FilterAfter drops expirations strictly before after.
func (l *ContractExpirationList) FilterAfter(after time.Time) {
	kept := l.Expirations[:0]
	for _, exp := range l.Expirations {
		if !exp.ExpirationDate.Before(after) {
			kept = append(kept, exp)
		}
	}
	l.Expirations = kept
}

// FilterBefore drops expirations strictly after before.
func (l *ContractExpirationList) FilterBefore(before time.Time) {
	kept := l.Expirations[:0]
	for _, exp := range l.Expirations {
		if !exp.ExpirationDate.After(before) {
			kept = append(kept, exp)
		}
	}
	l.Expirations = kept
}

// FilterBetween keeps only expirations within [after, before].
func (l *ContractExpirationList) FilterBetween(after, before time.Time) {
	l.FilterAfter(after)
	l.FilterBefore(before)
}

// FilterAfterDays keeps only expirations at least days from now.
func (l *ContractExpirationList) FilterAfterDays(days int) {
	l.FilterAfter(time.Now().AddDate(0, 0, days))
}

// FilterBeforeDays keeps only expirations within days from now.
func (l *ContractExpirationList) FilterBeforeDays(days int) {
	l.FilterBefore(time.Now().AddDate(0, 0, days))
}

// FilterBetweenDays applies both day filters. A zero bound is skipped.
func (l *ContractExpirationList) FilterBetweenDays(afterDays, beforeDays int) {
	if afterDays != 0 {
		l.FilterAfterDays(afterDays)
	}
	if beforeDays != 0 {
		l.FilterBeforeDays(beforeDays)
	}
}

// Concat returns a new sorted list holding the expirations of both
// operands.
func (l *ContractExpirationList) Concat(other *ContractExpirationList) *ContractExpirationList {
	combined := make([]ContractExpiration, 0, len(l.Expirations)+len(other.Expirations))
	combined = append(combined, l.Expirations...)
	combined = append(combined, other.Expirations...)
	return NewContractExpirationList(combined)
}

// OptionContractType distinguishes calls from puts.
type OptionContractType string

const (
	Call OptionContractType = "call"
	Put  OptionContractType = "put"
)

// OptionContract is one row of a call or put table. A bare "-" cell is
// absent, not zero.
type OptionContract struct {
	Symbol         string
	ContractType   OptionContractType
	Timestamp      string
	ExpirationDate time.Time
	InTheMoney     bool

	ContractName string

	Strike    *float64
	LastPrice *float64

	Bid *float64
	Ask *float64

	Change            *float64
	PercentChange     *float64
	Volume            *int64
	OpenInterest      *int64
	ImpliedVolatility *float64
}

var contractSchema = &schema.Schema{
	Kind: "option_contract",
	Fields: []schema.Field{
		{Name: "contract_name", Kind: schema.String, Required: true},
		{Name: "strike", Kind: schema.Float, DashMissing: true},
		{Name: "last_price", Kind: schema.Float, DashMissing: true},
		{Name: "bid", Kind: schema.Float, DashMissing: true},
		{Name: "ask", Kind: schema.Float, DashMissing: true},
		{Name: "change", Kind: schema.Float, Clean: clean.Percentage, DashMissing: true},
		{Name: "percent_change", Kind: schema.Float, Clean: clean.Percentage, DashMissing: true},
		{Name: "volume", Kind: schema.Int, DashMissing: true},
		{Name: "open_interest", Kind: schema.Int, DashMissing: true},
		{Name: "implied_volatility", Kind: schema.Float, Clean: clean.Percentage, DashMissing: true},
	},
}

func contractFromRaw(exp ContractExpiration, typ OptionContractType, inTheMoney bool, raw map[string]string) (*OptionContract, error) {
	rec, err := contractSchema.Assemble(raw)
	if err != nil {
		return nil, err
	}

	return &OptionContract{
		Symbol:         exp.Symbol,
		ContractType:   typ,
		Timestamp:      exp.Timestamp,
		ExpirationDate: exp.ExpirationDate,
		InTheMoney:     inTheMoney,

		ContractName: rec.Str("contract_name"),

		Strike:    rec.FloatPtr("strike"),
		LastPrice: rec.FloatPtr("last_price"),

		Bid: rec.FloatPtr("bid"),
		Ask: rec.FloatPtr("ask"),

		Change:            rec.FloatPtr("change"),
		PercentChange:     rec.FloatPtr("percent_change"),
		Volume:            rec.IntPtr("volume"),
		OpenInterest:      rec.IntPtr("open_interest"),
		ImpliedVolatility: rec.FloatPtr("implied_volatility"),
	}, nil
}

// OptionsChain is every contract sharing one expiration date.
type OptionsChain struct {
	Symbol         string
	ExpirationDate time.Time
	Chain          []OptionContract
}

// Len returns the number of contracts in the chain.
func (c *OptionsChain) Len() int { return len(c.Chain) }

func (c *OptionsChain) filter(typ OptionContractType) *OptionsChain {
	var kept []OptionContract
	for _, contract := range c.Chain {
		if contract.ContractType == typ {
			kept = append(kept, contract)
		}
	}
	return &OptionsChain{Symbol: c.Symbol, ExpirationDate: c.ExpirationDate, Chain: kept}
}

// Calls returns a chain holding only call contracts.
func (c *OptionsChain) Calls() *OptionsChain { return c.filter(Call) }

// Puts returns a chain holding only put contracts.
func (c *OptionsChain) Puts() *OptionsChain { return c.filter(Put) }

// MultipleOptionChains groups the chains of several expirations, or of
// several symbols when batches are concatenated.
type MultipleOptionChains struct {
	Chains      []OptionsChain
	Expirations ContractExpirationList
}

// Len returns the number of chains.
func (m *MultipleOptionChains) Len() int { return len(m.Chains) }

// Calls returns the group with every chain reduced to call contracts.
func (m *MultipleOptionChains) Calls() *MultipleOptionChains {
	chains := make([]OptionsChain, 0, len(m.Chains))
	for _, chain := range m.Chains {
		chains = append(chains, *chain.Calls())
	}
	return &MultipleOptionChains{Chains: chains, Expirations: m.Expirations}
}

// Puts returns the group with every chain reduced to put contracts.
func (m *MultipleOptionChains) Puts() *MultipleOptionChains {
	chains := make([]OptionsChain, 0, len(m.Chains))
	for _, chain := range m.Chains {
		chains = append(chains, *chain.Puts())
	}
	return &MultipleOptionChains{Chains: chains, Expirations: m.Expirations}
}

// Concat returns a new group holding the chains and expirations of both
// operands.
func (m *MultipleOptionChains) Concat(other *MultipleOptionChains) *MultipleOptionChains {
	chains := make([]OptionsChain, 0, len(m.Chains)+len(other.Chains))
	chains = append(chains, m.Chains...)
	chains = append(chains, other.Chains...)
	return &MultipleOptionChains{
		Chains:      chains,
		Expirations: *m.Expirations.Concat(&other.Expirations),
	}
}

// Contracts returns every contract across all chains, in chain order.
func (m *MultipleOptionChains) Contracts() []OptionContract {
	var contracts []OptionContract
	for _, chain := range m.Chains {
		contracts = append(contracts, chain.Chain...)
	}
	return contracts
}
