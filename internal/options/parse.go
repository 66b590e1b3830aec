package options

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"tickerscrape/internal/clean"
	"tickerscrape/internal/htmltable"
)

const expirationsSelector = `div.Fl\(start\).Pend\(18px\)`

// ParseExpirations extracts the expiration dropdown from the options
// landing page. Returns nil when the dropdown is absent.
func ParseExpirations(symbol string, doc *goquery.Document) (*ContractExpirationList, error) {
	dropdown := doc.Find(expirationsSelector).First()
	if dropdown.Length() == 0 {
		return nil, nil
	}

	var expirations []ContractExpiration
	var parseErr error

	dropdown.Find("option").EachWithBreak(func(_ int, opt *goquery.Selection) bool {
		timestamp, ok := opt.Attr("value")
		if !ok {
			return true
		}
		exp, err := NewContractExpiration(symbol, timestamp)
		if err != nil {
			parseErr = err
			return false
		}
		expirations = append(expirations, *exp)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	if len(expirations) == 0 {
		return nil, nil
	}

	return NewContractExpirationList(expirations), nil
}

// ParseContractTable parses one call or put table. Column names come
// from the table header and repeat cyclically, so rows that render
// extra cells still map onto the right columns.
func ParseContractTable(exp ContractExpiration, typ OptionContractType, table *goquery.Selection) ([]OptionContract, error) {
	head := table.Find("thead").First()
	body := table.Find("tbody").First()
	if head.Length() == 0 || body.Length() == 0 {
		return nil, nil
	}

	headers := htmltable.CellTexts(head.Find("tr").First())
	if len(headers) == 0 {
		return nil, nil
	}

	fields := make([]string, len(headers))
	for i, header := range headers {
		fields[i] = clean.FieldName(header)
	}

	var contracts []OptionContract
	var parseErr error

	body.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		class, _ := row.Attr("class")
		inTheMoney := strings.Contains(class, "in-the-money")

		raw := make(map[string]string, len(fields))
		for i, value := range htmltable.CellTexts(row) {
			raw[fields[i%len(fields)]] = value
		}

		contract, err := contractFromRaw(exp, typ, inTheMoney, raw)
		if err != nil {
			parseErr = err
			return false
		}
		contracts = append(contracts, *contract)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return contracts, nil
}

// ParseChain parses a chain page for one expiration: the call table
// followed by the put table. Returns nil when either table is absent.
func ParseChain(exp ContractExpiration, doc *goquery.Document) (*OptionsChain, error) {
	callsTable := doc.Find("table.calls").First()
	putsTable := doc.Find("table.puts").First()
	if callsTable.Length() == 0 || putsTable.Length() == 0 {
		return nil, nil
	}

	calls, err := ParseContractTable(exp, Call, callsTable)
	if err != nil {
		return nil, err
	}
	puts, err := ParseContractTable(exp, Put, putsTable)
	if err != nil {
		return nil, err
	}

	chain := make([]OptionContract, 0, len(calls)+len(puts))
	chain = append(chain, calls...)
	chain = append(chain, puts...)

	return &OptionsChain{
		Symbol:         exp.Symbol,
		ExpirationDate: exp.ExpirationDate,
		Chain:          chain,
	}, nil
}
