package lookup

import "strings"

// AssetType classifies a lookup candidate. Values are the uppercased
// typeDisp strings from the lookup endpoint.
type AssetType string

const (
	AssetCurrency       AssetType = "CURRENCY"
	AssetETF            AssetType = "ETF"
	AssetEquity         AssetType = "EQUITY"
	AssetFund           AssetType = "FUND"
	AssetFutures        AssetType = "FUTURES"
	AssetIndex          AssetType = "INDEX"
	AssetMoneyMarket    AssetType = "MONEYMARKET"
	AssetOption         AssetType = "OPTION"
	AssetCryptocurrency AssetType = "CRYPTOCURRENCY"
)

var validAssetTypes = map[AssetType]bool{
	AssetCurrency:       true,
	AssetETF:            true,
	AssetEquity:         true,
	AssetFund:           true,
	AssetFutures:        true,
	AssetIndex:          true,
	AssetMoneyMarket:    true,
	AssetOption:         true,
	AssetCryptocurrency: true,
}

// NormalizeAssetType uppercases a raw typeDisp value.
func NormalizeAssetType(raw string) AssetType {
	return AssetType(strings.ToUpper(raw))
}

// KnownAssetType reports whether t is one of the cataloged asset types.
func KnownAssetType(t AssetType) bool {
	return validAssetTypes[t]
}
