package lookup

// Exchange is the display name of a market exchange as returned by the
// lookup endpoint.
type Exchange string

// ExchangeGroup is a closed set of exchanges for one region, used to
// filter lookup candidates.
type ExchangeGroup struct {
	Name      string
	Exchanges []Exchange
}

// Contains reports whether e is a member of the group.
func (g ExchangeGroup) Contains(e Exchange) bool {
	for _, member := range g.Exchanges {
		if member == e {
			return true
		}
	}
	return false
}

// UnitedStates lists exchanges based out of the United States.
var UnitedStates = ExchangeGroup{Name: "united_states", Exchanges: []Exchange{
	"Chicago Board Options Exchange",
	"Chicago Board of Trade",
	"Chicago Mercantile Exchange",
	"Dow Jones",
	"NASDAQ",
	"NASDAQ GIDS",
	"NSE",
	"NY Mercantile",
	"New York Board of Trade",
	"New York Commodity Exchange",
	"NYSE",
	"NYSE MKT",
	"NYSEArca",
	"OTC Markets",
	"OTC BB",
}}

// Canada lists exchanges based out of Canada.
var Canada = ExchangeGroup{Name: "canada", Exchanges: []Exchange{
	"CNQ", "NEO", "Toronto", "CDNX",
}}

// SouthAmerica lists exchanges based out of South America.
var SouthAmerica = ExchangeGroup{Name: "south_america", Exchanges: []Exchange{
	"Buenos Aires", "Mexico", "Sao Paolo", "Santiago Stock Exchange",
}}

// Europe lists exchanges based out of Europe.
var Europe = ExchangeGroup{Name: "europe", Exchanges: []Exchange{
	"Amsterdam", "Athens", "Barcelona", "Berlin",
	"Brussels Stock Exchange", "Copenhagen", "Dusseldorf Stock Exchange",
	"Euronext", "FTSEGlobal Index", "Frankfurt", "Hamburg", "Hanover",
	"HEL", "Irish", "IST", "Lisbon Stock Exchange", "London",
	"International Orderbook - London", "Madrid Stock Exchange CATS",
	"Milan", "Munich", "Oslo", "Paris", "Prague Stock Exchange",
	"Stockholm", "Stuttgart", "Swiss", "Vienna", "Zurich Stock Exchange",
}}

// Africa lists exchanges based out of Africa.
var Africa = ExchangeGroup{Name: "africa", Exchanges: []Exchange{
	"Cairo Stock Exchange", "Johannesburg Stock Exchange",
}}

// MiddleEast lists exchanges based out of the Middle East.
var MiddleEast = ExchangeGroup{Name: "middle_east", Exchanges: []Exchange{
	"PSX", "Saudi Stock Exchange", "Tel Aviv",
}}

// Asia lists exchanges based out of Asia.
var Asia = ExchangeGroup{Name: "asia", Exchanges: []Exchange{
	"Bombay", "Colombo Stock Exchange", "Hong Kong", "Jakarta",
	"Osaka Stock Exchange", "Korea", "KOSDAQ",
	"Kuala Lumpur Stock Exchange", "Shenzhen", "Shanghai", "Singapore",
	"Taiwan", "SET", "Tokyo Stock Exchange",
}}

// Australia lists exchanges based out of Australia and New Zealand.
var Australia = ExchangeGroup{Name: "australia", Exchanges: []Exchange{
	"Australian", "New Zealand",
}}

// Unknown catches venues that have not been cataloged under a region
// yet. Lenient validation lets anything through; these are the ones
// observed so far.
var Unknown = ExchangeGroup{Name: "unknown", Exchanges: []Exchange{
	"BUD", "SNP", "OPR", "CCC", "CCY", "MCX", "TAL", "LIT", "RIS",
	"TLX Exchange", "Industry", "XETRA", "UNKNOWN",
}}

// allGroups covers every cataloged region.
var allGroups = []ExchangeGroup{
	UnitedStates, Canada, SouthAmerica, Europe, Africa, MiddleEast,
	Asia, Australia, Unknown,
}

// KnownExchange reports whether e belongs to any cataloged group.
func KnownExchange(e Exchange) bool {
	for _, g := range allGroups {
		if g.Contains(e) {
			return true
		}
	}
	return false
}
