package eoddata

// Exchange describes a stock exchange.
type Exchange struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Country     string `json:"country"`
	Currency    string `json:"currency"`
	TimeZone    string `json:"timeZone"`
	SymbolCount int    `json:"symbolCount"`
}

// Symbol describes a tradable instrument on an exchange.
type Symbol struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Type     string `json:"type"`
	Currency string `json:"currency"`
}

// Quote is one end-of-day OHLCV record.
type Quote struct {
	Symbol    string  `json:"symbol"`
	Exchange  string  `json:"exchange"`
	DateStamp string  `json:"dateStamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    int64   `json:"volume"`
	Previous  float64 `json:"previous"`
	Change    float64 `json:"change"`
}

// Profile is a company profile.
type Profile struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Sector      string `json:"sector"`
	Industry    string `json:"industry"`
	Description string `json:"description"`
}

// Split is a stock split event.
type Split struct {
	Symbol    string `json:"symbol"`
	Exchange  string `json:"exchange"`
	DateStamp string `json:"dateStamp"`
	Ratio     string `json:"ratio"`
}

// Dividend is a dividend payment event.
type Dividend struct {
	Symbol    string  `json:"symbol"`
	Exchange  string  `json:"exchange"`
	DateStamp string  `json:"dateStamp"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
}

// Fundamental carries fundamental figures for a symbol.
type Fundamental struct {
	Symbol        string  `json:"symbol"`
	MarketCap     float64 `json:"marketCap"`
	PERatio       float64 `json:"peRatio"`
	EPS           float64 `json:"eps"`
	DividendYield float64 `json:"dividendYield"`
	SharesOut     int64   `json:"sharesOutstanding"`
}

// Technical carries computed technical indicators for a symbol.
type Technical struct {
	Symbol    string  `json:"symbol"`
	DateStamp string  `json:"dateStamp"`
	MA21      float64 `json:"ma21"`
	MA50      float64 `json:"ma50"`
	MA200     float64 `json:"ma200"`
	RSI14     float64 `json:"rsi14"`
}

// NamedItem is a simple name-only lookup entry (exchange types, symbol
// types).
type NamedItem struct {
	Name string `json:"name"`
}

// CodedItem is a code/name lookup entry (countries, currencies).
type CodedItem struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
