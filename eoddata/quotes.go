package eoddata

import (
	"context"
	"net/url"
)

// QuotesService exposes current and historical price data.
type QuotesService struct {
	client *Client
}

// ListByExchange returns quotes for every symbol on an exchange.
// dateStamp is yyyy-MM-dd; empty means the latest trading day.
func (s *QuotesService) ListByExchange(ctx context.Context, exchangeCode, dateStamp string) ([]Quote, error) {
	query := url.Values{}
	if dateStamp != "" {
		query.Set("DateStamp", dateStamp)
	}
	var out []Quote
	if err := s.client.get(ctx, "quote_list", "/Quote/List/"+exchangeCode, query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns the quote for one symbol. dateStamp is yyyy-MM-dd; empty
// means the latest trading day.
func (s *QuotesService) Get(ctx context.Context, exchangeCode, symbolCode, dateStamp string) (*Quote, error) {
	query := url.Values{}
	if dateStamp != "" {
		query.Set("DateStamp", dateStamp)
	}
	var out Quote
	if err := s.client.get(ctx, "quote_get", "/Quote/Get/"+exchangeCode+"/"+symbolCode, query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// History returns historical quotes for a symbol within a date range.
// Either bound may be empty.
func (s *QuotesService) History(ctx context.Context, exchangeCode, symbolCode, fromDate, toDate string) ([]Quote, error) {
	query := url.Values{}
	if fromDate != "" {
		query.Set("FromDateStamp", fromDate)
	}
	if toDate != "" {
		query.Set("ToDateStamp", toDate)
	}
	var out []Quote
	if err := s.client.get(ctx, "quote_history", "/Quote/List/"+exchangeCode+"/"+symbolCode, query, &out); err != nil {
		return nil, err
	}
	return out, nil
}
