package eoddata

import "context"

// ExchangesService exposes exchange listings and details.
type ExchangesService struct {
	client *Client
}

// List returns all available exchanges.
func (s *ExchangesService) List(ctx context.Context) ([]Exchange, error) {
	var out []Exchange
	if err := s.client.get(ctx, "exchange_list", "/Exchange/List", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns one exchange by code, e.g. "NASDAQ".
func (s *ExchangesService) Get(ctx context.Context, exchangeCode string) (*Exchange, error) {
	var out Exchange
	if err := s.client.get(ctx, "exchange_get", "/Exchange/Get/"+exchangeCode, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
