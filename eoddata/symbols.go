package eoddata

import "context"

// SymbolsService exposes symbol listings and details.
type SymbolsService struct {
	client *Client
}

// List returns all symbols on an exchange.
func (s *SymbolsService) List(ctx context.Context, exchangeCode string) ([]Symbol, error) {
	var out []Symbol
	if err := s.client.get(ctx, "symbol_list", "/Symbol/List/"+exchangeCode, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns one symbol by exchange and code, e.g. ("NASDAQ", "AAPL").
func (s *SymbolsService) Get(ctx context.Context, exchangeCode, symbolCode string) (*Symbol, error) {
	var out Symbol
	if err := s.client.get(ctx, "symbol_get", "/Symbol/Get/"+exchangeCode+"/"+symbolCode, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
