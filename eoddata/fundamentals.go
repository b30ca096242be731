package eoddata

import "context"

// FundamentalsService exposes fundamental data.
type FundamentalsService struct {
	client *Client
}

// List returns fundamentals for every symbol on an exchange.
func (s *FundamentalsService) List(ctx context.Context, exchangeCode string) ([]Fundamental, error) {
	var out []Fundamental
	if err := s.client.get(ctx, "fundamental_list", "/Fundamental/List/"+exchangeCode, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns fundamentals for one symbol.
func (s *FundamentalsService) Get(ctx context.Context, exchangeCode, symbolCode string) (*Fundamental, error) {
	var out Fundamental
	if err := s.client.get(ctx, "fundamental_get", "/Fundamental/Get/"+exchangeCode+"/"+symbolCode, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
