package eoddata

import "context"

// TechnicalsService exposes technical indicator data.
type TechnicalsService struct {
	client *Client
}

// List returns technicals for every symbol on an exchange.
func (s *TechnicalsService) List(ctx context.Context, exchangeCode string) ([]Technical, error) {
	var out []Technical
	if err := s.client.get(ctx, "technical_list", "/Technical/List/"+exchangeCode, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns technicals for one symbol.
func (s *TechnicalsService) Get(ctx context.Context, exchangeCode, symbolCode string) (*Technical, error) {
	var out Technical
	if err := s.client.get(ctx, "technical_get", "/Technical/Get/"+exchangeCode+"/"+symbolCode, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
