package eoddata

import "context"

// MetadataService exposes the lookup endpoints: exchange types, symbol
// types, countries and currencies.
type MetadataService struct {
	client *Client
}

// ExchangeTypes returns the list of exchange types.
func (s *MetadataService) ExchangeTypes(ctx context.Context) ([]NamedItem, error) {
	var out []NamedItem
	if err := s.client.get(ctx, "exchange_type_list", "/ExchangeType/List", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SymbolTypes returns the list of symbol types.
func (s *MetadataService) SymbolTypes(ctx context.Context) ([]NamedItem, error) {
	var out []NamedItem
	if err := s.client.get(ctx, "symbol_type_list", "/SymbolType/List", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Countries returns the list of countries.
func (s *MetadataService) Countries(ctx context.Context) ([]CodedItem, error) {
	var out []CodedItem
	if err := s.client.get(ctx, "country_list", "/Country/List", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Currencies returns the list of currencies.
func (s *MetadataService) Currencies(ctx context.Context) ([]CodedItem, error) {
	var out []CodedItem
	if err := s.client.get(ctx, "currency_list", "/Currency/List", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
