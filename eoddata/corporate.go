package eoddata

import "context"

// CorporateService exposes company profiles, splits and dividends.
type CorporateService struct {
	client *Client
}

// Profiles returns company profiles for an exchange.
func (s *CorporateService) Profiles(ctx context.Context, exchangeCode string) ([]Profile, error) {
	var out []Profile
	if err := s.client.get(ctx, "profile_list", "/Profile/List/"+exchangeCode, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Profile returns the company profile for one symbol.
func (s *CorporateService) Profile(ctx context.Context, exchangeCode, symbolCode string) (*Profile, error) {
	var out Profile
	if err := s.client.get(ctx, "profile_get", "/Profile/Get/"+exchangeCode+"/"+symbolCode, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SplitsByExchange returns split events for an exchange.
func (s *CorporateService) SplitsByExchange(ctx context.Context, exchangeCode string) ([]Split, error) {
	var out []Split
	if err := s.client.get(ctx, "split_list", "/Splits/List/"+exchangeCode, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SplitsBySymbol returns split events for one symbol.
func (s *CorporateService) SplitsBySymbol(ctx context.Context, exchangeCode, symbolCode string) ([]Split, error) {
	var out []Split
	if err := s.client.get(ctx, "split_list", "/Splits/List/"+exchangeCode+"/"+symbolCode, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DividendsByExchange returns dividend events for an exchange.
func (s *CorporateService) DividendsByExchange(ctx context.Context, exchangeCode string) ([]Dividend, error) {
	var out []Dividend
	if err := s.client.get(ctx, "dividend_list", "/Dividends/List/"+exchangeCode, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DividendsBySymbol returns dividend events for one symbol.
func (s *CorporateService) DividendsBySymbol(ctx context.Context, exchangeCode, symbolCode string) ([]Dividend, error) {
	var out []Dividend
	if err := s.client.get(ctx, "dividend_list", "/Dividends/List/"+exchangeCode+"/"+symbolCode, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
