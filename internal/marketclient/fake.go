package marketclient

import "context"

// Fake records CreateSerumMarket calls in memory for handler tests.
type Fake struct {
	Calls []CreateSerumMarketRequest
	Err   error
}

func (f *Fake) CreateSerumMarket(_ context.Context, req CreateSerumMarketRequest) error {
	if f.Err != nil {
		return f.Err
	}
	f.Calls = append(f.Calls, req)
	return nil
}
