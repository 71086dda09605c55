package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/RyuuXiaoo/nokoslagii/internal/common/jasaotpprotocol"
)

// Catalog relays the provider's country and service listings.
type Catalog struct {
	provider CatalogProvider
}

func NewCatalog(provider CatalogProvider) *Catalog {
	return &Catalog{
		provider: provider,
	}
}

func (c *Catalog) Countries(ctx context.Context) (json.RawMessage, error) {
	countries, err := c.provider.Countries(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching countries failed: %w", err)
	}
	return countries, nil
}

// Services flattens the provider's code-keyed map into a list with the
// code injected into each item, sorted by code for a stable response.
func (c *Catalog) Services(ctx context.Context, negara string) ([]jasaotpprotocol.ServiceItem, error) {
	services, err := c.provider.Services(ctx, negara)
	if err != nil {
		return nil, fmt.Errorf("fetching services failed: %w", err)
	}
	result := make([]jasaotpprotocol.ServiceItem, 0, len(services))
	for kode, item := range services {
		if item == nil {
			item = jasaotpprotocol.ServiceItem{}
		}
		item["kode"] = kode
		result = append(result, item)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Kode() < result[j].Kode()
	})
	return result, nil
}
