package connectors

import (
	"go.uber.org/zap"

	"pumpquote/internal"
)

// FetchService pulls recent mail through a connector and stores any price-list
// sheets it finds.
type FetchService struct {
	connector MailConnector
	store     *PriceListStore
}

type FetchResult struct {
	Fetched int
	Stored  []internal.StoredPriceList
}

func NewFetchService(connector MailConnector, priceListDir string, log *zap.Logger) *FetchService {
	return &FetchService{
		connector: connector,
		store:     NewPriceListStore(priceListDir, log),
	}
}

func (s *FetchService) FetchAndStore(label string, max int) (FetchResult, error) {
	messages, err := s.connector.FetchInbox(label, max)
	if err != nil {
		return FetchResult{}, err
	}

	result := FetchResult{Fetched: len(messages)}
	for _, msg := range messages {
		stored, err := s.store.Store(msg)
		if err != nil {
			return result, err
		}
		if stored != nil {
			result.Stored = append(result.Stored, *stored)
		}
	}

	return result, nil
}
