package listener

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"pumpquote/internal"
	"pumpquote/internal/config"
	"pumpquote/internal/connectors"
	gmailconnector "pumpquote/internal/connectors/gmail"
	imapconnector "pumpquote/internal/connectors/imap"
	"pumpquote/internal/pipeline"
)

// Service polls the mailbox for new price-list sheets, stores them, and runs
// the ingestion pipeline on each new file so bad sheets surface immediately
// instead of at quoting time.
type Service struct {
	cfg config.Config
	log *zap.Logger
}

func NewService(cfg config.Config, log *zap.Logger) *Service {
	return &Service{cfg: cfg, log: log}
}

func (s *Service) Run(ctx context.Context) error {
	interval := time.Duration(s.cfg.MailWatchIntervalSec) * time.Second
	for {
		if err := s.runCycle(); err != nil {
			s.log.Warn("watch cycle failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
	}
}

func (s *Service) runCycle() error {
	provider := strings.ToLower(strings.TrimSpace(s.cfg.MailWatchProvider))
	mailConnector, err := s.makeConnector(provider)
	if err != nil {
		return err
	}

	fetch := connectors.NewFetchService(mailConnector, s.cfg.PriceListDir, s.log)
	result, err := fetch.FetchAndStore(s.cfg.MailWatchLabel, s.cfg.MailWatchFetchMax)
	if err != nil {
		return err
	}

	for _, stored := range result.Stored {
		s.reportSheet(stored)
	}

	s.log.Info("watch cycle done",
		zap.String("provider", provider),
		zap.Int("fetched", result.Fetched),
		zap.Int("stored", len(result.Stored)))
	return nil
}

// reportSheet validates a freshly stored sheet by running the full pipeline
// on it. Header or column failures are logged, not fatal for the watcher.
func (s *Service) reportSheet(stored internal.StoredPriceList) {
	catalog, err := pipeline.LoadCatalog(stored.Path, pipeline.LoadOptions{
		ScanLimit: s.cfg.HeaderScanLimit,
	})
	if err != nil {
		s.log.Warn("stored sheet failed ingestion",
			zap.String("file", stored.Path),
			zap.String("subject", stored.Subject),
			zap.Error(err))
		return
	}

	s.log.Info("price list ready",
		zap.String("file", stored.Path),
		zap.String("sheet", catalog.Sheet),
		zap.Int("headerRow", catalog.HeaderRow+1),
		zap.Int("products", len(catalog.Rows)))
}

func (s *Service) makeConnector(provider string) (connectors.MailConnector, error) {
	switch provider {
	case "gmail":
		return gmailconnector.NewConnector(s.cfg)
	case "imap":
		return imapconnector.NewConnector(s.cfg)
	default:
		return nil, fmt.Errorf("unsupported watch provider: %s", provider)
	}
}
