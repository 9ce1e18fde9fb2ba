package connectors

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"pumpquote/internal"
	"pumpquote/internal/pipeline"
)

// PriceListStore writes spreadsheet attachments from fetched mail into the
// price-list directory. Files are named by content hash, so refetching the
// same sheet is a no-op. The store keeps no other state.
type PriceListStore struct {
	dir string
	log *zap.Logger
}

func NewPriceListStore(dir string, log *zap.Logger) *PriceListStore {
	return &PriceListStore{dir: dir, log: log}
}

// Store extracts the price-list attachment from one message and writes it to
// disk. Messages that do not look like price lists, or carry no spreadsheet,
// return (nil, nil).
func (s *PriceListStore) Store(msg internal.FetchedMailMessage) (*internal.StoredPriceList, error) {
	names, subject, err := pipeline.AttachmentNames(msg.Raw)
	if err != nil {
		return nil, fmt.Errorf("inspect message %s: %w", msg.MessageID, err)
	}
	if subject == "" {
		subject = msg.Subject
	}

	detect := pipeline.DetectPriceListMessage(subject, names)
	if !detect.IsPriceList {
		s.log.Debug("message skipped",
			zap.String("messageId", msg.MessageID),
			zap.Float64("score", detect.Score))
		return nil, nil
	}

	att, err := pipeline.ExtractPriceListFromEmailRaw(msg.Raw)
	if err != nil {
		return nil, fmt.Errorf("extract attachment from %s: %w", msg.MessageID, err)
	}
	if att == nil {
		return nil, nil
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, err
	}

	hashBytes := sha256.Sum256(att.Content)
	hash := hex.EncodeToString(hashBytes[:])
	path := filepath.Join(s.dir, hash[:16]+"_"+sanitizeFileName(att.FileName))

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, att.Content, 0o644); err != nil {
			return nil, err
		}
		s.log.Info("price list stored",
			zap.String("file", path),
			zap.String("subject", subject),
			zap.String("messageId", msg.MessageID))
	}

	return &internal.StoredPriceList{
		Path:       path,
		Attachment: att.FileName,
		Provider:   msg.Provider,
		MessageID:  msg.MessageID,
		Subject:    subject,
		ReceivedAt: msg.ReceivedAt,
	}, nil
}

func sanitizeFileName(input string) string {
	repl := strings.NewReplacer("<", "_", ">", "_", ":", "_", "/", "_", "\\", "_", "|", "_", "?", "_", "*", "_", " ", "_")
	out := repl.Replace(input)
	if out == "" {
		out = "pricelist.xlsx"
	}
	if len(out) > 120 {
		out = out[len(out)-120:]
	}
	return out
}
