package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"etiqo/internal/domain"
	"etiqo/internal/labels"
	"etiqo/internal/port"
)

// LabelService defines the label generation contract.
type LabelService interface {
	GenerateLabels(ctx context.Context, orderRef string, items []domain.OrderItem) (*domain.BatchResult, error)
	DownloadLabel(ctx context.Context, key string) ([]byte, string, error)
}

type labelService struct {
	renderer      port.LabelRenderer
	storage       port.ObjectStorage
	bucket        string
	presignExpiry int64
}

// NewLabelService creates a new LabelService implementation. bucket is the
// destination for generated artifacts; presignExpiry is the lifetime in
// seconds of the download URLs attached to results.
func NewLabelService(renderer port.LabelRenderer, storage port.ObjectStorage, bucket string, presignExpiry int64) LabelService {
	return &labelService{
		renderer:      renderer,
		storage:       storage,
		bucket:        bucket,
		presignExpiry: presignExpiry,
	}
}

// GenerateLabels processes items strictly in input order, one renderer call
// per item. A failed item is recorded in its result slot and the batch
// continues; the output always has exactly one entry per included item,
// mirroring input order. Processing is deliberately sequential: filenames
// and storage keys are derived from the positional index and parallel
// dispatch would need explicit index pinning to stay reproducible.
func (s *labelService) GenerateLabels(ctx context.Context, orderRef string, items []domain.OrderItem) (*domain.BatchResult, error) {
	included := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		if item.Include {
			included = append(included, item)
		}
	}
	if len(included) == 0 {
		return nil, domain.ErrNoItems
	}

	prefix := keyPrefix(orderRef)
	batch := &domain.BatchResult{Results: make([]domain.ItemResult, 0, len(included))}

	for idx, item := range included {
		generated, err := s.generateItem(ctx, item, idx, prefix)
		if err != nil {
			log.Printf("labelService.GenerateLabels: item %d (%s) failed: %v", idx+1, item.ProductName, err)
			batch.Results = append(batch.Results, domain.ItemResult{Item: item, Err: err.Error()})
			batch.Failed++
			continue
		}
		batch.Results = append(batch.Results, domain.ItemResult{Item: item, Labels: generated})
		batch.Generated++
	}

	return batch, nil
}

// DownloadLabel fetches a previously generated artifact by its storage key.
// Only keys under the artifact prefix are served.
func (s *labelService) DownloadLabel(ctx context.Context, key string) ([]byte, string, error) {
	if !strings.HasPrefix(key, "labels/") {
		return nil, "", fmt.Errorf("invalid artifact key %q", key)
	}
	data, err := s.storage.Download(ctx, s.bucket, key)
	if err != nil {
		return nil, "", fmt.Errorf("downloading %s: %w", key, err)
	}
	return data, mimeForFileName(key), nil
}

// generateItem renders and stores the labels for one item at position idx.
// When a later upload fails, artifacts already stored for this item are
// removed so a failed item leaves nothing behind.
func (s *labelService) generateItem(ctx context.Context, item domain.OrderItem, idx int, prefix string) ([]domain.GeneratedLabel, error) {
	layout := effectiveLayout(item)
	name := labels.SanitizeProductName(item.ProductName)

	input := port.RenderInput{
		Layout:       layout,
		ProductName:  name,
		QuantityText: item.QuantityText,
		PackingDate:  item.PackingDate,
	}
	if product, ok := labels.ResolveCanonicalProduct(name); ok {
		if variety, ok := labels.DefaultVariety(product); ok {
			input.Variety = variety
		}
	}

	rendered, err := s.renderer.Render(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("rendering %q: %w", name, err)
	}

	generated := make([]domain.GeneratedLabel, 0, len(rendered))
	for i, r := range rendered {
		label := domain.GeneratedLabel{
			FileName:      labelFileName(name, idx, i, len(rendered), r.MimeType),
			MimeType:      r.MimeType,
			Data:          r.Data,
			StorageBucket: s.bucket,
		}

		key := prefix + label.FileName
		_, upErr := s.storage.Upload(ctx, port.UploadInput{
			Bucket:      label.StorageBucket,
			Key:         key,
			Body:        bytes.NewReader(label.Data),
			ContentType: label.MimeType,
			Metadata: map[string]string{
				"item-id": item.ID,
				"product": name,
				"layout":  string(layout),
			},
		})
		if upErr != nil {
			s.removeArtifacts(ctx, generated)
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrUploadFailed, label.FileName, upErr)
		}
		label.StorageKey = key

		url, signErr := s.storage.GetPresignedURL(ctx, label.StorageBucket, key, s.presignExpiry)
		if signErr != nil {
			// Best effort: the artifact is stored and downloadable by key.
			log.Printf("labelService.generateItem: presigning %s: %v", key, signErr)
		} else {
			label.URL = url
		}

		generated = append(generated, label)
	}

	return generated, nil
}

// removeArtifacts deletes the labels already uploaded for a failed item.
func (s *labelService) removeArtifacts(ctx context.Context, uploaded []domain.GeneratedLabel) {
	for _, g := range uploaded {
		if err := s.storage.Delete(ctx, g.StorageBucket, g.StorageKey); err != nil {
			log.Printf("labelService.removeArtifacts: deleting %s: %v", g.StorageKey, err)
		}
	}
}

// keyPrefix derives the storage prefix for one generation run. The prefix is
// a pure function of the caller's order reference, so re-running the same
// order writes to the same keys and overwrites earlier artifacts.
func keyPrefix(orderRef string) string {
	if strings.TrimSpace(orderRef) == "" {
		return "labels/"
	}
	return "labels/" + labels.Slug(orderRef) + "/"
}

// effectiveLayout re-resolves the layout from the item's client text. When
// resolution yields the default but the caller stored a concrete layout on
// the item (an explicit edit), the stored value wins.
func effectiveLayout(item domain.OrderItem) domain.LabelType {
	resolved := labels.ResolveLabelType(item.Client)
	if resolved == domain.LabelTypeGeneric && item.LabelType.Valid() && item.LabelType != domain.LabelTypeGeneric {
		return item.LabelType
	}
	return resolved
}

// labelFileName derives the deterministic artifact name from the sanitized
// product name and the item's position. Re-runs over an identical item list
// produce identical names; the positional ordinal prevents collisions within
// a batch. Multi-label layouts get a per-label suffix.
func labelFileName(name string, itemIdx, labelIdx, labelCount int, mimeType string) string {
	base := fmt.Sprintf("%s-%02d", labels.Slug(name), itemIdx+1)
	if labelCount > 1 {
		base = fmt.Sprintf("%s-%d", base, labelIdx+1)
	}
	return base + extensionFor(mimeType)
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "application/pdf":
		return ".pdf"
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	default:
		return ".bin"
	}
}

func mimeForFileName(name string) string {
	switch {
	case strings.HasSuffix(name, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(name, ".png"):
		return "image/png"
	case strings.HasSuffix(name, ".jpg"):
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
