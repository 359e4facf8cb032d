package sync

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"uploader/internal/models"
	"uploader/internal/store"
)

// Images uploads base64-encoded image payloads into the media store. The
// raw bytes land on disk under the configured upload directory; the
// attachment row carries the metadata clients query for.
func (s *Syncer) Images(items []models.ImageItem) *models.BatchResult {
	batch := &models.BatchResult{}
	for i := range items {
		batch.Append(s.syncImage(&items[i]))
	}
	return batch
}

func (s *Syncer) syncImage(item *models.ImageItem) models.ItemResult {
	fail := func(message string) models.ItemResult {
		return models.ErrorResult("image_name", item.Name, message)
	}

	if err := s.validate.Struct(item); err != nil {
		return fail(err.Error())
	}

	data, err := decodeImagePayload(item.Base64Image)
	if err != nil {
		return fail(err.Error())
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fail(fmt.Sprintf("Could not decode image %s: %v", item.Name, err))
	}

	// Strip any path component so the stored row, lookup key and URL all
	// refer to the same file the payload was written to.
	name := filepath.Base(item.Name)
	path := filepath.Join(s.uploadDir, name)
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return fail(err.Error())
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fail(err.Error())
	}

	existing, err := s.store.AttachmentByFileName(name)
	if err != nil && !store.IsNotFound(err) {
		return fail(err.Error())
	}

	attachment := &models.Attachment{
		FileName: name,
		Title:    item.Title,
		AltText:  item.Alt,
		Content:  item.Content,
		Excerpt:  item.Description,
		MimeType: "image/" + format,
		Path:     path,
		URL:      "/" + filepath.ToSlash(path),
		Width:    cfg.Width,
		Height:   cfg.Height,
		Size:     int64(len(data)),
	}
	action := models.ActionCreated
	if existing != nil {
		attachment.ID = existing.ID
		attachment.CreatedAt = existing.CreatedAt
		action = models.ActionModified
	}
	if err := s.store.SaveAttachment(attachment); err != nil {
		return fail(err.Error())
	}

	return models.SuccessResult("image_name", item.Name, action, attachment.ID)
}

// decodeImagePayload accepts both bare base64 and data-URI payloads. Spaces
// are mapped back to '+' first: form-encoded transports lose the plus sign.
func decodeImagePayload(payload string) ([]byte, error) {
	if i := strings.Index(payload, "base64,"); i >= 0 {
		payload = payload[i+len("base64,"):]
	}
	payload = strings.ReplaceAll(payload, " ", "+")

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image data: %w", err)
	}
	return data, nil
}
