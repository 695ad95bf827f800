package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/feral-file/ff-rights-ledger/internal/adapter"
	"github.com/feral-file/ff-rights-ledger/internal/domain"
)

// Derived carries the metadata attributes computed at registration time.
type Derived struct {
	Fingerprint string
	PreviewMIME string
}

// Deriver defines the interface for deriving artwork metadata attributes
//
//go:generate mockgen -source=deriver.go -destination=../mocks/metadata_deriver.go -package=mocks -mock_names=Deriver=MockMetadataDeriver
type Deriver interface {
	// Derive computes the metadata fingerprint for metadataURI and, when a
	// preview data URI is supplied, validates it and sniffs its MIME type.
	// Metadata is never fetched from remote URIs; a fingerprint is only
	// computed when the document is carried inline or as a data URI.
	Derive(metadataURI string, previewDataURI string) (*Derived, error)
}

type deriver struct {
	jcs adapter.JCS
}

// NewDeriver creates a new metadata deriver
func NewDeriver(jcs adapter.JCS) Deriver {
	return &deriver{jcs: jcs}
}

func (d *deriver) Derive(metadataURI string, previewDataURI string) (*Derived, error) {
	derived := &Derived{Fingerprint: d.fingerprint(metadataURI)}

	if previewDataURI != "" {
		previewMIME, err := checkPreview(previewDataURI)
		if err != nil {
			return nil, err
		}
		derived.PreviewMIME = previewMIME
	}

	return derived, nil
}

// fingerprint returns the hex-encoded SHA-256 of the JCS-canonicalized
// metadata document. Remote URIs and documents that cannot be
// canonicalized yield an empty fingerprint.
func (d *deriver) fingerprint(metadataURI string) string {
	var doc []byte
	switch {
	case strings.HasPrefix(metadataURI, "data:"):
		parsed, err := ParseDataURI(metadataURI)
		if err != nil {
			return ""
		}
		doc = parsed.Data
	case looksLikeJSON(metadataURI):
		doc = []byte(metadataURI)
	default:
		return ""
	}

	canonicalized, err := d.jcs.Transform(doc)
	if err != nil {
		return ""
	}

	hash := sha256.Sum256(canonicalized)
	return hex.EncodeToString(hash[:])
}

// checkPreview validates a preview data URI. It checks:
// 1. Format follows RFC 2397
// 2. Mime type is image/* or video/*
// 3. Content matches declared mime type using magic numbers
// Returns the detected MIME type of the payload.
func checkPreview(previewDataURI string) (string, error) {
	parsed, err := ParseDataURI(previewDataURI)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidPreview, err)
	}

	if !isImageOrVideoMimeType(parsed.MimeType) {
		return "", fmt.Errorf("%w: unsupported mime type: %s (only image/* and video/* are supported)", domain.ErrInvalidPreview, parsed.MimeType)
	}

	if len(parsed.Data) == 0 {
		return "", fmt.Errorf("%w: empty data", domain.ErrInvalidPreview)
	}

	detected := mimetype.Detect(parsed.Data).String()
	if !mimeTypesMatch(parsed.MimeType, detected) {
		return "", fmt.Errorf("%w: mime type mismatch: declared %s but detected %s", domain.ErrInvalidPreview, parsed.MimeType, detected)
	}

	return detected, nil
}

func looksLikeJSON(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[")
}

// isImageOrVideoMimeType checks if a mime type is image/* or video/*
func isImageOrVideoMimeType(mimeType string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	return strings.HasPrefix(mimeType, "image/") || strings.HasPrefix(mimeType, "video/")
}

// mimeTypesMatch checks if two mime types match
// It performs a flexible comparison that accounts for:
// - Case differences
// - Generic types (e.g., image/svg matches image/svg+xml)
func mimeTypesMatch(declared, detected string) bool {
	declared = strings.ToLower(strings.TrimSpace(declared))
	detected = strings.ToLower(strings.TrimSpace(detected))

	// Exact match
	if declared == detected {
		return true
	}

	// Handle SVG special case: image/svg and image/svg+xml are equivalent
	if (declared == "image/svg" && detected == "image/svg+xml") ||
		(declared == "image/svg+xml" && detected == "image/svg") {
		return true
	}

	// Extract base type without parameters (e.g., "image/png; charset=utf-8" -> "image/png")
	declaredBase := strings.Split(declared, ";")[0]
	detectedBase := strings.Split(detected, ";")[0]

	return strings.TrimSpace(declaredBase) == strings.TrimSpace(detectedBase)
}
