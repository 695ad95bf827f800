package metadata

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ParsedDataURI holds the declared media type and decoded payload of a
// data URI.
type ParsedDataURI struct {
	MimeType string
	IsBase64 bool
	Data     []byte
}

// ParseDataURI parses a data URI according to RFC 2397:
// data:[<mediatype>][;base64],<data>
// An omitted mediatype defaults to text/plain. Non-base64 payloads are
// percent-decoded.
func ParseDataURI(uri string) (*ParsedDataURI, error) {
	if !strings.HasPrefix(uri, "data:") {
		return nil, errors.New("invalid data URI: must start with 'data:'")
	}

	header, payload, found := strings.Cut(uri[len("data:"):], ",")
	if !found {
		return nil, errors.New("invalid data URI format: missing comma separator")
	}

	parsed := &ParsedDataURI{MimeType: "text/plain"}
	for i, part := range strings.Split(header, ";") {
		part = strings.TrimSpace(part)
		if i == 0 {
			if part != "" {
				parsed.MimeType = part
			}
			continue
		}
		if strings.EqualFold(part, "base64") {
			parsed.IsBase64 = true
		}
	}

	if parsed.IsBase64 {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64: %w", err)
		}
		parsed.Data = decoded
		return parsed, nil
	}

	unescaped, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to unescape data: %w", err)
	}
	parsed.Data = []byte(unescaped)
	return parsed, nil
}
