package utils

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
)

var (
	imageDataURLPattern = regexp.MustCompile(`^data:image/([A-Za-z0-9.+-]+);base64,(.+)$`)
	videoDataURLPattern = regexp.MustCompile(`^data:video/([^;,]+);base64,(.+)$`)
)

// MediaPayload is the decoded form of an inline data URL attachment.
type MediaPayload struct {
	ContentType string
	Extension   string
	Data        []byte
}

// ParseImageDataURL decodes a base64 image data URL into raw bytes.
func ParseImageDataURL(dataURL string) (*MediaPayload, error) {
	matches := imageDataURLPattern.FindStringSubmatch(dataURL)
	if len(matches) != 3 {
		return nil, fmt.Errorf("invalid base64 image format")
	}
	return decodePayload("image", matches[1], matches[2])
}

// ParseVideoDataURL decodes a base64 video data URL into raw bytes.
func ParseVideoDataURL(dataURL string) (*MediaPayload, error) {
	matches := videoDataURLPattern.FindStringSubmatch(dataURL)
	if len(matches) != 3 {
		return nil, fmt.Errorf("invalid base64 video format")
	}
	return decodePayload("video", matches[1], matches[2])
}

func decodePayload(kind, mimeSubtype, base64Data string) (*MediaPayload, error) {
	// "svg+xml" and similar parameterized subtypes collapse to their base name.
	simpleType := mimeSubtype
	if idx := strings.IndexAny(simpleType, ";+"); idx >= 0 {
		simpleType = simpleType[:idx]
	}
	if simpleType == "" {
		return nil, fmt.Errorf("invalid base64 %s format", kind)
	}

	data, err := base64.StdEncoding.DecodeString(base64Data)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 %s payload: %w", kind, err)
	}

	return &MediaPayload{
		ContentType: kind + "/" + simpleType,
		Extension:   simpleType,
		Data:        data,
	}, nil
}
