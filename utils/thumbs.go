package utils

import (
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SaveBase64Image decodes a data-URL image ("data:<mime>;base64,<data>") and
// writes it under dir with a unique name, returning the public URL path the
// router serves the directory at. Used for the thumbnail a manual entry can
// carry after AI autofill.
func SaveBase64Image(dataURL, dir, filenamePrefix string) (string, error) {
	parts := strings.Split(dataURL, ",")
	if len(parts) != 2 || !strings.HasPrefix(parts[0], "data:") {
		return "", fmt.Errorf("invalid base64 image")
	}
	meta := parts[0]
	data := parts[1]

	mediaType := strings.SplitN(meta, ":", 2)[1]        // "image/jpeg;base64"
	contentType := strings.SplitN(mediaType, ";", 2)[0] // "image/jpeg"

	var ext string
	switch contentType {
	case "image/jpeg", "image/jpg":
		ext = ".jpg"
	default:
		if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
			ext = exts[0]
		} else if sub := strings.SplitN(contentType, "/", 2); len(sub) == 2 {
			ext = "." + sub[1]
		}
	}

	imageData, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create thumbnail directory: %w", err)
	}

	name := fmt.Sprintf("%s-%d%s", filenamePrefix, time.Now().UnixNano(), ext)
	if err := os.WriteFile(filepath.Join(dir, name), imageData, 0o644); err != nil {
		return "", fmt.Errorf("failed to write thumbnail: %w", err)
	}

	return "/thumbs/" + name, nil
}
