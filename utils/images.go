package utils

import "regexp"

var dataURLPrefix = regexp.MustCompile(`^data:image/(png|jpeg|jpg|webp);base64,`)

// SplitImagePayload strips a data-URL scheme declaration from a base64 image,
// returning the raw payload and the MIME type to declare upstream. The model
// API wants the bare base64 bytes plus an explicit MIME type, so a payload
// like "data:image/png;base64,AAAA" becomes ("AAAA", "image/png"). Input
// without a prefix passes through unchanged and is declared as JPEG.
func SplitImagePayload(image string) (payload, mimeType string) {
	m := dataURLPrefix.FindStringSubmatch(image)
	if m == nil {
		return image, "image/jpeg"
	}
	subtype := m[1]
	if subtype == "jpg" {
		subtype = "jpeg"
	}
	return image[len(m[0]):], "image/" + subtype
}
