// Package asset turns image files into references that can be stored on a
// node.
package asset

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxImageBytes caps the size of an image that may be stored on a node.
const MaxImageBytes = 2 << 20

// SizeLimitError is returned for files larger than MaxImageBytes. The file is
// never read.
type SizeLimitError struct {
	Path  string
	Size  int64
	Limit int64
}

func (e *SizeLimitError) Error() string {
	return fmt.Sprintf("asset: %s is %d bytes, the limit is %d", e.Path, e.Size, e.Limit)
}

// AssetReadError is returned when a file cannot be read or is not an image.
type AssetReadError struct {
	Path string
	Err  error
}

func (e *AssetReadError) Error() string {
	return fmt.Sprintf("asset: reading %s: %v", e.Path, e.Err)
}

func (e *AssetReadError) Unwrap() error {
	return e.Err
}

// ReadImageReference reads the image at path and returns it as a base64 data
// URI.
func ReadImageReference(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", &AssetReadError{Path: path, Err: err}
	}
	if info.IsDir() {
		return "", &AssetReadError{Path: path, Err: fmt.Errorf("is a directory")}
	}
	if info.Size() > MaxImageBytes {
		return "", &SizeLimitError{Path: path, Size: info.Size(), Limit: MaxImageBytes}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &AssetReadError{Path: path, Err: err}
	}
	// The file may have grown between stat and read.
	if int64(len(data)) > MaxImageBytes {
		return "", &SizeLimitError{Path: path, Size: int64(len(data)), Limit: MaxImageBytes}
	}
	ref, err := Encode(data)
	if err != nil {
		return "", &AssetReadError{Path: path, Err: errors.Unwrap(err)}
	}
	return ref, nil
}

// Encode sniffs data and wraps it in a data URI. Content that is not an image
// is rejected.
func Encode(data []byte) (string, error) {
	if len(data) == 0 {
		return "", &AssetReadError{Err: fmt.Errorf("empty file")}
	}
	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return "", &AssetReadError{Err: fmt.Errorf("%s is not an image", mime.String())}
	}
	// Drop parameters such as charset that svg detection can add.
	kind, _, _ := strings.Cut(mime.String(), ";")
	return "data:" + kind + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// IsDataURI reports whether ref is an embedded image rather than a path.
func IsDataURI(ref string) bool {
	return strings.HasPrefix(ref, "data:")
}
