package ui

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxAvatarSize caps uploaded avatar files
const MaxAvatarSize = 5 << 20

// ErrNotImage is returned for avatar files that do not sniff as an image
var ErrNotImage = errors.New("file is not an image")

// AvatarExtensions are offered by the avatar file picker
var AvatarExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp"}

// LoadAvatar reads an image file and returns it as a data URL
func LoadAvatar(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat avatar: %w", err)
	}
	if info.Size() > MaxAvatarSize {
		return "", fmt.Errorf("avatar is larger than %d MB", MaxAvatarSize>>20)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read avatar: %w", err)
	}
	return AvatarDataURL(data)
}

// AvatarDataURL encodes image bytes as a base64 data URL
func AvatarDataURL(data []byte) (string, error) {
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: %s", ErrNotImage, mt.String())
	}
	return "data:" + mt.String() + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
