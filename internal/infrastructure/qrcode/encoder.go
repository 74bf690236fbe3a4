package qrcode

import (
	"encoding/base64"
	"fmt"

	goqrcode "github.com/skip2/go-qrcode"
)

const dataURLPrefix = "data:image/png;base64,"

// Encoder implements port.QRCodeEncoder with PNG output.
type Encoder struct {
	size  int
	level goqrcode.RecoveryLevel
}

// NewEncoder returns an encoder producing size×size images at medium recovery.
func NewEncoder(size int) *Encoder {
	if size <= 0 {
		size = 256
	}
	return &Encoder{size: size, level: goqrcode.Medium}
}

// EncodeDataURL renders payload as a base64 PNG data URL.
func (e *Encoder) EncodeDataURL(payload []byte) (string, error) {
	png, err := goqrcode.Encode(string(payload), e.level, e.size)
	if err != nil {
		return "", fmt.Errorf("encode qr code: %w", err)
	}
	return dataURLPrefix + base64.StdEncoding.EncodeToString(png), nil
}
