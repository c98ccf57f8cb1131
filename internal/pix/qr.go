package pix

import qrcode "github.com/skip2/go-qrcode"

// QRCodePNG renders a payload as a PNG of size x size pixels. Medium
// recovery matches what banking apps expect for static codes.
func QRCodePNG(payload string, size int) ([]byte, error) {
	return qrcode.Encode(payload, qrcode.Medium, size)
}
