package pix

import "fmt"

const crcPolynomial = 0x1021

// Checksum computes CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF) over the
// raw bytes of s and renders it as 4 upper-case hex digits, as required by
// the BR Code field 63. Input must already be sanitized to ASCII; Payload
// guarantees that for everything it feeds in here.
func Checksum(s string) string {
	var crc uint16 = 0xFFFF

	for i := 0; i < len(s); i++ {
		crc ^= uint16(s[i]) << 8
		for j := 0; j < 8; j++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ crcPolynomial
			} else {
				crc <<= 1
			}
		}
	}

	return fmt.Sprintf("%04X", crc)
}
