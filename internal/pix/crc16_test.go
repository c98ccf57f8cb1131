package pix

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksum_KnownVector(t *testing.T) {
	// Standard CRC-16/CCITT-FALSE check value.
	assert.Equal(t, "29B1", Checksum("123456789"))
}

func TestChecksum_Deterministic(t *testing.T) {
	input := "00020126370014br.gov.bcb.pix0115teste@teste.com"
	assert.Equal(t, Checksum(input), Checksum(input))
}

func TestChecksum_EmptyInput(t *testing.T) {
	assert.Equal(t, "FFFF", Checksum(""))
}

// crcTable recomputes the checksum with a precomputed-table variant of the
// same polynomial, as an independent cross-check of the bitwise loop.
func crcTable(s string) string {
	var table [256]uint16
	for n := 0; n < 256; n++ {
		c := uint16(n) << 8
		for k := 0; k < 8; k++ {
			if c&0x8000 != 0 {
				c = c<<1 ^ crcPolynomial
			} else {
				c <<= 1
			}
		}
		table[n] = c
	}

	var crc uint16 = 0xFFFF
	for i := 0; i < len(s); i++ {
		crc = crc<<8 ^ table[byte(crc>>8)^s[i]]
	}
	return fmt.Sprintf("%04X", crc)
}

func TestChecksum_MatchesTableVariant(t *testing.T) {
	samples := []string{
		"",
		"A",
		"123456789",
		"br.gov.bcb.pix",
		"00020126370014br.gov.bcb.pix0115teste@teste.com52040000530398654" +
			"0510.005802BR5906FULANO6009SAO PAULO62070503***6304",
	}
	for _, s := range samples {
		assert.Equal(t, crcTable(s), Checksum(s), "input %q", s)
	}
}
