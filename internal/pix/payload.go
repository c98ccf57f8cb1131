// Package pix builds static "copia e cola" BR Code payloads for
// merchant-presented Pix payments. The format is the EMV QR TLV layout
// mandated by Banco Central; field order and the trailing CRC are fixed.
package pix

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	ErrEmptyKey      = fmt.Errorf("pix: merchant key is empty after sanitization")
	ErrInvalidAmount = fmt.Errorf("pix: amount must be positive")
	ErrFieldTooLong  = fmt.Errorf("pix: field value exceeds 99 bytes")
)

// Caps per field, from the BR Code manual. Name/city/txid are truncated by
// the builder; the key is not (an oversized key is a configuration error).
const (
	maxFieldLen    = 99
	maxMerchantLen = 25
	maxCityLen     = 15
	maxTxIDLen     = 25

	gui = "br.gov.bcb.pix"
)

// Transaction carries the inputs of one static payment code. It is built
// fresh per checkout and never persisted; the derived payload is
// deterministic, so it can be regenerated from the same inputs at any time.
type Transaction struct {
	Key          string
	MerchantName string
	MerchantCity string
	Amount       decimal.Decimal
	TxID         string
}

var (
	keyAlphabet  = regexp.MustCompile(`[^A-Za-z0-9@._-]`)
	alphanumeric = regexp.MustCompile(`[^A-Za-z0-9]`)

	// NFD, drop combining marks, recompose: "São Paulo" -> "Sao Paulo".
	stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// encodeField emits one TLV field: tag, zero-padded two-digit length, value.
// Truncation is the caller's job; an oversized value here is a bug upstream.
func encodeField(tag, value string) (string, error) {
	if len(value) > maxFieldLen {
		return "", fmt.Errorf("%w: field %s carries %d bytes", ErrFieldTooLong, tag, len(value))
	}
	return fmt.Sprintf("%s%02d%s", tag, len(value), value), nil
}

func cleanText(s string) string {
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		out = s
	}
	return strings.TrimSpace(out)
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

// Payload assembles the complete static BR Code for tx, CRC included.
// It fails instead of emitting a code a banking app could not scan.
func Payload(tx Transaction) (string, error) {
	key := keyAlphabet.ReplaceAllString(tx.Key, "")
	if key == "" {
		return "", ErrEmptyKey
	}

	if !tx.Amount.IsPositive() {
		return "", fmt.Errorf("%w: got %s", ErrInvalidAmount, tx.Amount)
	}
	amount := tx.Amount.StringFixed(2)

	name := strings.ToUpper(truncate(cleanText(tx.MerchantName), maxMerchantLen))
	city := strings.ToUpper(truncate(cleanText(tx.MerchantCity), maxCityLen))

	txid := alphanumeric.ReplaceAllString(truncate(cleanText(tx.TxID), maxTxIDLen), "")
	if txid == "" {
		txid = "***"
	}

	var b payloadBuilder
	b.field("00", "01")
	b.field("26", b.nested("00", gui)+b.nested("01", key))
	b.field("52", "0000")
	b.field("53", "986")
	b.field("54", amount)
	b.field("58", "BR")
	b.field("59", name)
	b.field("60", city)
	b.field("62", b.nested("05", txid))
	if b.err != nil {
		return "", b.err
	}

	// CRC tag + its own fixed length are part of the checksummed input.
	payload := b.sb.String() + "6304"

	return payload + Checksum(payload), nil
}

// payloadBuilder strings TLV fields together, keeping the first error.
type payloadBuilder struct {
	sb  strings.Builder
	err error
}

func (b *payloadBuilder) field(tag, value string) {
	if b.err != nil {
		return
	}
	encoded, err := encodeField(tag, value)
	if err != nil {
		b.err = err
		return
	}
	b.sb.WriteString(encoded)
}

func (b *payloadBuilder) nested(tag, value string) string {
	if b.err != nil {
		return ""
	}
	encoded, err := encodeField(tag, value)
	if err != nil {
		b.err = err
		return ""
	}
	return encoded
}
