package pix

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeField(t *testing.T) {
	got, err := encodeField("00", "01")
	require.NoError(t, err)
	assert.Equal(t, "000201", got)

	got, err = encodeField("59", "COACH STORE")
	require.NoError(t, err)
	assert.Equal(t, "5911COACH STORE", got)

	// Length prefix is always two digits, zero-padded.
	got, err = encodeField("62", strings.Repeat("x", 7))
	require.NoError(t, err)
	assert.Equal(t, "6207xxxxxxx", got)

	_, err = encodeField("26", strings.Repeat("x", 100))
	assert.ErrorIs(t, err, ErrFieldTooLong)
}

func testTransaction() Transaction {
	return Transaction{
		Key:          "teste@teste.com",
		MerchantName: "Fulano",
		MerchantCity: "Sao Paulo",
		Amount:       decimal.RequireFromString("10.00"),
		TxID:         "***",
	}
}

func TestPayload_Structure(t *testing.T) {
	payload, err := Payload(testTransaction())
	require.NoError(t, err)

	fields, err := Parse(payload)
	require.NoError(t, err)

	want := map[string]string{
		"00": "01",
		"52": "0000",
		"53": "986",
		"54": "10.00",
		"58": "BR",
		"59": "FULANO",
		"60": "SAO PAULO",
	}
	for tag, value := range want {
		got, ok := Get(fields, tag)
		require.True(t, ok, "missing field %s", tag)
		assert.Equal(t, value, got, "field %s", tag)
	}

	// Merchant account info: GUI + key, nested under 26.
	mai, ok := Get(fields, "26")
	require.True(t, ok)
	nested, err := Parse(mai)
	require.NoError(t, err)
	guiValue, _ := Get(nested, "00")
	assert.Equal(t, "br.gov.bcb.pix", guiValue)
	key, _ := Get(nested, "01")
	assert.Equal(t, "teste@teste.com", key)

	// Additional data template holds the txid under 05.
	adf, ok := Get(fields, "62")
	require.True(t, ok)
	nested, err = Parse(adf)
	require.NoError(t, err)
	txid, _ := Get(nested, "05")
	assert.Equal(t, "***", txid)
}

func TestPayload_ChecksumSuffix(t *testing.T) {
	payload, err := Payload(testTransaction())
	require.NoError(t, err)

	idx := strings.LastIndex(payload, "6304")
	require.NotEqual(t, -1, idx)
	prefix, suffix := payload[:idx+4], payload[idx+4:]

	require.Len(t, suffix, 4)
	assert.Equal(t, Checksum(prefix), suffix)
	assert.Regexp(t, "^[0-9A-F]{4}$", suffix)
}

func TestPayload_AmountFidelity(t *testing.T) {
	tx := testTransaction()
	tx.Amount = decimal.NewFromInt(170)

	payload, err := Payload(tx)
	require.NoError(t, err)

	// Field 54, length 06, value "170.00".
	assert.Contains(t, payload, "5406170.00")

	fields, err := Parse(payload)
	require.NoError(t, err)
	amount, _ := Get(fields, "54")
	assert.Equal(t, "170.00", amount)
}

func TestPayload_SanitizesMerchantFields(t *testing.T) {
	tx := testTransaction()
	tx.MerchantName = "  João da Silva Confecções Ltda "
	tx.MerchantCity = " Sorocaba "
	tx.TxID = "PEDIDO#123/ABC"

	payload, err := Payload(tx)
	require.NoError(t, err)

	fields, err := Parse(payload)
	require.NoError(t, err)

	name, _ := Get(fields, "59")
	assert.Equal(t, "JOAO DA SILVA CONFECCOES ", name) // truncated at 25
	city, _ := Get(fields, "60")
	assert.Equal(t, "SOROCABA", city)

	adf, _ := Get(fields, "62")
	nested, err := Parse(adf)
	require.NoError(t, err)
	txid, _ := Get(nested, "05")
	assert.Equal(t, "PEDIDO123ABC", txid)
}

func TestPayload_EmptyTxIDFallsBackToStars(t *testing.T) {
	tx := testTransaction()
	tx.TxID = "##//##"

	payload, err := Payload(tx)
	require.NoError(t, err)

	fields, _ := Parse(payload)
	adf, _ := Get(fields, "62")
	nested, err := Parse(adf)
	require.NoError(t, err)
	txid, _ := Get(nested, "05")
	assert.Equal(t, "***", txid)
}

func TestPayload_KeySanitization(t *testing.T) {
	tx := testTransaction()
	tx.Key = "+55 (15) 99176-2066"

	payload, err := Payload(tx)
	require.NoError(t, err)

	fields, _ := Parse(payload)
	mai, _ := Get(fields, "26")
	nested, err := Parse(mai)
	require.NoError(t, err)
	key, _ := Get(nested, "01")
	assert.Equal(t, "551599176-2066", key)
}

func TestPayload_FailsFast(t *testing.T) {
	tx := testTransaction()
	tx.Key = "+++ ()"
	_, err := Payload(tx)
	assert.ErrorIs(t, err, ErrEmptyKey)

	tx = testTransaction()
	tx.Amount = decimal.Zero
	_, err = Payload(tx)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	tx = testTransaction()
	tx.Amount = decimal.NewFromInt(-5)
	_, err = Payload(tx)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestPayload_Deterministic(t *testing.T) {
	first, err := Payload(testTransaction())
	require.NoError(t, err)
	second, err := Payload(testTransaction())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPayload_RoundTrip(t *testing.T) {
	tx := Transaction{
		Key:          "pietra_cmartin@hotmail.com",
		MerchantName: "Coach Store",
		MerchantCity: "Sorocaba",
		Amount:       decimal.RequireFromString("74.00"),
		TxID:         "PEDIDO42",
	}

	payload, err := Payload(tx)
	require.NoError(t, err)

	fields, err := Parse(payload)
	require.NoError(t, err)

	mai, _ := Get(fields, "26")
	nested, _ := Parse(mai)
	key, _ := Get(nested, "01")
	assert.Equal(t, "pietra_cmartin@hotmail.com", key)

	amount, _ := Get(fields, "54")
	assert.Equal(t, "74.00", amount)
	name, _ := Get(fields, "59")
	assert.Equal(t, "COACH STORE", name)
	city, _ := Get(fields, "60")
	assert.Equal(t, "SOROCABA", city)

	adf, _ := Get(fields, "62")
	nested, _ = Parse(adf)
	txid, _ := Get(nested, "05")
	assert.Equal(t, "PEDIDO42", txid)
}
