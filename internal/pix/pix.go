// Package pix handles the pix BR Code payload attached to an order. The
// payload is opaque data produced by the API; before rendering it as a QR
// code the client parses the EMV TLV structure and checks the trailing
// CRC16, falling back to the raw string when the payload does not parse.
package pix

import (
	"fmt"
	"strconv"

	"github.com/go-faster/errors"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/shopspring/decimal"
)

// EMV field ids used by the static pix BR Code.
const (
	fieldMerchantAccount = "26"
	fieldAmount          = "54"
	fieldMerchantName    = "59"
	fieldMerchantCity    = "60"
	fieldAdditionalData  = "62"
	fieldCRC             = "63"

	subFieldPixKey = "01"
	subFieldTxID   = "05"
)

// Sentinel parse errors.
var (
	ErrMalformed   = errors.New("pix: malformed payload")
	ErrBadChecksum = errors.New("pix: checksum mismatch")
)

// Payload is the decoded view of a BR Code.
type Payload struct {
	MerchantName string
	MerchantCity string
	PixKey       string
	TxID         string
	Amount       decimal.Decimal
}

// Parse decodes and validates a BR Code payload. The CRC16-CCITT-FALSE over
// everything up to and including the "6304" tag must match the last four hex
// digits.
func Parse(raw string) (Payload, error) {
	if len(raw) < 8 {
		return Payload{}, ErrMalformed
	}

	// The CRC field is always last: "6304" + 4 hex digits.
	body, sum := raw[:len(raw)-4], raw[len(raw)-4:]
	if body[len(body)-4:] != fieldCRC+"04" {
		return Payload{}, ErrMalformed
	}
	if crc16(body) != sum {
		return Payload{}, ErrBadChecksum
	}

	fields, err := parseTLV(raw)
	if err != nil {
		return Payload{}, err
	}

	var p Payload
	p.MerchantName = fields[fieldMerchantName]
	p.MerchantCity = fields[fieldMerchantCity]

	if v, ok := fields[fieldAmount]; ok {
		amount, err := decimal.NewFromString(v)
		if err != nil {
			return Payload{}, errors.Wrap(ErrMalformed, "amount")
		}
		p.Amount = amount
	}

	if v, ok := fields[fieldMerchantAccount]; ok {
		sub, err := parseTLV(v)
		if err != nil {
			return Payload{}, err
		}
		p.PixKey = sub[subFieldPixKey]
	}
	if v, ok := fields[fieldAdditionalData]; ok {
		sub, err := parseTLV(v)
		if err != nil {
			return Payload{}, err
		}
		p.TxID = sub[subFieldTxID]
	}

	return p, nil
}

// QRPNG renders the payload as a scannable PNG, size pixels per side.
func QRPNG(raw string, size int) ([]byte, error) {
	png, err := qrcode.Encode(raw, qrcode.Medium, size)
	if err != nil {
		return nil, errors.Wrap(err, "encode pix qr")
	}
	return png, nil
}

// parseTLV walks a flat id(2) length(2) value sequence.
func parseTLV(s string) (map[string]string, error) {
	fields := make(map[string]string)
	for i := 0; i < len(s); {
		if i+4 > len(s) {
			return nil, ErrMalformed
		}
		id := s[i : i+2]
		length, err := strconv.Atoi(s[i+2 : i+4])
		if err != nil || length < 0 {
			return nil, ErrMalformed
		}
		if i+4+length > len(s) {
			return nil, ErrMalformed
		}
		fields[id] = s[i+4 : i+4+length]
		i += 4 + length
	}
	return fields, nil
}

// crc16 computes CRC16-CCITT-FALSE and formats it as four uppercase hex
// digits, the way the BR Code spec requires.
func crc16(s string) string {
	crc := 0xFFFF
	for _, b := range []byte(s) {
		crc ^= int(b) << 8
		for range 8 {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ 0x1021
			} else {
				crc <<= 1
			}
			crc &= 0xFFFF
		}
	}
	return fmt.Sprintf("%04X", crc)
}
