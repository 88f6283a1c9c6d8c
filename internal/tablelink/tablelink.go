// Package tablelink generates the per-table QR deep links handed out by the
// staff dashboard. Each link carries the obfuscated table token that the
// customer client's identity resolver decodes on first visit.
package tablelink

import (
	"net/url"
	"strings"

	"github.com/go-faster/errors"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/identity"
)

// Link builds the deep link for a table: <base>/?t=<token>.
func Link(baseURL string, table int) (string, error) {
	if table <= 0 {
		return "", errors.New("table number must be positive")
	}
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return "", errors.Wrap(err, "parse base url")
	}
	q := u.Query()
	q.Set("t", identity.EncodeToken(table))
	u.RawQuery = q.Encode()
	u.Path += "/"
	return u.String(), nil
}

// QRPNG renders the table link as a printable QR code. High error correction,
// matching the printed-card use of the original dashboard.
func QRPNG(baseURL string, table, size int) ([]byte, error) {
	link, err := Link(baseURL, table)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(link, qrcode.High, size)
	if err != nil {
		return nil, errors.Wrap(err, "encode table qr")
	}
	return png, nil
}
