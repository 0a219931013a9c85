package crypto

import (
	"encoding/base64"
	"fmt"

	"github.com/mr-tron/base58"
)

// Account data encodings understood by DecodeAccountData.
const (
	EncodingBase64 = "base64"
	EncodingBase58 = "base58"
)

// B64 encodes b as standard base64, the form used for transactions and
// messages on the JSON-RPC wire.
func B64(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

// FromB64 decodes standard base64.
func FromB64(s string) ([]byte, error) { return base64.StdEncoding.DecodeString(s) }

// DecodeAccountData decodes the [data, encoding] pair returned for account
// data. An empty pair is empty data.
func DecodeAccountData(pair []string) ([]byte, error) {
	switch {
	case len(pair) == 0:
		return nil, nil
	case len(pair) != 2:
		return nil, fmt.Errorf("account data: want [data, encoding], got %d elements", len(pair))
	}
	switch pair[1] {
	case EncodingBase64:
		return FromB64(pair[0])
	case EncodingBase58:
		return base58.Decode(pair[0])
	default:
		return nil, fmt.Errorf("account data: unsupported encoding %q", pair[1])
	}
}
