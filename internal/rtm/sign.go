package rtm

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"sort"
)

// sign computes the api_sig the service requires on every call: the MD5 hex
// digest of the shared secret followed by every parameter name and value,
// concatenated in key order.
func sign(secret string, params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := md5.New()
	h.Write([]byte(secret))
	for _, k := range keys {
		h.Write([]byte(k))
		h.Write([]byte(params.Get(k)))
	}
	return hex.EncodeToString(h.Sum(nil))
}
