// Package gravatar derives avatar URLs from email addresses.
package gravatar

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"

	"github.com/dmitrijs2005/gophsocial/internal/common"
)

const baseURL = "//www.gravatar.com/avatar/"

// options mirror the gravatar query parameters we use.
type options struct {
	Size    string // s
	Rating  string // r
	Default string // d
}

// 200px, PG rated, "mystery person" fallback.
var defaultOptions = options{Size: "200", Rating: "pg", Default: "mm"}

// URL returns the protocol-relative avatar URL for email.
func URL(email string) string {
	return urlWithOptions(email, defaultOptions)
}

func urlWithOptions(email string, opts options) string {
	sum := md5.Sum([]byte(common.NormalizeEmail(email)))

	q := url.Values{}
	if opts.Size != "" {
		q.Set("s", opts.Size)
	}
	if opts.Rating != "" {
		q.Set("r", opts.Rating)
	}
	if opts.Default != "" {
		q.Set("d", opts.Default)
	}

	u := baseURL + hex.EncodeToString(sum[:])
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}
