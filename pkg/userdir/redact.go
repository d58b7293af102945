// pkg/userdir/redact.go

package userdir

import (
	"net/url"
	"strings"
)

// RedactURL keeps scheme, host and the first path segment of raw and masks
// the rest, which is where crudcrud-style services put the access token.
//
//	https://crudcrud.com/api/0123abcd → https://crudcrud.com/api/***
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "***"
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	var kept []string
	if len(segments) > 0 && segments[0] != "" {
		kept = append(kept, segments[0])
	}
	path := ""
	if len(kept) > 0 {
		path = "/" + strings.Join(kept, "/")
	}
	if len(segments) > 1 {
		path += "/***"
	}

	out := u.Scheme + "://" + u.Host + path
	if u.User != nil {
		out = u.Scheme + "://***@" + u.Host + path
	}
	return out
}
