package cookie

import (
	"strconv"
	"time"
)

// ExpiredDate is an expires attribute in the past, which makes the browser drop the cookie.
const ExpiredDate = "Thu, 01 Jan 1970 00:00:01 GMT"

// FormatSession encodes an entry that sets name to value for maxAge.
func FormatSession(name, value string, maxAge time.Duration) string {
	return name + "=" + value + ";max-age=" + strconv.FormatInt(int64(maxAge/time.Second), 10)
}

// FormatExpired encodes an entry that deletes name.
func FormatExpired(name string) string {
	return name + "=;expires=" + ExpiredDate
}
