// Package browser provides a cookie environment backed by a live browser page
// driven through the Chrome DevTools Protocol with go-rod.
// Reads and writes go through the page's own document.cookie, so the browser
// applies its usual attribute handling.
package browser
