package source

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var sheetIDPattern = regexp.MustCompile(`/d/(.*?)(/|$)`)

// ParseGoogleSheetsURL turns a Google Sheets sharing URL into its CSV export
// URL. It returns "" when the URL carries no /d/<id> segment; callers treat
// that as "no data source".
func ParseGoogleSheetsURL(sharingURL string) string {
	m := sheetIDPattern.FindStringSubmatch(sharingURL)
	if m == nil {
		return ""
	}
	return "https://docs.google.com/spreadsheets/d/" + m[1] + "/export?format=csv"
}

// isGoogleSheet reports whether u points at docs.google.com/spreadsheets.
func isGoogleSheet(u string) bool {
	return strings.Contains(u, "docs.google.com/spreadsheets/")
}

// isExportURL reports whether a Google Sheets URL is already an export link.
func isExportURL(u string) bool {
	return strings.Contains(u, "/export?") || strings.HasSuffix(u, "/export")
}

// withCacheBust sets t=<unix millis> so intermediate caches serve a fresh export.
func withCacheBust(rawURL string, now time.Time) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	q.Set("t", strconv.FormatInt(now.UnixMilli(), 10))
	u.RawQuery = q.Encode()
	return u.String()
}
