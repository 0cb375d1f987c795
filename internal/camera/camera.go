// Package camera parses the tab-separated camera list and builds the proxy
// links the viewer points its video frame at.
package camera

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf16"
)

// Entry is one camera from the list file.
type Entry struct {
	IP          string `json:"ip"`
	Description string `json:"description"`
}

// Label returns the text shown for the entry: its description, or the IP
// when the description is empty.
func (e Entry) Label() string {
	if e.Description == "" {
		return e.IP
	}
	return e.Description
}

const byteOrderMark = "\ufeff"

// ParseList parses "ip<TAB>description" lines. Lines that do not split into
// exactly two fields are dropped without error. A leading byte order mark is
// ignored and both fields are trimmed of white space and stray BOMs.
func ParseList(text string) []Entry {
	text = strings.TrimPrefix(text, byteOrderMark)

	entries := []Entry{}
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Split(line, "\t")
		if len(fields) != 2 {
			continue
		}
		entries = append(entries, Entry{
			IP:          trimField(fields[0]),
			Description: trimField(fields[1]),
		})
	}
	return entries
}

func trimField(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\ufeff'
	})
}

// SortByDescription orders entries by the UTF-16 code units of their
// descriptions, the order browsers compare strings in. It differs from Go's
// byte order only when U+E000..U+FFFF meets a supplementary-plane character.
// Entries with equal descriptions keep their file order.
func SortByDescription(entries []Entry) {
	keys := make(map[string][]uint16, len(entries))
	key := func(s string) []uint16 {
		k, ok := keys[s]
		if !ok {
			k = utf16.Encode([]rune(s))
			keys[s] = k
		}
		return k
	}
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return slices.Compare(key(a.Description), key(b.Description))
	})
}

// DefaultProxy is the proxy the camera pages are served through.
var DefaultProxy = ProxyTemplate{Host: "192.168.129.200", Port: 8889}

// ProxyTemplate builds per-camera viewing URLs of the form
// http://<host>:<port>/proxy_<ip>/.
type ProxyTemplate struct {
	Host string
	Port int
}

// URL returns the viewing URL for a camera IP.
func (p ProxyTemplate) URL(ip string) string {
	return fmt.Sprintf("http://%s:%d/proxy_%s/", p.Host, p.Port, ip)
}
