package urlx

import (
	"strings"

	"github.com/go-timeuri/timeuri/percent"
)

// QueryItemsOption tunes QueryItems.
type QueryItemsOption int

// CaseInsensitiveKeys lowercases the keys of the returned map.
const CaseInsensitiveKeys QueryItemsOption = 1

func decodeQueryValue(v string) string {
	return percent.Decode(strings.ReplaceAll(v, "+", " "))
}

// QueryItems returns the decoded key/value pairs of the query. '+' decodes
// to a space. The first occurrence of a repeated key wins.
func (u URL) QueryItems(opts QueryItemsOption) map[string]string {
	items := make(map[string]string)
	if !u.hasQuery || u.query == "" {
		return items
	}
	for _, item := range strings.Split(u.query, "&") {
		if item == "" {
			continue
		}
		key, value := item, ""
		if i := strings.IndexByte(item, '='); i >= 0 {
			key, value = item[:i], item[i+1:]
		}
		key = decodeQueryValue(key)
		if opts&CaseInsensitiveKeys != 0 {
			key = strings.ToLower(key)
		}
		if _, dup := items[key]; !dup {
			items[key] = decodeQueryValue(value)
		}
	}
	return items
}

// QueryItem returns the decoded value of the first query item with the
// given key, or "" if there is none.
func (u URL) QueryItem(key string) string {
	if !u.hasQuery {
		return ""
	}
	for _, item := range strings.Split(u.query, "&") {
		if strings.HasPrefix(item, key+"=") {
			return decodeQueryValue(item[len(key)+1:])
		}
		if item == key {
			return ""
		}
	}
	return ""
}

// AddQueryItem appends a key/value pair, percent-encoding the value so a
// literal '+' survives the round trip through QueryItem.
func (u *URL) AddQueryItem(key, value string) {
	item := key + "=" + percent.Encode(value, "")
	if u.hasQuery && u.query != "" {
		u.query += "&"
	}
	u.query += item
	u.hasQuery = true
}

// RemoveQueryItem deletes every query item with the given key.
func (u *URL) RemoveQueryItem(key string) {
	if !u.hasQuery {
		return
	}
	var kept []string
	for _, item := range strings.Split(u.query, "&") {
		if item == key || strings.HasPrefix(item, key+"=") {
			continue
		}
		kept = append(kept, item)
	}
	u.query = strings.Join(kept, "&")
	if u.query == "" {
		u.hasQuery = false
	}
}

// FileEncoding returns the value of the "charset" query item, the
// conventional way a text file's encoding rides along in its URL.
func (u URL) FileEncoding() string {
	return u.QueryItem("charset")
}

// SetFileEncoding replaces the "charset" query item. An empty encoding
// removes it.
func (u *URL) SetFileEncoding(encoding string) {
	u.RemoveQueryItem("charset")
	if encoding != "" {
		u.AddQueryItem("charset", encoding)
	}
}
