package urlx

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// List is an ordered collection of URLs, the unit of clipboard and
// drag-and-drop interchange.
type List []URL

// NewList parses each string into a URL.
func NewList(urls []string) List {
	list := make(List, 0, len(urls))
	for _, s := range urls {
		list = append(list, Parse(s))
	}
	return list
}

// Strings renders each URL in canonical form.
func (l List) Strings() []string {
	out := make([]string, 0, len(l))
	for _, u := range l {
		out = append(out, u.String())
	}
	return out
}

// interchangeString renders one URL for the interchange payload: local
// files keep their full form, everything else has the password stripped.
func interchangeString(u URL) string {
	if u.IsLocalFile() {
		return u.String()
	}
	u.SetPassword("")
	return u.String()
}

// EncodeURIList renders the list as a text/uri-list payload: one canonical
// URL per CRLF-terminated line.
func (l List) EncodeURIList() string {
	var b strings.Builder
	for _, u := range l {
		b.WriteString(interchangeString(u))
		b.WriteString("\r\n")
	}
	return b.String()
}

// DecodeURIList parses a text/uri-list payload. Lines beginning with '#'
// are comments; empty lines are skipped.
func DecodeURIList(data string) List {
	var list List
	for _, line := range strings.FieldsFunc(data, func(r rune) bool {
		return r == '\r' || r == '\n'
	}) {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		list = append(list, Parse(line))
	}
	return list
}

const metadataSeparator = "$@@$"

// EncodeMetadata flattens a metadata map into the companion interchange
// blob: key and value alternating, each terminated by the separator. Keys
// are emitted in sorted order so the encoding is deterministic.
func EncodeMetadata(meta map[string]string) string {
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString(metadataSeparator)
		b.WriteString(meta[k])
		b.WriteString(metadataSeparator)
	}
	return b.String()
}

// DecodeMetadata parses a metadata blob produced by EncodeMetadata.
func DecodeMetadata(data string) (map[string]string, error) {
	meta := make(map[string]string)
	if data == "" {
		return meta, nil
	}
	if !strings.HasSuffix(data, metadataSeparator) {
		return nil, errors.Errorf("metadata blob does not end with %q", metadataSeparator)
	}
	parts := strings.Split(strings.TrimSuffix(data, metadataSeparator), metadataSeparator)
	if len(parts)%2 != 0 {
		return nil, errors.New("metadata blob has a key without a value")
	}
	for i := 0; i < len(parts); i += 2 {
		meta[parts[i]] = parts[i+1]
	}
	return meta, nil
}
