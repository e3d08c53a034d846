// Package urlx implements a decomposed URL value type with the tolerant
// parsing, normalization, relative resolution, pretty-printing and sub-URL
// semantics of classic desktop file managers: local paths promote to file
// URLs, raw illegal bytes are repaired by on-the-fly percent-encoding, and
// a fragment may itself nest another URL (tar inside gzip inside a file).
//
// A URL stores its path, userinfo and host decoded; query and fragment are
// kept percent-encoded as given, because queries may contain semantically
// significant encoded delimiters. Encoding is applied at render time.
package urlx

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/idna"

	"github.com/go-timeuri/timeuri/percent"
)

// TrailingSlash is the trailing-slash policy accepted by the renderers and
// by path adjustment.
type TrailingSlash int

const (
	LeaveTrailingSlash TrailingSlash = iota
	AddTrailingSlash
	RemoveTrailingSlash
)

// EqualsOption tunes URL comparison.
type EqualsOption int

const (
	// CompareWithoutTrailingSlash treats "path" and "path/" as equal.
	CompareWithoutTrailingSlash EqualsOption = 1 << iota
	// CompareWithoutFragment ignores the fragment.
	CompareWithoutFragment
	// AllowEmptyPath treats an empty path and "/" as equal. Only effective
	// together with CompareWithoutTrailingSlash.
	AllowEmptyPath
)

// URL is a decomposed URL. The zero URL is invalid and renders as "".
type URL struct {
	valid  bool
	scheme string // lowercase
	user   string // decoded
	pass   string // decoded; hasPass distinguishes empty from absent
	host   string // decoded Unicode, lowercase, brackets stripped
	ipv6   bool
	port   int // 0 means none

	path string // decoded

	query    string // percent-encoded as given
	fragment string // percent-encoded as given

	hasPass     bool
	hasQuery    bool
	hasFragment bool
}

// IsRelative reports whether s lacks a scheme and therefore only makes
// sense resolved against a base URL. The scheme test is purely syntactic:
// a leading letter followed by letters, digits, '+' or '-' up to a colon.
func IsRelative(s string) bool {
	if s == "" {
		return true
	}
	c := s[0]
	if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
		return true
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ':':
			return false
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z',
			c >= '0' && c <= '9', c == '+', c == '-':
		default:
			return true
		}
	}
	return true
}

// Parse interprets s as a URL. Strings beginning with '/' or '~' are taken
// as bare local paths and promoted to file URLs. Strings with no scheme
// are malformed: the result is the invalid URL, which never equals
// anything, itself included.
func Parse(s string) URL {
	if s == "" {
		return URL{}
	}
	if s[0] == '/' || s[0] == '~' {
		return FromPath(s)
	}
	if IsRelative(s) {
		return URL{}
	}
	var u URL
	colon := strings.IndexByte(s, ':')
	u.scheme = strings.ToLower(s[:colon])
	rest := s[colon+1:]

	if strings.HasPrefix(rest, "//") {
		rest = rest[2:]
		end := strings.IndexAny(rest, "/?#")
		authority := rest
		if end >= 0 {
			authority = rest[:end]
			rest = rest[end:]
		} else {
			rest = ""
		}
		if !u.parseAuthority(authority) {
			return URL{}
		}
	}

	frag := ""
	hasFrag := false
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		rest, frag, hasFrag = rest[:i], rest[i+1:], true
	}
	qry := ""
	hasQry := false
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		rest, qry, hasQry = rest[:i], rest[i+1:], true
	}
	u.path = percent.Decode(rest)
	if hasQry {
		u.query, u.hasQuery = reencode(qry, queryKeep), true
	}
	if hasFrag {
		u.fragment, u.hasFragment = reencode(frag, fragmentKeep), true
	}
	u.valid = u.scheme != ""
	return u
}

func (u *URL) parseAuthority(authority string) bool {
	if at := strings.LastIndexByte(authority, '@'); at >= 0 {
		userinfo := authority[:at]
		authority = authority[at+1:]
		if i := strings.IndexByte(userinfo, ':'); i >= 0 {
			u.user = percent.Decode(userinfo[:i])
			u.pass, u.hasPass = percent.Decode(userinfo[i+1:]), true
		} else {
			u.user = percent.Decode(userinfo)
		}
	}
	if strings.HasPrefix(authority, "[") {
		end := strings.IndexByte(authority, ']')
		if end < 0 {
			return false
		}
		u.host = strings.ToLower(authority[1:end])
		u.ipv6 = true
		authority = authority[end+1:]
		if authority == "" {
			return true
		}
		if authority[0] != ':' {
			return false
		}
		return u.parsePort(authority[1:])
	}
	if i := strings.IndexByte(authority, ':'); i >= 0 {
		if !u.parsePort(authority[i+1:]) {
			return false
		}
		authority = authority[:i]
	}
	u.host = decodeHost(authority)
	return true
}

func (u *URL) parsePort(s string) bool {
	if s == "" {
		return true
	}
	port, err := strconv.Atoi(s)
	if err != nil || port < 0 || port > 65535 {
		return false
	}
	u.port = port
	return true
}

// decodeHost lowercases the host and converts a punycode form back to
// Unicode for internal storage; url() re-encodes on the way out.
func decodeHost(host string) string {
	host = strings.ToLower(percent.Decode(host))
	if strings.Contains(host, "xn--") {
		if uni, err := idna.ToUnicode(host); err == nil {
			return uni
		}
	}
	return host
}

func encodeHost(host string) string {
	if isASCII(host) {
		return host
	}
	if ascii, err := idna.ToASCII(host); err == nil {
		return ascii
	}
	return host
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// Byte sets that stay literal when repairing an already-encoded component.
// The fragment set keeps a raw '#' so a nested sub-URL chain stored in the
// fragment survives re-parsing by Split.
const (
	queryKeep    = "!$&'()*+,;=:@/?[]"
	fragmentKeep = "!$&'()*+,;=:@/?#"
	pathKeep     = "!$&'()*+,;=:@/"
	userKeep     = "!$&'()*+,;="
)

// reencode repairs a component that should already be percent-encoded:
// valid escapes and legal bytes pass through, everything else (raw spaces,
// control bytes, non-ASCII) is encoded in place.
func reencode(s, keep string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b.WriteString(s[i : i+3])
			i += 2
		case c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9',
			c == '-' || c == '.' || c == '_' || c == '~',
			strings.IndexByte(keep, c) >= 0:
			b.WriteByte(c)
		default:
			const hexdigits = "0123456789ABCDEF"
			b.WriteByte('%')
			b.WriteByte(hexdigits[c>>4])
			b.WriteByte(hexdigits[c&0xf])
		}
	}
	return b.String()
}

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

// FromPath builds a file URL from a local path. A leading "~" expands to
// the home directory.
func FromPath(path string) URL {
	if path == "" {
		return URL{}
	}
	return URL{valid: true, scheme: "file", path: expandTilde(path)}
}

// FromPathOrURL builds a URL from either a local path or a URL string.
func FromPathOrURL(s string) URL {
	if s == "" {
		return URL{}
	}
	if s[0] == '/' || s[0] == '~' {
		return FromPath(s)
	}
	return Parse(s)
}

func expandTilde(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	rest := path[1:]
	if rest != "" && rest[0] != '/' {
		return path // ~otheruser is not expanded
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return home + rest
}

// IsValid reports whether the URL parsed successfully.
func (u URL) IsValid() bool { return u.valid }

// IsEmpty reports whether the URL is the zero value.
func (u URL) IsEmpty() bool { return !u.valid && u.path == "" }

// Scheme returns the lowercase scheme.
func (u URL) Scheme() string { return u.scheme }

// SetScheme replaces the scheme.
func (u *URL) SetScheme(s string) {
	u.scheme = strings.ToLower(s)
	u.valid = u.scheme != ""
}

// UserName returns the decoded user name.
func (u URL) UserName() string { return u.user }

// SetUserName replaces the user name.
func (u *URL) SetUserName(name string) { u.user = name }

// Password returns the decoded password, or "" if none is set.
func (u URL) Password() string { return u.pass }

// HasPassword reports whether a password is present, even an empty one.
func (u URL) HasPassword() bool { return u.hasPass }

// SetPassword replaces the password. An empty string clears it.
func (u *URL) SetPassword(pass string) {
	u.pass, u.hasPass = pass, pass != ""
}

// Host returns the decoded Unicode host, without IPv6 brackets.
func (u URL) Host() string { return u.host }

// SetHost replaces the host.
func (u *URL) SetHost(host string) {
	u.ipv6 = strings.Contains(host, ":")
	u.host = strings.ToLower(strings.Trim(host, "[]"))
}

// Port returns the port, or 0 if none is set.
func (u URL) Port() int { return u.port }

// SetPort replaces the port. 0 clears it.
func (u *URL) SetPort(port int) { u.port = port }

// Path returns the decoded path.
func (u URL) Path() string { return u.path }

// PathAdjusted returns the decoded path under a trailing-slash policy.
func (u URL) PathAdjusted(adj TrailingSlash) string {
	return adjustTrailing(u.path, adj)
}

// SetPath replaces the path. On a URL with no scheme the scheme becomes
// "file". A leading "~" expands to the home directory.
func (u *URL) SetPath(path string) {
	if u.scheme == "" {
		u.scheme = "file"
	}
	u.path = expandTilde(path)
	u.valid = true
}

// Query returns the percent-encoded query, without the leading '?'.
func (u URL) Query() string { return u.query }

// HasQuery reports whether a query is present, even an empty one.
func (u URL) HasQuery() bool { return u.hasQuery }

// SetQuery replaces the query with an already-encoded string; a leading
// '?' is stripped. An empty string sets an empty-but-present query.
func (u *URL) SetQuery(q string) {
	u.query, u.hasQuery = strings.TrimPrefix(q, "?"), true
}

// ClearQuery removes the query entirely.
func (u *URL) ClearQuery() {
	u.query, u.hasQuery = "", false
}

// EncodedFragment returns the percent-encoded fragment.
func (u URL) EncodedFragment() string { return u.fragment }

// HasFragment reports whether a fragment is present, even an empty one.
func (u URL) HasFragment() bool { return u.hasFragment }

// SetEncodedFragment replaces the fragment with an already-encoded string.
func (u *URL) SetEncodedFragment(f string) {
	u.fragment, u.hasFragment = f, true
}

// ClearFragment removes the fragment entirely.
func (u *URL) ClearFragment() {
	u.fragment, u.hasFragment = "", false
}

// adjustTrailing applies a trailing-slash policy to a path. Removing never
// touches a lone "/".
func adjustTrailing(path string, adj TrailingSlash) string {
	switch adj {
	case AddTrailingSlash:
		if !strings.HasSuffix(path, "/") {
			return path + "/"
		}
	case RemoveTrailingSlash:
		for len(path) > 1 && strings.HasSuffix(path, "/") {
			path = path[:len(path)-1]
		}
	}
	return path
}

// AdjustPath applies a trailing-slash policy to the stored path.
func (u *URL) AdjustPath(adj TrailingSlash) {
	u.path = adjustTrailing(u.path, adj)
}

func (u URL) hasAuthority() bool {
	return u.host != "" || u.user != "" || u.hasPass || u.port != 0
}

// Encode renders the canonical, fully percent-encoded ASCII form,
// including the password. Never show this to a person; use Pretty.
func (u URL) Encode(adj TrailingSlash) string {
	if !u.valid {
		return ""
	}
	if u.scheme == "mailto" {
		return u.Pretty(adj)
	}
	var b strings.Builder
	b.WriteString(u.scheme)
	b.WriteByte(':')
	if u.hasAuthority() || u.scheme == "file" {
		b.WriteString("//")
		if u.user != "" || u.hasPass {
			b.WriteString(percent.Encode(u.user, userKeep))
			if u.hasPass {
				b.WriteByte(':')
				b.WriteString(percent.Encode(u.pass, userKeep))
			}
			b.WriteByte('@')
		}
		if u.ipv6 {
			b.WriteByte('[')
			b.WriteString(u.host)
			b.WriteByte(']')
		} else {
			b.WriteString(encodeHost(u.host))
		}
		if u.port != 0 {
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(u.port))
		}
	}
	b.WriteString(percent.Encode(adjustTrailing(u.path, adj), pathKeep))
	if u.hasQuery {
		b.WriteByte('?')
		b.WriteString(u.query)
	}
	if u.hasFragment {
		b.WriteByte('#')
		b.WriteString(u.fragment)
	}
	return b.String()
}

// String renders the canonical form with the trailing slash left alone.
func (u URL) String() string { return u.Encode(LeaveTrailingSlash) }

// Pretty renders the human-facing form: password omitted, Unicode host,
// path and fragment minimally escaped, query kept encoded as-is.
func (u URL) Pretty(adj TrailingSlash) string {
	if !u.valid {
		return ""
	}
	var b strings.Builder
	b.WriteString(u.scheme)
	b.WriteByte(':')
	if u.hasAuthority() || u.scheme == "file" {
		b.WriteString("//")
		if u.user != "" {
			b.WriteString(percent.Encode(u.user, userKeep))
			b.WriteByte('@')
		}
		if u.ipv6 {
			b.WriteByte('[')
			b.WriteString(u.host)
			b.WriteByte(']')
		} else {
			b.WriteString(u.host)
		}
		if u.port != 0 {
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(u.port))
		}
	}
	b.WriteString(percent.PrettyEncode(adjustTrailing(u.path, adj), false))
	if u.hasQuery {
		b.WriteByte('?')
		b.WriteString(u.query)
	}
	if u.hasFragment {
		b.WriteByte('#')
		b.WriteString(percent.PrettyEncode(percent.Decode(u.fragment), true))
	}
	return b.String()
}

// PrettyString is Pretty with the trailing slash left alone.
func (u URL) PrettyString() string { return u.Pretty(LeaveTrailingSlash) }

// PathOrURL returns the bare filesystem path for a plain local file URL,
// and the pretty rendering for everything else.
func (u URL) PathOrURL() string {
	if u.IsLocalFile() && !u.hasFragment && !u.hasQuery {
		return u.path
	}
	return u.PrettyString()
}

// IsLocalFile reports whether the URL names a file on this machine: the
// file scheme with no nested sub-URL and no foreign host.
func (u URL) IsLocalFile() bool {
	if u.scheme != "file" || u.HasSubURL() {
		return false
	}
	if u.host == "" || u.host == "localhost" {
		return true
	}
	name, err := os.Hostname()
	return err == nil && strings.EqualFold(name, u.host)
}

// CleanPath collapses "." segments and folds ".." segments into their
// nearest preceding real segment, counting pending cd-ups while scanning
// from the end. Duplicate separators are collapsed unless keepDirSeparators
// is set. Relative paths are returned untouched. A trailing slash (or a
// trailing "/.") survives cleaning.
func CleanPath(path string, keepDirSeparators bool) string {
	if path == "" || path[0] != '/' {
		return path
	}
	slash := strings.HasSuffix(path, "/") || strings.HasSuffix(path, "/.")
	segs := strings.Split(path, "/")[1:]
	if n := len(segs); n > 0 && segs[n-1] == "" {
		segs = segs[:n-1]
	}
	var kept []string
	cdUp := 0
	for i := len(segs) - 1; i >= 0; i-- {
		seg := segs[i]
		switch {
		case seg == "..":
			cdUp++
		case seg == ".":
		case seg == "":
			if keepDirSeparators {
				kept = append(kept, seg)
			}
		default:
			if cdUp > 0 {
				cdUp--
			} else {
				kept = append(kept, seg)
			}
		}
	}
	var b strings.Builder
	for i := len(kept) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(kept[i])
	}
	result := b.String()
	if result == "" {
		return "/"
	}
	if slash {
		result += "/"
	}
	return result
}

// CleanPath normalizes the stored path in place, collapsing duplicate
// separators.
func (u *URL) CleanPath() {
	u.path = CleanPath(u.path, false)
}

// Equals compares two URLs structurally. Invalid URLs are never equal to
// anything, themselves included.
func (u URL) Equals(other URL, opts EqualsOption) bool {
	if !u.valid || !other.valid {
		return false
	}
	p1, p2 := u.path, other.path
	if opts&CompareWithoutTrailingSlash != 0 {
		p1 = adjustTrailing(p1, RemoveTrailingSlash)
		p2 = adjustTrailing(p2, RemoveTrailingSlash)
		if opts&AllowEmptyPath != 0 {
			if p1 == "/" {
				p1 = ""
			}
			if p2 == "/" {
				p2 = ""
			}
		}
	}
	if p1 != p2 {
		return false
	}
	if u.scheme != other.scheme ||
		u.user != other.user ||
		u.hasPass != other.hasPass || u.pass != other.pass ||
		u.host != other.host ||
		u.port != other.port ||
		u.hasQuery != other.hasQuery || u.query != other.query {
		return false
	}
	if opts&CompareWithoutFragment != 0 {
		return true
	}
	return u.hasFragment == other.hasFragment && u.fragment == other.fragment
}

// Cmp compares two URL strings for equality after parsing. Two empty
// strings are equal; a malformed string equals nothing, not even an
// identical malformed string.
func Cmp(a, b string, opts EqualsOption) bool {
	if a == "" && b == "" {
		return true
	}
	if a == "" || b == "" {
		return false
	}
	return Parse(a).Equals(Parse(b), opts)
}
