package urlx

import "strings"

// Resolve interprets rel against base, following the classic browser
// rules plus two historical tolerances: a redundant "scheme:" prefix on a
// relative reference is stripped (so "http:/index.html" resolves as
// "/index.html"), and "//" after a file base is dropped rather than read
// as an authority.
func Resolve(base URL, rel string) URL {
	if prefix := base.scheme + ":"; base.host != "" && len(rel) >= len(prefix) &&
		strings.EqualFold(rel[:len(prefix)], prefix) &&
		!strings.HasPrefix(rel[len(prefix):], "//") {
		rel = rel[len(prefix):]
	}
	if rel == "" {
		return base
	}
	if rel[0] == '#' {
		u := base
		u.SetEncodedFragment(reencode(rel[1:], fragmentKeep))
		return u
	}
	if !IsRelative(rel) {
		res := Parse(rel)
		if res.valid && res.scheme == base.scheme && res.host == base.host &&
			res.user == "" && base.user != "" {
			res.user, res.pass, res.hasPass = base.user, base.pass, base.hasPass
		}
		res.path = CleanPath(res.path, true)
		return res
	}

	u := base
	u.ClearFragment()
	u.ClearQuery()
	switch {
	case rel[0] == '/':
		if strings.HasPrefix(rel, "//") {
			u.host, u.port, u.ipv6 = "", 0, false
			u.user, u.pass, u.hasPass = "", "", false
			if base.scheme == "file" {
				rel = rel[2:]
			}
		}
		u.path = ""
	case rel[0] != '?':
		// Strip the last path segment so rel appends inside the directory.
		if i := strings.LastIndexByte(u.path, '/'); i >= 0 {
			u.path = u.path[:i+1]
		} else {
			u.path = ""
		}
	default:
		if u.path == "" {
			u.path = "/"
		}
	}
	res := Parse(u.Encode(LeaveTrailingSlash) + rel)
	res.path = CleanPath(res.path, true)
	return res
}
