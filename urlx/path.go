package urlx

import "strings"

// DirectoryOption tunes FileName and Directory.
type DirectoryOption int

const (
	// ObeyTrailingSlash makes a trailing slash significant: the file name
	// of "dir/" is then "" rather than "dir".
	ObeyTrailingSlash DirectoryOption = 1 << iota
	// AppendTrailingSlash keeps the trailing slash on Directory results.
	AppendTrailingSlash
)

// FileName returns the last path segment. By default a trailing slash is
// ignored, so the file name of "/dir/" is "dir". For a URL with nested
// sub-URLs the file name comes from the innermost one.
func (u URL) FileName(opts DirectoryOption) string {
	if u.HasSubURL() {
		list := Split(u)
		return list[len(list)-1].FileName(opts)
	}
	path := u.path
	if opts&ObeyTrailingSlash == 0 {
		path = adjustTrailing(path, RemoveTrailingSlash)
		if path == "/" {
			return ""
		}
	} else if strings.HasSuffix(path, "/") {
		return ""
	}
	return path[strings.LastIndexByte(path, '/')+1:]
}

// Directory returns the path with the last segment removed. By default a
// trailing slash is ignored first and the result carries no trailing
// slash.
func (u URL) Directory(opts DirectoryOption) string {
	path := u.path
	if opts&ObeyTrailingSlash == 0 {
		path = adjustTrailing(path, RemoveTrailingSlash)
	}
	i := strings.LastIndexByte(path, '/')
	switch {
	case i < 0:
		return ""
	case i == 0:
		return "/"
	case opts&AppendTrailingSlash != 0:
		return path[:i+1]
	default:
		return path[:i]
	}
}

// AddPath appends txt to the path, inserting or collapsing the joining
// slash so exactly one separates them.
func (u *URL) AddPath(txt string) {
	if txt == "" {
		return
	}
	p := u.path
	if strings.HasSuffix(p, "/") {
		txt = strings.TrimLeft(txt, "/")
	} else if !strings.HasPrefix(txt, "/") {
		p += "/"
	}
	u.path = p + txt
}

// SetFileName replaces the last path segment. Leading slashes on name are
// discarded; an empty path becomes "/" first.
func (u *URL) SetFileName(name string) {
	name = strings.TrimLeft(name, "/")
	p := u.path
	switch {
	case p == "":
		p = "/"
	case !strings.HasSuffix(p, "/"):
		p = p[:strings.LastIndexByte(p, '/')+1]
	}
	u.path = p + name
}

// SetDirectory replaces the path with dir, guaranteed to end in a slash.
func (u *URL) SetDirectory(dir string) {
	u.SetPath(adjustTrailing(dir, AddTrailingSlash))
}

// Cd changes the path: absolute paths and, for file URLs, "~" replace it,
// anything else appends and normalizes. The fragment and query are
// cleared. It reports whether the URL changed.
func (u *URL) Cd(dir string) bool {
	if dir == "" || !u.valid {
		return false
	}
	if dir[0] == '/' {
		u.path = dir
	} else if dir[0] == '~' && u.scheme == "file" {
		u.path = expandTilde(dir)
	} else {
		p := adjustTrailing(u.path, AddTrailingSlash) + dir
		u.path = CleanPath(p, false)
	}
	u.ClearFragment()
	u.ClearQuery()
	return true
}

// IsParentOf reports whether u names a directory containing other, or the
// same resource up to a trailing slash.
func (u URL) IsParentOf(other URL) bool {
	if !u.valid || !other.valid {
		return false
	}
	if u.scheme != other.scheme || u.host != other.host ||
		u.port != other.port || u.user != other.user {
		return false
	}
	if u.Equals(other, CompareWithoutTrailingSlash|CompareWithoutFragment) {
		return true
	}
	return strings.HasPrefix(other.path, adjustTrailing(u.path, AddTrailingSlash))
}

// RelativePath expresses path relative to baseDir by matching leading
// segments and emitting "../" for the remainder of baseDir. isParent
// reports that path lies underneath baseDir, in which case the result is
// prefixed "./".
func RelativePath(baseDir, path string) (rel string, isParent bool) {
	base := CleanPath(baseDir, false)
	full := path
	if full == "" || full[0] != '/' {
		full = base + "/" + full
	}
	full = CleanPath(full, false)
	if base == "" {
		return full, false
	}

	list1 := splitSkipEmpty(base)
	list2 := splitSkipEmpty(full)
	level := 0
	for level < len(list1) && level < len(list2) && list1[level] == list2[level] {
		level++
	}
	var b strings.Builder
	for i := level; i < len(list1); i++ {
		b.WriteString("../")
	}
	for i := level; i < len(list2); i++ {
		b.WriteString(list2[i])
		b.WriteByte('/')
	}
	rel = b.String()
	if level < len(list2) && !strings.HasSuffix(path, "/") {
		rel = strings.TrimSuffix(rel, "/")
	}
	isParent = level == len(list1)
	if isParent {
		rel = "./" + rel
	}
	return rel, isParent
}

func splitSkipEmpty(p string) []string {
	var out []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// RelativeURL expresses u relative to base when they share scheme,
// authority and credentials, carrying u's query and fragment along; an
// empty result becomes "./". Unrelated URLs render in full.
func RelativeURL(base, u URL) string {
	if base.scheme == u.scheme && base.host == u.host && base.port == u.port &&
		base.user == u.user && base.pass == u.pass {
		rel, _ := RelativePath(base.Directory(0), u.path)
		if u.hasQuery {
			rel += "?" + u.query
		}
		if u.hasFragment {
			rel += "#" + u.fragment
		}
		if rel == "" {
			rel = "./"
		}
		return rel
	}
	return u.String()
}
