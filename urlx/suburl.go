package urlx

import (
	"strings"

	"github.com/go-timeuri/timeuri/percent"
)

// Fragment prefixes that denote a nested filter URL rather than an in-page
// anchor.
var subURLPrefixes = []string{
	"gzip:", "bzip:", "bzip2:", "lzma:", "xz:", "tar:", "ar:", "zip:",
}

// HasSubURL reports whether the fragment encodes a nested URL: it begins
// with one of the filter scheme prefixes, or the scheme itself is "error".
func (u URL) HasSubURL() bool {
	if !u.valid || u.scheme == "" {
		return false
	}
	if u.scheme == "error" {
		return true
	}
	if !u.hasFragment || u.fragment == "" {
		return false
	}
	for _, prefix := range subURLPrefixes {
		if strings.HasPrefix(u.fragment, prefix) {
			return true
		}
	}
	return false
}

// Split decomposes a URL into its chain of nested URLs, outermost first.
// The trailing HTML reference, if any, is distributed onto every element.
// Join is the exact inverse.
func Split(u URL) List {
	if !u.valid {
		return nil
	}
	var list List
	cur := u
	for {
		next := cur
		next.ClearFragment()
		list = append(list, next)
		if cur.HasSubURL() && cur.fragment != "" {
			inner := Parse(cur.fragment)
			if !inner.valid {
				break
			}
			cur = inner
			continue
		}
		break
	}
	if cur.hasFragment {
		for i := range list {
			list[i].SetEncodedFragment(cur.fragment)
		}
	}
	return list
}

// Join reassembles a chain produced by Split: folding right to left, each
// element's fragment becomes the rendering of everything nested inside it.
func Join(list List) URL {
	if len(list) == 0 {
		return URL{}
	}
	result := list[len(list)-1]
	for i := len(list) - 2; i >= 0; i-- {
		u := list[i]
		u.SetEncodedFragment(result.String())
		result = u
	}
	return result
}

// HTMLRef returns the decoded in-page anchor reference. For a URL with
// nested sub-URLs that is the reference carried by the chain, not the
// nested URL text.
func (u URL) HTMLRef() string {
	if !u.HasSubURL() {
		return percent.Decode(u.fragment)
	}
	list := Split(u)
	if len(list) == 0 {
		return ""
	}
	return percent.Decode(list[0].fragment)
}

// EncodedHTMLRef is HTMLRef without decoding.
func (u URL) EncodedHTMLRef() string {
	if !u.HasSubURL() {
		return u.fragment
	}
	list := Split(u)
	if len(list) == 0 {
		return ""
	}
	return list[0].fragment
}

// HasHTMLRef reports whether the URL carries an in-page anchor reference.
func (u URL) HasHTMLRef() bool {
	if !u.HasSubURL() {
		return u.hasFragment
	}
	list := Split(u)
	return len(list) > 0 && list[0].hasFragment
}

// SetHTMLRef replaces the in-page anchor reference, keeping any nested
// sub-URL chain intact.
func (u *URL) SetHTMLRef(ref string) {
	if !u.HasSubURL() {
		u.SetEncodedFragment(percent.Encode(ref, fragmentKeep))
		return
	}
	list := Split(*u)
	for i := range list {
		list[i].SetEncodedFragment(percent.Encode(ref, fragmentKeep))
	}
	*u = Join(list)
}

// UpURL returns the URL one level up: first the query is dropped, then the
// path moves to its parent directory, peeling off exhausted sub-URLs.
func (u URL) UpURL() URL {
	if u.hasQuery && u.query != "" {
		up := u
		up.ClearQuery()
		return up
	}
	if !u.HasSubURL() {
		up := u
		up.ClearFragment()
		up.Cd("../")
		return up
	}
	list := Split(u)
	for len(list) > 1 {
		last := &list[len(list)-1]
		old := last.path
		last.Cd("../")
		if last.path != old {
			break
		}
		list = list[:len(list)-1]
	}
	return Join(list)
}
