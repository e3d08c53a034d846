package urlx

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestQueryItems(t *testing.T) {
	u := Parse("http://host/?a=1&b=two%20words&c&a=shadowed&flag")
	want := map[string]string{
		"a":    "1",
		"b":    "two words",
		"c":    "",
		"flag": "",
	}
	if diff := cmp.Diff(want, u.QueryItems(0)); diff != "" {
		t.Errorf("QueryItems mismatch (-want +got):\n%s", diff)
	}
}

func TestQueryItemsCaseInsensitive(t *testing.T) {
	u := Parse("http://host/?Key=v")
	items := u.QueryItems(CaseInsensitiveKeys)
	if items["key"] != "v" {
		t.Errorf("items = %v", items)
	}
}

func TestQueryItem(t *testing.T) {
	u := Parse("http://host/?a=1&b=plus+sign")
	if got := u.QueryItem("a"); got != "1" {
		t.Errorf("QueryItem(a) = %q", got)
	}
	// '+' in an encoded query decodes to a space.
	if got := u.QueryItem("b"); got != "plus sign" {
		t.Errorf("QueryItem(b) = %q", got)
	}
	if got := u.QueryItem("missing"); got != "" {
		t.Errorf("QueryItem(missing) = %q", got)
	}
}

func TestAddQueryItemRoundTripsPlus(t *testing.T) {
	u := Parse("http://host/")
	u.AddQueryItem("a", "b+c")
	if got := u.QueryItem("a"); got != "b+c" {
		t.Errorf("QueryItem after AddQueryItem = %q", got)
	}
	if got := u.Query(); got != "a=b%2Bc" {
		t.Errorf("encoded query = %q", got)
	}
	u.AddQueryItem("d", "e f")
	if got := u.Query(); got != "a=b%2Bc&d=e%20f" {
		t.Errorf("encoded query = %q", got)
	}
}

func TestRemoveQueryItem(t *testing.T) {
	u := Parse("http://host/?a=1&b=2&a=3")
	u.RemoveQueryItem("a")
	if got := u.Query(); got != "b=2" {
		t.Errorf("Query = %q", got)
	}
}

func TestRemoveLastQueryItem(t *testing.T) {
	u := Parse("http://host/?a=1")
	u.RemoveQueryItem("a")
	if u.HasQuery() {
		t.Error("removing the last item left the query present")
	}
	if got := u.String(); got != "http://host/" {
		t.Errorf("String = %q", got)
	}
}

func TestFileEncoding(t *testing.T) {
	u := Parse("file:///tmp/x")
	if got := u.FileEncoding(); got != "" {
		t.Errorf("FileEncoding = %q", got)
	}
	u.SetFileEncoding("utf-8")
	if got := u.FileEncoding(); got != "utf-8" {
		t.Errorf("FileEncoding = %q", got)
	}
	if got := u.String(); got != "file:///tmp/x?charset=utf-8" {
		t.Errorf("String = %q", got)
	}
	u.SetFileEncoding("")
	if u.HasQuery() {
		t.Error("clearing the encoding left an empty query behind")
	}
}
