package urlx

import "testing"

func TestHasSubURL(t *testing.T) {
	if !Parse("file:///home/x.tgz#gzip:/").HasSubURL() {
		t.Error("gzip filter not detected")
	}
	if Parse("http://host/page#section").HasSubURL() {
		t.Error("plain anchor detected as sub-URL")
	}
	if !Parse("error:/kioslave").HasSubURL() {
		t.Error("error scheme not detected")
	}
	if Parse("file:///home/x.tgz").HasSubURL() {
		t.Error("fragment-less URL detected")
	}
}

func TestSplit(t *testing.T) {
	u := Parse("file:///home/x.tgz#gzip:/#tar:/README")
	list := Split(u)
	if len(list) != 3 {
		t.Fatalf("len(Split) = %d, want 3", len(list))
	}
	if list[0].Scheme() != "file" || list[0].Path() != "/home/x.tgz" {
		t.Errorf("outer = %q", list[0].String())
	}
	if list[1].Scheme() != "gzip" || list[1].Path() != "/" {
		t.Errorf("middle = %q", list[1].String())
	}
	if list[2].Scheme() != "tar" || list[2].Path() != "/README" {
		t.Errorf("inner = %q", list[2].String())
	}
}

func TestSplitJoinRoundTrip(t *testing.T) {
	inputs := []string{
		"file:///home/x.tgz#gzip:/#tar:/README",
		"file:///home/x.tgz#gzip:/",
		"http://host/page#section",
		"file:///plain.txt",
	}
	for _, in := range inputs {
		u := Parse(in)
		if got := Join(Split(u)).String(); got != in {
			t.Errorf("Join(Split(%q)) = %q", in, got)
		}
	}
}

func TestSplitDistributesHTMLRef(t *testing.T) {
	u := Parse("file:///x.tgz#gzip:/#tar:/doc.html#anchor")
	list := Split(u)
	if len(list) != 3 {
		t.Fatalf("len(Split) = %d, want 3", len(list))
	}
	for i, e := range list {
		if e.EncodedFragment() != "anchor" {
			t.Errorf("element %d fragment = %q, want anchor", i, e.EncodedFragment())
		}
	}
}

func TestHTMLRef(t *testing.T) {
	plain := Parse("http://host/page#a%20b")
	if got := plain.HTMLRef(); got != "a b" {
		t.Errorf("HTMLRef = %q", got)
	}
	nested := Parse("file:///x.tgz#gzip:/#tar:/doc.html#anchor")
	if got := nested.HTMLRef(); got != "anchor" {
		t.Errorf("nested HTMLRef = %q", got)
	}
	if got := Parse("file:///x.tgz#gzip:/#tar:/doc.html").HTMLRef(); got != "" {
		t.Errorf("ref-less HTMLRef = %q", got)
	}
}

func TestSetHTMLRef(t *testing.T) {
	u := Parse("http://host/page")
	u.SetHTMLRef("a b")
	if got := u.String(); got != "http://host/page#a%20b" {
		t.Errorf("String = %q", got)
	}
	nested := Parse("file:///x.tgz#gzip:/#tar:/doc.html")
	nested.SetHTMLRef("anchor")
	if got := nested.HTMLRef(); got != "anchor" {
		t.Errorf("nested HTMLRef = %q", got)
	}
	if !nested.HasSubURL() {
		t.Error("SetHTMLRef destroyed the sub-URL chain")
	}
}

func TestUpURL(t *testing.T) {
	u := Parse("http://host/a/b?q=1")
	up := u.UpURL()
	if got := up.String(); got != "http://host/a/b" {
		t.Errorf("query drop = %q", got)
	}
	up = up.UpURL()
	if got := up.String(); got != "http://host/a/" {
		t.Errorf("cd up = %q", got)
	}
}

func TestUpURLPeelsSubURLs(t *testing.T) {
	u := Parse("file:///x.tar.gz#tar:/dir/f")
	steps := []string{
		"file:///x.tar.gz#tar:/dir/",
		"file:///x.tar.gz#tar:/",
		"file:///x.tar.gz",
	}
	for _, want := range steps {
		u = u.UpURL()
		if got := u.String(); got != want {
			t.Fatalf("UpURL = %q, want %q", got, want)
		}
	}
}
