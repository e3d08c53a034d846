// Command urlinspect parses a URL and prints its components, its
// canonical and pretty renderings, and any nested sub-URL chain.
//
//	urlinspect "file:///home/me/x.tgz#gzip:/#tar:/README"
//	urlinspect -resolve ../index.html "http://host/a/b/page.html"
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-timeuri/timeuri/urlx"
)

var resolveFlag = flag.String("resolve", "", "Resolve this reference against the URL and inspect the result")

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		fmt.Println("Usage: urlinspect [-resolve ref] <url or path>")
		os.Exit(1)
	}

	u := urlx.FromPathOrURL(args[0])
	if !u.IsValid() {
		fmt.Println("malformed URL:", args[0])
		os.Exit(1)
	}
	if *resolveFlag != "" {
		u = urlx.Resolve(u, *resolveFlag)
		if !u.IsValid() {
			fmt.Println("resolution produced a malformed URL")
			os.Exit(1)
		}
	}

	printURL(u)

	if u.HasSubURL() {
		fmt.Println()
		fmt.Println("Sub-URL chain")
		for i, e := range urlx.Split(u) {
			fmt.Printf("  %d = %s\n", i, e.String())
		}
	}
}

func printURL(u urlx.URL) {
	fmt.Println("URL =", u.String())
	fmt.Println("  scheme   =", u.Scheme())
	if u.UserName() != "" {
		fmt.Println("  user     =", u.UserName())
	}
	if u.HasPassword() {
		fmt.Println("  password = (set)")
	}
	if u.Host() != "" {
		fmt.Println("  host     =", u.Host())
	}
	if u.Port() != 0 {
		fmt.Println("  port     =", u.Port())
	}
	fmt.Println("  path     =", u.Path())
	fmt.Println("  file     =", u.FileName(0))
	fmt.Println("  dir      =", u.Directory(0))
	if u.HasQuery() {
		fmt.Println("  query    =", u.Query())
		for k, v := range u.QueryItems(0) {
			fmt.Printf("    %s = %s\n", k, v)
		}
	}
	if u.HasFragment() {
		fmt.Println("  fragment =", u.EncodedFragment())
	}
	fmt.Println("  pretty   =", u.PrettyString())
	if u.IsLocalFile() {
		fmt.Println("  local    =", u.PathOrURL())
	}
}
