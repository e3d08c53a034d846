// Command dtconv parses a date/time string and prints it in several
// layouts, optionally converted to another zone.
//
//	dtconv "Fri, 03 May 2002 10:20:30 +0200"
//	dtconv -in "%d.%m.%Y %H:%M" -zone Europe/Berlin "03.05.2002 10:20"
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/go-timeuri/timeuri/datetime"
	"github.com/go-timeuri/timeuri/tzone"
)

var (
	inFlag   = flag.String("in", "", "Parse with this %-token pattern instead of trying ISO 8601, RFC 2822 and text formats")
	zoneFlag = flag.String("zone", "", "Convert to this IANA time zone before printing")
	unixFlag = flag.Bool("unix", false, "Also print the Unix timestamp")
)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		fmt.Println("Usage: dtconv [-in pattern] [-zone name] [-unix] <date string>")
		os.Exit(1)
	}

	t, err := parse(args[0])
	if err != nil {
		fmt.Println("parsing:", err)
		os.Exit(1)
	}

	if *zoneFlag != "" {
		loc, err := time.LoadLocation(*zoneFlag)
		if err != nil {
			fmt.Println("loading zone:", err)
			os.Exit(1)
		}
		t = t.ToZone(tzone.FromLocation(loc))
	}

	fmt.Println("ISO 8601 =", datetime.Format(t, datetime.ISODate))
	fmt.Println("RFC 2822 =", datetime.Format(t, datetime.RFCDateDay))
	fmt.Println("Text     =", datetime.Format(t, datetime.TextDate))
	if *unixFlag && !t.IsDateOnly() {
		fmt.Println("Unix     =", t.Unix())
	}
}

func parse(s string) (datetime.Time, error) {
	if *inFlag != "" {
		return datetime.Formatter{}.Parse(s, *inFlag)
	}
	if t, err := datetime.ParseISO(s); err == nil {
		return t, nil
	}
	if t, _, err := datetime.ParseRFC(s); err == nil {
		return t, nil
	}
	return datetime.ParseText(s)
}
