// SPDX-License-Identifier: MIT

// taginfo explains MAPI property tags.
//
// Usage:
//
//	taginfo 0x0070001E
//	taginfo PR_CONVERSATION_TOPIC_A 0x8233101F
//	taginfo -json 0x0070001E
//	taginfo -type PT_STRING8
//
// Exit codes:
//   - 0: all tags resolved
//   - 1: at least one argument did not parse
//   - 2: usage error
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/olmapi/olmapi/internal/mapi"
	"github.com/olmapi/olmapi/internal/proptag"
	"github.com/olmapi/olmapi/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("taginfo", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var asJSON bool
	var typeName string
	var showVersion bool
	fs.BoolVar(&asJSON, "json", false, "emit JSON instead of text")
	fs.StringVar(&typeName, "type", "", "list all known tags of a property type (e.g. PT_STRING8)")
	fs.BoolVar(&showVersion, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if showVersion {
		fmt.Fprintln(stdout, version.Version)
		return 0
	}

	if typeName != "" {
		return runTypeListing(typeName, asJSON, stdout, stderr)
	}

	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "Error: at least one tag is required")
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, "Usage:")
		fmt.Fprintln(stderr, "  taginfo 0x0070001E")
		fmt.Fprintln(stderr, "  taginfo PR_CONVERSATION_TOPIC_A")
		fmt.Fprintln(stderr, "  taginfo -type PT_STRING8")
		return 2
	}

	exit := 0
	infos := make([]proptag.Info, 0, fs.NArg())
	for _, arg := range fs.Args() {
		tag, err := proptag.Parse(arg)
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", arg, err)
			exit = 1
			continue
		}
		infos = append(infos, proptag.Describe(tag))
	}

	if asJSON {
		if err := writeJSON(stdout, infos); err != nil {
			fmt.Fprintf(stderr, "encode: %v\n", err)
			return 1
		}
		return exit
	}

	for _, info := range infos {
		printInfo(stdout, info)
	}
	return exit
}

// runTypeListing prints every known tag of the given property type.
func runTypeListing(typeName string, asJSON bool, stdout, stderr io.Writer) int {
	pt, ok := mapi.ParsePropType(typeName)
	if !ok {
		fmt.Fprintf(stderr, "unknown property type %q\n", typeName)
		return 1
	}

	tags := proptag.ByType(pt)
	infos := make([]proptag.Info, 0, len(tags))
	for _, tag := range tags {
		infos = append(infos, proptag.Describe(tag))
	}

	if asJSON {
		if err := writeJSON(stdout, infos); err != nil {
			fmt.Fprintf(stderr, "encode: %v\n", err)
			return 1
		}
		return 0
	}

	for _, info := range infos {
		printInfo(stdout, info)
	}
	return 0
}

func writeJSON(w io.Writer, infos []proptag.Info) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(infos)
}

// printInfo renders one tag in the two-column text layout.
func printInfo(w io.Writer, info proptag.Info) {
	fmt.Fprintf(w, "%s\n", info.Hex)
	if info.Name != "" {
		fmt.Fprintf(w, "  name:         %s\n", info.Name)
	}
	fmt.Fprintf(w, "  id:           0x%04X\n", info.ID)
	fmt.Fprintf(w, "  type:         %s (0x%04X)\n", info.TypeName, uint16(info.Type))
	fmt.Fprintf(w, "  multi-valued: %v\n", info.MultiValued)
	fmt.Fprintf(w, "  named:        %v\n", info.Named)
}
