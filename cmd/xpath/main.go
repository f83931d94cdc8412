/*
 * Public Domain Software
 *
 * I (Matthias Ladkau) am the author of the source code in this file.
 * I have placed the source code in this file in the public domain.
 *
 * For further information see: http://creativecommons.org/publicdomain/zero/1.0/
 */

/*
Command xpath evaluates an XPath 1.0 expression against a document and
prints the result, in the one-file flag-parsing shape of a well-known
c14n CLI tool.
*/
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/krotik/xpath"
	"github.com/krotik/xpath/dom"
	"github.com/krotik/xpath/domhtml"
	"github.com/krotik/xpath/domxml"
	"github.com/krotik/xpath/eval"
	"github.com/krotik/xpath/stringutil"
)

var (
	okLabel  = color.New(color.FgGreen).SprintFunc()
	errLabel = color.New(color.FgRed).SprintFunc()
)

func main() {
	isHTML := flag.Bool("html", false, "parse the document as HTML instead of XML")
	file := flag.String("file", "", "path to the document to query (default: stdin)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: xpath [-html] [-file path] '<expression>'")
		os.Exit(2)
	}
	expr := flag.Arg(0)

	in, err := openInput(*file)
	if err != nil {
		fail(err)
	}
	defer in.Close()

	root, err := parseDocument(in, *isHTML)
	if err != nil {
		fail(err)
	}

	compiled, err := xpath.Parse(expr)
	if err != nil {
		fail(err)
	}

	val, err := compiled.Evaluate(root)
	if err != nil {
		fail(err)
	}

	printResult(val)
	log.Println(okLabel("ok"), "evaluated", stringutil.QuoteCLIArgs(flag.Args()))
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "" {
		return os.Stdin, nil
	}
	return os.Open(path)
}

func parseDocument(r io.Reader, isHTML bool) (dom.Node, error) {
	if isHTML {
		doc, err := domhtml.Parse(r)
		if err != nil {
			return nil, err
		}
		return doc, nil
	}

	doc, err := domxml.Parse(r)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func printResult(val eval.Value) {
	switch val.Kind() {
	case eval.KindNodeSet:
		ns, _ := val.NodeSet()
		sorted := ns.Sorted()
		values := make([]string, len(sorted))
		for i, n := range sorted {
			values[i] = eval.StringValueOf(n)
		}
		fmt.Print(stringutil.PrintStringTable(values, 1))
	default:
		fmt.Println(val.AsString())
	}
}

func fail(err error) {
	log.Fatalln(errLabel("error"), err)
}
