/*
 * Public Domain Software
 *
 * I (Matthias Ladkau) am the author of the source code in this file.
 * I have placed the source code in this file in the public domain.
 *
 * For further information see: http://creativecommons.org/publicdomain/zero/1.0/
 */

/*
Package stringutil carries the two display-formatting helpers the CLI
front end (cmd/xpath) needs: aligning a node-set's string-values into
columns, and quoting the expression argument back into a log line the
way a shell would.
*/
package stringutil

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

/*
PrintStringTable prints a given list of strings as table with c columns.
*/
func PrintStringTable(ss []string, c int) string {
	var ret bytes.Buffer

	if c < 1 {
		return ""
	}

	//  Determine max widths of columns

	maxWidths := make(map[int]int)

	for i, s := range ss {
		col := i % c

		if l := utf8.RuneCountInString(s); l > maxWidths[col] {
			maxWidths[col] = l
		}
	}

	for i, s := range ss {
		col := i % c

		if i < len(ss)-1 {
			var formatString string

			if col != c-1 {
				formatString = fmt.Sprintf("%%-%vv ", maxWidths[col])
			} else {
				formatString = "%v"
			}

			ret.WriteString(fmt.Sprintf(formatString, s))

		} else {

			ret.WriteString(fmt.Sprintln(s))
			break
		}

		if col == c-1 {
			ret.WriteString(fmt.Sprintln())
		}
	}

	return ret.String()
}

var quoteCLIPattern = regexp.MustCompile(`[^\w@%+=:,./-]`)

/*
QuoteCLIArgs quotes a list of command line arguments the way a POSIX
shell would need them quoted to be re-entered verbatim.
*/
func QuoteCLIArgs(args []string) string {
	l := make([]string, len(args))

	for i, a := range args {
		if quoteCLIPattern.MatchString(a) {
			l[i] = "'" + strings.ReplaceAll(a, "'", "'\"'\"'") + "'"
		} else {
			l[i] = a
		}
	}

	return strings.Join(l, " ")
}
