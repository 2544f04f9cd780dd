package prompt

import (
	"strings"

	"github.com/teranos/promptrev/errors"
)

// strftimeDirectives maps strftime conversion characters to Go time layout
// atoms. Only directives representable in a Go layout are supported.
var strftimeDirectives = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
	'H': "15",
	'I': "03",
	'M': "04",
	'S': "05",
	'p': "PM",
	'a': "Mon",
	'A': "Monday",
	'b': "Jan",
	'B': "January",
	'j': "002",
	'Z': "MST",
	'z': "-0700",
}

// strftimeToLayout translates a strftime pattern like "%Y-%m-%d" into a Go
// time layout. Literal text passes through unchanged; literals containing
// digits or layout-reserved words are not escaped, so patterns should keep
// literals to separators.
func strftimeToLayout(pattern string) (string, error) {
	var out strings.Builder
	out.Grow(len(pattern) + 8)

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '%' {
			out.WriteByte(c)
			continue
		}
		i++
		if i >= len(pattern) {
			return "", errors.New("trailing % in date format")
		}
		d := pattern[i]
		if d == '%' {
			out.WriteByte('%')
			continue
		}
		atom, ok := strftimeDirectives[d]
		if !ok {
			return "", errors.Newf("unsupported date directive %%%c", d)
		}
		out.WriteString(atom)
	}
	return out.String(), nil
}
