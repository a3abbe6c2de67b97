package parser

import "strings"

// SplitArgs splits raw argument text into tokens on unescaped, unquoted
// spaces. Double and single quotes each open a quoted run closed only by
// the same quote character; quotes do not nest. A backslash immediately
// before a quote character or a space keeps that character literal without
// delimiting. An unmatched trailing quote swallows the remainder of the
// input into the current token rather than erroring.
func SplitArgs(raw string) []string {
	var tokens []string
	var cur strings.Builder
	inToken := false
	quote := rune(0)

	runes := []rune(raw)
	for i := 0; i < len(runes); i++ {
		c := runes[i]

		if c == '\\' && i+1 < len(runes) {
			next := runes[i+1]
			if next == '"' || next == '\'' || next == ' ' {
				cur.WriteRune(next)
				inToken = true
				i++
				continue
			}
		}

		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			} else {
				cur.WriteRune(c)
			}
		case c == '"' || c == '\'':
			quote = c
			inToken = true
		case c == ' ':
			if inToken {
				tokens = append(tokens, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteRune(c)
			inToken = true
		}
	}

	if inToken {
		tokens = append(tokens, cur.String())
	}
	return tokens
}

// splitHead splits text at the first unescaped space into the head token
// and the untouched remainder. Escaped spaces inside the head lose their
// backslash and stay literal.
func splitHead(text string) (head, rest string) {
	var b strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c == '\\' && i+1 < len(runes) && runes[i+1] == ' ' {
			b.WriteRune(' ')
			i++
			continue
		}
		if c == ' ' {
			return b.String(), strings.TrimLeft(string(runes[i+1:]), " ")
		}
		b.WriteRune(c)
	}
	return b.String(), ""
}
