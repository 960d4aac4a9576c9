package memdom

import "strings"

// matches reports whether the element matches a selector list.
func matches(e *Element, selector string) bool {
	for _, alt := range strings.Split(selector, ",") {
		if matchesSingle(e, strings.TrimSpace(alt)) {
			return true
		}
	}
	return false
}

// matchesSingle matches one complex selector: compound units chained with
// descendant (whitespace) and child (>) combinators. Pseudo-classes and
// pseudo-elements never match; the structural selectors this host serves
// do not use them.
func matchesSingle(e *Element, sel string) bool {
	if sel == "" || strings.ContainsRune(sel, ':') {
		return false
	}
	toks := strings.Fields(strings.ReplaceAll(sel, ">", " > "))
	if len(toks) == 0 || toks[len(toks)-1] == ">" {
		return false
	}
	if !matchCompound(e, toks[len(toks)-1]) {
		return false
	}
	return matchAncestors(e, toks, len(toks)-2)
}

// matchAncestors consumes the remaining tokens right to left, walking up
// the tree. Descendant steps backtrack: if matching the nearest candidate
// ancestor leaves the rest of the selector unsatisfiable, farther
// ancestors are tried.
func matchAncestors(e *Element, toks []string, i int) bool {
	if i < 0 {
		return true
	}

	child := false
	if toks[i] == ">" {
		child = true
		i--
		if i < 0 {
			return false
		}
	}
	comp := toks[i]

	if child {
		p := e.parent
		return p != nil && matchCompound(p, comp) && matchAncestors(p, toks, i-1)
	}
	for p := e.parent; p != nil; p = p.parent {
		if matchCompound(p, comp) && matchAncestors(p, toks, i-1) {
			return true
		}
	}
	return false
}

// matchCompound matches a compound unit: an optional tag followed by any
// number of #id and .class qualifiers, e.g. "div#app", "p.note.hot", "*".
func matchCompound(e *Element, comp string) bool {
	if comp == "*" {
		return true
	}

	rest := comp
	if j := strings.IndexAny(rest, "#."); j != 0 {
		var tag string
		if j == -1 {
			tag, rest = rest, ""
		} else {
			tag, rest = rest[:j], rest[j:]
		}
		if tag != "*" && !strings.EqualFold(tag, e.tag) {
			return false
		}
	}

	for rest != "" {
		unit := rest
		if k := strings.IndexAny(rest[1:], "#."); k != -1 {
			unit, rest = rest[:k+1], rest[k+1:]
		} else {
			rest = ""
		}
		switch {
		case len(unit) < 2:
			return false
		case unit[0] == '#':
			if e.id != unit[1:] {
				return false
			}
		case unit[0] == '.':
			if !e.hasClass(unit[1:]) {
				return false
			}
		}
	}
	return true
}
