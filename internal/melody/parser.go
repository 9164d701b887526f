package melody

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var emptyPatternRe = regexp.MustCompile(`^\s*\[\s*\]\s*$`)

// separateDelimiters walks a whitespace-split token list and splits any
// token with a bracket fused to it (e.g. "[C", "G]") into standalone
// "[", "]", "<", ">" tokens, expanding comma-free repeat/tie sugar on
// whatever plain atom remains.
func separateDelimiters(tokens []string) ([]string, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	tok := strings.TrimSpace(tokens[0])
	if tok == "" {
		return nil, fmt.Errorf("%w: empty token", ErrInvalidSyntax)
	}
	if len(tok) == 1 {
		expanded, err := expandSugar(tok)
		if err != nil {
			return nil, err
		}
		rest, err := separateDelimiters(tokens[1:])
		if err != nil {
			return nil, err
		}
		return append(expanded, rest...), nil
	}
	switch {
	case tok[0] == '[':
		rest, err := separateDelimiters(append([]string{tok[1:]}, tokens[1:]...))
		if err != nil {
			return nil, err
		}
		return append([]string{"["}, rest...), nil
	case tok[len(tok)-1] == ']':
		return separateDelimiters(append([]string{tok[:len(tok)-1], "]"}, tokens[1:]...))
	case tok[0] == '<':
		rest, err := separateDelimiters(append([]string{tok[1:]}, tokens[1:]...))
		if err != nil {
			return nil, err
		}
		return append([]string{"<"}, rest...), nil
	case tok[len(tok)-1] == '>':
		return separateDelimiters(append([]string{tok[:len(tok)-1], ">"}, tokens[1:]...))
	}
	expanded, err := expandSugar(tok)
	if err != nil {
		return nil, err
	}
	rest, err := separateDelimiters(tokens[1:])
	if err != nil {
		return nil, err
	}
	return append(expanded, rest...), nil
}

// expandSugar expands the three single-atom shorthand forms: "x;n"
// (n copies grouped into their own subgroup), "x:n" (n copies inline),
// and "x@n" (x held for n slots via the tie token).
func expandSugar(atom string) ([]string, error) {
	if i := strings.Index(atom, ";"); i >= 0 {
		pieces := strings.Split(atom, ";")
		if len(pieces) != 2 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSyntax, atom)
		}
		n, err := strconv.Atoi(pieces[1])
		if err != nil || n <= 1 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSyntax, atom)
		}
		out := make([]string, 0, n+2)
		out = append(out, "[")
		for i := 0; i < n; i++ {
			out = append(out, pieces[0])
		}
		out = append(out, "]")
		return out, nil
	}
	if i := strings.Index(atom, ":"); i >= 0 {
		pieces := strings.Split(atom, ":")
		if len(pieces) != 2 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSyntax, atom)
		}
		n, err := strconv.Atoi(pieces[1])
		if err != nil || n <= 1 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSyntax, atom)
		}
		out := make([]string, n)
		for i := range out {
			out[i] = pieces[0]
		}
		return out, nil
	}
	if i := strings.Index(atom, "@"); i >= 0 {
		pieces := strings.Split(atom, "@")
		if len(pieces) != 2 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSyntax, atom)
		}
		n, err := strconv.Atoi(pieces[1])
		if err != nil || n <= 1 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSyntax, atom)
		}
		out := make([]string, n)
		out[0] = pieces[0]
		for i := 1; i < n; i++ {
			out[i] = "_"
		}
		return out, nil
	}
	return []string{atom}, nil
}

// getSubgroupsR consumes tokens, building container's children in
// place; "[" and "<" open a fresh nested container and recurse, "]"
// and ">" close the current one and hand the remaining tokens back up.
func getSubgroupsR(container *node, tokens []string) ([]string, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	tok := tokens[0]
	switch {
	case tok == "[":
		child := newGroup()
		remainder, err := getSubgroupsR(child, tokens[1:])
		if err != nil {
			return nil, err
		}
		container.children = append(container.children, child)
		return getSubgroupsR(container, remainder)
	case tok == "]":
		return tokens[1:], nil
	case tok == "<":
		child := newAlternation()
		remainder, err := getSubgroupsR(child, tokens[1:])
		if err != nil {
			return nil, err
		}
		container.children = append(container.children, child)
		return getSubgroupsR(container, remainder)
	case tok == ">":
		return tokens[1:], nil
	case emptyPatternRe.MatchString(tok):
		if _, err := getSubgroupsR(container, tokens[1:]); err != nil {
			return nil, err
		}
		return nil, nil
	default:
		container.children = append(container.children, newAtom(tok))
		return getSubgroupsR(container, tokens[1:])
	}
}

// expandAlternations flattens every alternation under container into
// anchor/variant pairs spliced into the parent's child list. An
// alternation's first anchor is the sibling immediately preceding it;
// nested alternations (inside an alternation's own children) expand
// first, depth-first, before being spliced into their parent.
func expandAlternations(container *node) error {
	var newChildren []*node
	idx := 0
	for idx < len(container.children) {
		child := container.children[idx]
		if child.kind == groupNode {
			if err := expandAlternations(child); err != nil {
				return err
			}
		}
		if child.kind != alternationNode {
			newChildren = append(newChildren, child)
			idx++
			continue
		}
		if idx == 0 {
			return fmt.Errorf("%w: alternation must have an anchor", ErrInvalidSyntax)
		}
		if err := expandAlternations(child); err != nil {
			return err
		}
		newChildren = newChildren[:len(newChildren)-1]
		anchor := container.children[idx-1]
		for _, variant := range child.children {
			newChildren = append(newChildren, anchor, variant)
		}
		idx++
	}
	container.children = newChildren
	return nil
}

// getGroups parses a full "[...]" definition into its child tree, with
// every alternation already flattened.
func getGroups(definition string) (*node, error) {
	root := newGroup()
	if emptyPatternRe.MatchString(definition) {
		return root, nil
	}
	trimmed := strings.TrimSpace(definition)
	if len(trimmed) < 2 || trimmed[0] != '[' || trimmed[len(trimmed)-1] != ']' {
		return nil, fmt.Errorf("%w: definition must be wrapped in [ ]", ErrInvalidSyntax)
	}
	tokens := strings.Fields(trimmed[1 : len(trimmed)-1])
	sepd, err := separateDelimiters(tokens)
	if err != nil {
		return nil, err
	}
	var open []string
	for _, tok := range sepd {
		switch tok {
		case "[", "<":
			open = append(open, tok)
		case "]", ">":
			if len(open) == 0 || (open[len(open)-1] == "[") != (tok == "]") {
				return nil, fmt.Errorf("%w: unmatched %q", ErrInvalidSyntax, tok)
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) > 0 {
		return nil, fmt.Errorf("%w: unclosed %q", ErrInvalidSyntax, open[len(open)-1])
	}
	if _, err := getSubgroupsR(root, sepd); err != nil {
		return nil, err
	}
	if err := expandAlternations(root); err != nil {
		return nil, err
	}
	return root, nil
}
