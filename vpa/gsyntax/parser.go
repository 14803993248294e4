package gsyntax

import (
	"github.com/dekarrin/vpagen/vpa/ast"
	"github.com/dekarrin/vpagen/vpa/vpaerr"
)

// Parse reads grammar text in the form:
//
//	Name:
//	  SourceItem... -> TransformItem...
//	  SourceItem... -> TransformItem...
//	OtherName:
//	  ...
//
// and returns its ast.Grammar. Parse performs no validation beyond what is
// needed to build a well-formed tree: undefined nonterminal references,
// duplicate or unused bindings, and the other binding invariants are
// vpa/elaborate's job, not this package's.
func Parse(src string) (ast.Grammar, error) {
	toks, err := scan(src)
	if err != nil {
		return ast.Grammar{}, err
	}
	p := &parser{toks: toks}
	return p.parseGrammar()
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) cur() token {
	return p.toks[p.pos]
}

// peek2 returns the token after cur, or the final tEOF token if cur is
// already the last one.
func (p *parser) peek2() token {
	if p.pos+1 >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+1]
}

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind tokenKind) (token, error) {
	t := p.cur()
	if t.kind != kind {
		return token{}, vpaerr.Syntax(t.line, t.col, "expected %s, found %s", kind, t.kind)
	}
	return p.advance(), nil
}

// atHeaderStart reports whether cur begins a "Name:" nonterminal header:
// an identifier immediately followed by a colon. This is what distinguishes
// a header from a rule's Source, since a Source either starts with a string
// literal, a '[', or an identifier immediately followed by '=' (never ':').
func (p *parser) atHeaderStart() bool {
	return p.cur().kind == tIdent && p.peek2().kind == tColon
}

func (p *parser) atSourceItemStart() bool {
	switch p.cur().kind {
	case tString, tLBracket, tIdent:
		return true
	default:
		return false
	}
}

func (p *parser) atTransformItemStart() bool {
	switch p.cur().kind {
	case tString:
		return true
	case tIdent:
		// A bare identifier here is a transform binding reference, unless it
		// is actually the start of the grammar's next header (which also
		// begins with an identifier, followed by ':'). A next rule's Source
		// starting with a bare identifier is ruled out by parseTransform's
		// own newline check, not here.
		return !p.atHeaderStart()
	default:
		return false
	}
}

func (p *parser) parseGrammar() (ast.Grammar, error) {
	var g ast.Grammar
	if p.cur().kind == tEOF {
		return g, vpaerr.Syntax(p.cur().line, p.cur().col, "empty grammar")
	}
	for p.cur().kind != tEOF {
		nt, err := p.parseNonterminal()
		if err != nil {
			return ast.Grammar{}, err
		}
		g.Nonterminals = append(g.Nonterminals, nt)
	}
	return g, nil
}

func (p *parser) parseNonterminal() (ast.Nonterminal, error) {
	nameTok, err := p.expect(tIdent)
	if err != nil {
		return ast.Nonterminal{}, err
	}
	if _, err := p.expect(tColon); err != nil {
		return ast.Nonterminal{}, err
	}

	var rules []ast.Rule
	for p.atSourceItemStart() && !p.atHeaderStart() {
		rule, err := p.parseRule()
		if err != nil {
			return ast.Nonterminal{}, err
		}
		rules = append(rules, rule)
	}
	if len(rules) == 0 {
		t := p.cur()
		return ast.Nonterminal{}, vpaerr.Syntax(t.line, t.col, "nonterminal %q has no rules", nameTok.text)
	}

	return ast.Nonterminal{Name: nameTok.text, Rules: rules}, nil
}

func (p *parser) parseRule() (ast.Rule, error) {
	source, err := p.parseSource()
	if err != nil {
		return ast.Rule{}, err
	}
	if _, err := p.expect(tArrow); err != nil {
		return ast.Rule{}, err
	}
	transform, err := p.parseTransform()
	if err != nil {
		return ast.Rule{}, err
	}
	return ast.Rule{Source: source, Transform: transform}, nil
}

func (p *parser) parseSource() (ast.Source, error) {
	var src ast.Source
	for p.atSourceItemStart() {
		// A newline ends this rule's source item list: only the first item
		// may follow one (the newline after the nonterminal's header, or
		// after the previous rule's transform). Later items are separated
		// by non-newline space only, the same as original_source/src/parser.rs's
		// skip_space vs skip_whitespace distinction.
		if len(src.Items) > 0 && p.cur().newlineBefore {
			break
		}
		item, err := p.parseSourceItem()
		if err != nil {
			return ast.Source{}, err
		}
		src.Items = append(src.Items, item)
	}
	if len(src.Items) == 0 {
		t := p.cur()
		return ast.Source{}, vpaerr.Syntax(t.line, t.col, "expected a source item")
	}
	return src, nil
}

func (p *parser) parseSourceItem() (ast.SourceItem, error) {
	switch p.cur().kind {
	case tString:
		t := p.advance()
		return ast.SourceItem{Kind: ast.SourceRegex, Regex: t.text}, nil

	case tLBracket:
		p.advance()
		callTok, err := p.expect(tString)
		if err != nil {
			return ast.SourceItem{}, err
		}
		id, err := p.parseIdentifierPair()
		if err != nil {
			return ast.SourceItem{}, err
		}
		retTok, err := p.expect(tString)
		if err != nil {
			return ast.SourceItem{}, err
		}
		if _, err := p.expect(tRBracket); err != nil {
			return ast.SourceItem{}, err
		}
		return ast.SourceItem{
			Kind: ast.SourceNested,
			Nested: ast.Nested{
				CallSymbol:   callTok.text,
				Rule:         id,
				ReturnSymbol: retTok.text,
			},
		}, nil

	case tIdent:
		id, err := p.parseIdentifierPair()
		if err != nil {
			return ast.SourceItem{}, err
		}
		return ast.SourceItem{Kind: ast.SourceIdentifier, Ident: id}, nil

	default:
		t := p.cur()
		return ast.SourceItem{}, vpaerr.Syntax(t.line, t.col, "expected a source item, found %s", t.kind)
	}
}

func (p *parser) parseIdentifierPair() (ast.Identifier, error) {
	internal, err := p.expect(tIdent)
	if err != nil {
		return ast.Identifier{}, err
	}
	if _, err := p.expect(tEquals); err != nil {
		return ast.Identifier{}, err
	}
	external, err := p.expect(tIdent)
	if err != nil {
		return ast.Identifier{}, err
	}
	return ast.Identifier{Internal: internal.text, External: external.text}, nil
}

func (p *parser) parseTransform() (ast.Transform, error) {
	var tr ast.Transform
	for p.atTransformItemStart() {
		// Same newline-as-terminator rule as parseSource: only the first
		// transform item may follow a newline (the one after "->"). A
		// newline before any later token ends this rule's transform, even
		// though a bare string literal or identifier there would otherwise
		// look like another transform item - it is the next rule's source.
		if len(tr.Items) > 0 && p.cur().newlineBefore {
			break
		}
		switch p.cur().kind {
		case tString:
			t := p.advance()
			tr.Items = append(tr.Items, ast.TransformItem{Kind: ast.TransformLiteral, Literal: t.text})
		case tIdent:
			t := p.advance()
			tr.Items = append(tr.Items, ast.TransformItem{Kind: ast.TransformBinding, Binding: t.text})
		}
	}
	if len(tr.Items) == 0 {
		t := p.cur()
		return ast.Transform{}, vpaerr.Syntax(t.line, t.col, "expected a transform item")
	}
	return tr, nil
}
