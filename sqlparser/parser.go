/*
Copyright 2026 The SelectResolver Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package sqlparser

import (
	"fmt"
	"strings"
)

// parser is a hand-rolled recursive-descent parser over a flat token
// slice. It models only the SELECT grammar the resolver actually
// inspects; clauses it never looks at (WHERE, HAVING, ORDER BY, LIMIT,
// join predicates) are skipped as balanced token runs rather than parsed
// into a full expression tree.
type parser struct {
	tokens TokenList
	pos    int
}

// Parse parses sql as a SELECT statement. A trailing semicolon is
// tolerated and discarded.
func Parse(sql string) (*Select, error) {
	p := &parser{tokens: Tokenize(sql)}
	sel, err := p.parseSelect(nil)
	if err != nil {
		return nil, err
	}
	for p.atOp(";") {
		p.advance()
	}
	if p.pos != len(p.tokens) {
		return nil, fmt.Errorf("unexpected token %q at position %d", p.cur().Value, p.pos)
	}
	return sel, nil
}

func (p *parser) cur() *Token {
	if p.pos >= len(p.tokens) {
		return &Token{Type: EOF}
	}
	return p.tokens[p.pos]
}

func (p *parser) at(t Type) bool { return p.cur().Type == t }

func (p *parser) atKeyword(kw string) bool {
	c := p.cur()
	return c.Type == KEYWORD && strings.EqualFold(c.Value, kw)
}

func (p *parser) atAnyKeyword(kws ...string) bool {
	for _, kw := range kws {
		if p.atKeyword(kw) {
			return true
		}
	}
	return false
}

func (p *parser) atOp(op string) bool {
	c := p.cur()
	return c.Type == OP && c.Value == op
}

func (p *parser) advance() *Token {
	t := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *parser) expect(t Type) (*Token, error) {
	if !p.at(t) {
		return nil, fmt.Errorf("expected token type %v, got %q at position %d", t, p.cur().Value, p.pos)
	}
	return p.advance(), nil
}

func (p *parser) expectKeyword(kw string) error {
	if !p.atKeyword(kw) {
		return fmt.Errorf("expected keyword %s, got %q at position %d", kw, p.cur().Value, p.pos)
	}
	p.advance()
	return nil
}

// setOperators are the compound set operators separating cores.
var setOperators = []string{"UNION", "INTERSECT", "EXCEPT"}

// clauseBoundaryKeywords start clauses the parser skips rather than
// models in full; they also terminate generic expression scanning.
var clauseBoundaryKeywords = []string{
	"FROM", "WHERE", "GROUP", "HAVING", "ORDER", "LIMIT", "UNION", "INTERSECT",
	"EXCEPT", "JOIN", "LEFT", "RIGHT", "INNER", "OUTER", "CROSS", "NATURAL",
	"ON", "USING", "AS",
}

// parseSelect parses a (possibly compound) SELECT statement, stopping at
// EOF or a top-level PAR_RIGHT (the closing paren of an enclosing
// sub-select). parent is the Node this Select is nested under, or nil for
// the top-level query.
func (p *parser) parseSelect(parent Node) (*Select, error) {
	start := p.pos
	sel := &Select{parent: parent}

	if p.atKeyword("WITH") {
		with, err := p.parseWith(sel)
		if err != nil {
			return nil, err
		}
		sel.With = with
	}

	for {
		core, err := p.parseCore(sel)
		if err != nil {
			return nil, err
		}
		sel.Cores = append(sel.Cores, core)

		if !p.atAnyKeyword(setOperators...) {
			break
		}
		p.advance() // consume UNION/INTERSECT/EXCEPT
		if p.atKeyword("ALL") {
			p.advance()
		}
	}

	// Trailing ORDER BY / LIMIT at the statement level apply to the whole
	// compound and carry no column-origin information; skip them.
	for p.atAnyKeyword("ORDER", "LIMIT") {
		p.skipClause("ORDER", "LIMIT")
	}

	sel.Tokens = p.tokens[start:p.pos]
	return sel, nil
}

func (p *parser) parseWith(parent Node) (*With, error) {
	start := p.pos
	if err := p.expectKeyword("WITH"); err != nil {
		return nil, err
	}
	if p.atKeyword("RECURSIVE") {
		p.advance()
	}
	with := &With{parent: parent}
	for {
		cte, err := p.parseCTE(with)
		if err != nil {
			return nil, err
		}
		with.CTEs = append(with.CTEs, cte)
		if !p.at(COMMA) {
			break
		}
		p.advance()
	}
	with.Tokens = p.tokens[start:p.pos]
	return with, nil
}

func (p *parser) parseCTE(parent Node) (*CTE, error) {
	start := p.pos
	nameTok, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	cte := &CTE{parent: parent, Name: nameTok.Value}

	if p.at(PAR_LEFT) {
		if err := p.skipBalancedParens(); err != nil {
			return nil, err
		}
	}

	if err := p.expectKeyword("AS"); err != nil {
		return nil, err
	}
	if _, err := p.expect(PAR_LEFT); err != nil {
		return nil, err
	}
	inner, err := p.parseSelect(cte)
	if err != nil {
		return nil, err
	}
	cte.Select = inner
	if _, err := p.expect(PAR_RIGHT); err != nil {
		return nil, err
	}

	cte.Tokens = p.tokens[start:p.pos]
	return cte, nil
}

func (p *parser) parseCore(parent *Select) (*Core, error) {
	start := p.pos
	if err := p.expectKeyword("SELECT"); err != nil {
		return nil, err
	}
	core := &Core{parent: parent}

	if p.atKeyword("DISTINCT") {
		core.Distinct = true
		p.advance()
	} else if p.atKeyword("ALL") {
		p.advance()
	}

	for {
		rc, err := p.parseResultColumn(core)
		if err != nil {
			return nil, err
		}
		core.ResultColumns = append(core.ResultColumns, rc)
		if !p.at(COMMA) {
			break
		}
		p.advance()
	}

	if p.atKeyword("FROM") {
		p.advance()
		from, err := p.parseJoinSource(core)
		if err != nil {
			return nil, err
		}
		core.From = from
	}

	p.skipClause("WHERE")

	if p.atKeyword("GROUP") {
		p.advance()
		if err := p.expectKeyword("BY"); err != nil {
			return nil, err
		}
		groupBy, err := p.parseExprList(core, "HAVING", "ORDER", "LIMIT", "UNION", "INTERSECT", "EXCEPT")
		if err != nil {
			return nil, err
		}
		core.GroupBy = groupBy
	}

	p.skipClause("HAVING")

	core.Tokens = p.tokens[start:p.pos]
	return core, nil
}

// parseResultColumn dispatches on a result column's leading tokens: star,
// qualified star, or an expression with an optional alias.
func (p *parser) parseResultColumn(parent *Core) (*ResultColumn, error) {
	start := p.pos

	if p.at(STAR) {
		p.advance()
		rc := &ResultColumn{parent: parent, Star: true}
		rc.Tokens = p.tokens[start:p.pos]
		return rc, nil
	}

	if p.at(IDENT) && p.peekAt(1).Type == DOT && p.peekAt(2).Type == STAR {
		table := p.advance().Value
		p.advance() // DOT
		p.advance() // STAR
		rc := &ResultColumn{parent: parent, Star: true, Table: table}
		rc.Tokens = p.tokens[start:p.pos]
		return rc, nil
	}

	expr, err := p.parseResultExpr(nil)
	if err != nil {
		return nil, err
	}

	alias := p.parseOptionalAlias()

	rc := &ResultColumn{Expr: expr, Alias: alias}
	rc.parent = parent
	expr.parent = rc
	rc.Tokens = p.tokens[start:p.pos]
	return rc, nil
}

// peekAt returns the token offset tokens ahead of the cursor (0 = current).
func (p *parser) peekAt(offset int) *Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return &Token{Type: EOF}
	}
	return p.tokens[idx]
}

// parseResultExpr parses one result-column expression: either a simple
// (possibly qualified) column reference, recognized as ExprID, or any
// other token run up to (but not including) an alias or clause boundary,
// recognized as ExprOther.
func (p *parser) parseResultExpr(parent Node) (*Expr, error) {
	start := p.pos

	if db, tbl, col, end, ok := p.tryParseIdentChain(); ok {
		next := p.peekAtAbs(end)
		if isExprTerminator(next) {
			p.pos = end
			e := &Expr{parent: parent, Mode: ExprID, Database: db, Table: tbl, Column: col}
			e.Tokens = p.tokens[start:end]
			return e, nil
		}
	}

	// General expression: scan a balanced token run until a top-level
	// comma, clause boundary keyword, closing paren, or EOF.
	depth := 0
	for {
		c := p.cur()
		if c.Type == EOF {
			break
		}
		if depth == 0 && (c.Type == COMMA || c.Type == PAR_RIGHT || p.atAnyKeyword(clauseBoundaryKeywords...)) {
			break
		}
		switch c.Type {
		case PAR_LEFT:
			depth++
		case PAR_RIGHT:
			depth--
		}
		p.advance()
	}
	if p.pos == start {
		return nil, fmt.Errorf("empty expression at position %d", start)
	}
	e := &Expr{parent: parent, Mode: ExprOther}
	e.Tokens = p.tokens[start:p.pos]
	return e, nil
}

// tryParseIdentChain attempts to parse up to three dot-separated
// identifiers starting at the current position, without committing the
// parser's position. It returns the absolute end index on success.
func (p *parser) tryParseIdentChain() (database, table, column string, end int, ok bool) {
	idx := p.pos
	if p.peekAtAbs(idx).Type != IDENT {
		return "", "", "", 0, false
	}
	first := p.peekAtAbs(idx).Value
	idx++

	parts := []string{first}
	for len(parts) < 3 && p.peekAtAbs(idx).Type == DOT && p.peekAtAbs(idx+1).Type == IDENT {
		parts = append(parts, p.peekAtAbs(idx+1).Value)
		idx += 2
	}
	// A following '(' means this identifier is actually a function call,
	// which this module does not model as a simple column (ExprOther).
	if p.peekAtAbs(idx).Type == PAR_LEFT {
		return "", "", "", 0, false
	}

	switch len(parts) {
	case 1:
		return "", "", parts[0], idx, true
	case 2:
		return "", parts[0], parts[1], idx, true
	default:
		return parts[0], parts[1], parts[2], idx, true
	}
}

func (p *parser) peekAtAbs(idx int) *Token {
	if idx >= len(p.tokens) {
		return &Token{Type: EOF}
	}
	return p.tokens[idx]
}

// isExprTerminator reports whether tok can legally follow a bare column
// reference used as a result-column expression: a comma, an alias
// (AS-keyword or bare identifier), a clause boundary, or the end of input.
func isExprTerminator(tok *Token) bool {
	switch tok.Type {
	case EOF, COMMA, PAR_RIGHT, IDENT:
		return true
	case KEYWORD:
		return true
	}
	return false
}

func (p *parser) parseOptionalAlias() string {
	if p.atKeyword("AS") {
		p.advance()
		if p.at(IDENT) {
			return p.advance().Value
		}
		return ""
	}
	if p.at(IDENT) {
		return p.advance().Value
	}
	return ""
}

// parseExprList parses a comma-separated list of expressions, stopping at
// a top-level occurrence of any of stopKeywords, at EOF, or at a
// top-level closing paren.
func (p *parser) parseExprList(parent Node, stopKeywords ...string) ([]*Expr, error) {
	var out []*Expr
	for {
		if p.at(EOF) || p.at(PAR_RIGHT) || p.atAnyKeyword(stopKeywords...) {
			break
		}
		start := p.pos
		depth := 0
		for {
			c := p.cur()
			if c.Type == EOF {
				break
			}
			if depth == 0 && (c.Type == COMMA || c.Type == PAR_RIGHT || p.atAnyKeyword(stopKeywords...)) {
				break
			}
			switch c.Type {
			case PAR_LEFT:
				depth++
			case PAR_RIGHT:
				depth--
			}
			p.advance()
		}
		if p.pos == start {
			return nil, fmt.Errorf("empty expression in list at position %d", start)
		}
		e := &Expr{parent: parent, Mode: ExprOther}
		e.Tokens = p.tokens[start:p.pos]
		out = append(out, e)
		if !p.at(COMMA) {
			break
		}
		p.advance()
	}
	return out, nil
}

// skipClause skips a single clause introduced by any of kws, consuming a
// balanced token run until the next top-level clause boundary, set
// operator, closing paren, or EOF. A no-op if none of kws is current.
func (p *parser) skipClause(kws ...string) {
	if !p.atAnyKeyword(kws...) {
		return
	}
	p.advance()
	depth := 0
	for {
		c := p.cur()
		if c.Type == EOF {
			return
		}
		if depth == 0 {
			if c.Type == PAR_RIGHT {
				return
			}
			if p.atAnyKeyword("WHERE", "GROUP", "HAVING", "ORDER", "LIMIT", "UNION", "INTERSECT", "EXCEPT") {
				return
			}
		}
		switch c.Type {
		case PAR_LEFT:
			depth++
		case PAR_RIGHT:
			depth--
		}
		p.advance()
	}
}

func (p *parser) skipBalancedParens() error {
	if _, err := p.expect(PAR_LEFT); err != nil {
		return err
	}
	depth := 1
	for depth > 0 {
		c := p.cur()
		if c.Type == EOF {
			return fmt.Errorf("unbalanced parentheses")
		}
		switch c.Type {
		case PAR_LEFT:
			depth++
		case PAR_RIGHT:
			depth--
		}
		p.advance()
	}
	return nil
}

// parseJoinSource parses a FROM clause's join product.
func (p *parser) parseJoinSource(parent Node) (*JoinSource, error) {
	start := p.pos
	js := &JoinSource{parent: parent}
	single, err := p.parseSingleSource(js)
	if err != nil {
		return nil, err
	}
	js.Single = single

	for {
		if p.at(COMMA) {
			p.advance()
			other := &JoinSourceOther{parent: js}
			otherStart := p.pos
			single, err := p.parseSingleSource(other)
			if err != nil {
				return nil, err
			}
			other.Single = single
			other.Tokens = p.tokens[otherStart:p.pos]
			js.OtherSources = append(js.OtherSources, other)
			continue
		}

		if p.atJoinKeyword() {
			other := &JoinSourceOther{parent: js}
			otherStart := p.pos
			p.consumeJoinKeywords()
			single, err := p.parseSingleSource(other)
			if err != nil {
				return nil, err
			}
			other.Single = single
			if p.atKeyword("ON") {
				p.advance()
				p.skipBalancedExprUntil("JOIN", "LEFT", "RIGHT", "INNER", "OUTER", "CROSS", "NATURAL", "WHERE", "GROUP", "HAVING", "ORDER", "LIMIT", "UNION", "INTERSECT", "EXCEPT")
			} else if p.atKeyword("USING") {
				p.advance()
				if err := p.skipBalancedParens(); err != nil {
					return nil, err
				}
			}
			other.Tokens = p.tokens[otherStart:p.pos]
			js.OtherSources = append(js.OtherSources, other)
			continue
		}

		break
	}

	js.Tokens = p.tokens[start:p.pos]
	return js, nil
}

var joinLeadKeywords = []string{"JOIN", "LEFT", "RIGHT", "INNER", "OUTER", "CROSS", "NATURAL"}

func (p *parser) atJoinKeyword() bool {
	return p.atAnyKeyword(joinLeadKeywords...)
}

func (p *parser) consumeJoinKeywords() {
	for p.atAnyKeyword(joinLeadKeywords...) {
		p.advance()
	}
}

func (p *parser) skipBalancedExprUntil(stopKeywords ...string) {
	depth := 0
	for {
		c := p.cur()
		if c.Type == EOF {
			return
		}
		if depth == 0 && (c.Type == COMMA || c.Type == PAR_RIGHT || p.atAnyKeyword(stopKeywords...)) {
			return
		}
		switch c.Type {
		case PAR_LEFT:
			depth++
		case PAR_RIGHT:
			depth--
		}
		p.advance()
	}
}

// parseSingleSource parses one FROM-list entry, dispatching on the tagged
// SingleSourceKind.
func (p *parser) parseSingleSource(parent Node) (*SingleSource, error) {
	start := p.pos

	if p.at(PAR_LEFT) {
		p.advance()
		ss := &SingleSource{parent: parent}
		if p.atKeyword("SELECT") || p.atKeyword("WITH") {
			inner, err := p.parseSelect(ss)
			if err != nil {
				return nil, err
			}
			ss.Kind = SourceSubSelect
			ss.Select = inner
		} else {
			inner, err := p.parseJoinSource(ss)
			if err != nil {
				return nil, err
			}
			ss.Kind = SourceJoin
			ss.Join = inner
		}
		if _, err := p.expect(PAR_RIGHT); err != nil {
			return nil, err
		}
		ss.Alias = p.parseOptionalAlias()
		ss.Tokens = p.tokens[start:p.pos]
		return ss, nil
	}

	nameTok, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	database := ""
	table := nameTok.Value
	if p.at(DOT) {
		p.advance()
		second, err := p.expect(IDENT)
		if err != nil {
			return nil, err
		}
		database = table
		table = second.Value
	}

	ss := &SingleSource{parent: parent, Database: database, Table: table}

	if p.at(PAR_LEFT) {
		if err := p.skipBalancedParens(); err != nil {
			return nil, err
		}
		ss.Kind = SourceTableFunction
		ss.FuncName = table
		ss.Tokens = p.tokens[start:p.pos]
		ss.Alias = p.parseOptionalAlias()
		return ss, nil
	}

	ss.Kind = SourceTable
	ss.Tokens = p.tokens[start:p.pos]
	ss.Alias = p.parseOptionalAlias()
	return ss, nil
}

// ParseCreateView parses a "CREATE VIEW [db.]name AS select" statement.
func ParseCreateView(sql string) (*CreateView, error) {
	p := &parser{tokens: Tokenize(sql)}
	if err := p.expectKeyword("CREATE"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("VIEW"); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	database := ""
	name := nameTok.Value
	if p.at(DOT) {
		p.advance()
		second, err := p.expect(IDENT)
		if err != nil {
			return nil, err
		}
		database = name
		name = second.Value
	}
	if p.at(PAR_LEFT) {
		if err := p.skipBalancedParens(); err != nil {
			return nil, err
		}
	}
	if err := p.expectKeyword("AS"); err != nil {
		return nil, err
	}
	cv := &CreateView{Database: database, Name: name}
	inner, err := p.parseSelect(cv)
	if err != nil {
		return nil, err
	}
	cv.Select = inner
	cv.Tokens = p.tokens
	return cv, nil
}
