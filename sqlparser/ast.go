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

// Node is implemented by every AST type. Each node keeps a parent
// back-pointer and its own token span. The parent pointer forms a
// reference cycle with its children, which Go's garbage collector handles
// natively; no arena or weak-index indirection is needed to break it.
type Node interface {
	ParentNode() Node
	NodeTokens() TokenList
}

// Select is a (possibly compound) SELECT statement: one or more Cores
// joined by set operators, with an optional WITH clause.
type Select struct {
	parent Node
	With   *With
	Cores  []*Core
	Tokens TokenList
}

func (s *Select) ParentNode() Node      { return s.parent }
func (s *Select) NodeTokens() TokenList { return s.Tokens }

// Detokenize renders the whole statement back to source text.
func (s *Select) Detokenize() string { return s.Tokens.Detokenize() }

// With is a WITH clause: an ordered list of common table expressions.
type With struct {
	parent Node
	CTEs   []*CTE
	Tokens TokenList
}

func (w *With) ParentNode() Node      { return w.parent }
func (w *With) NodeTokens() TokenList { return w.Tokens }

// CTE is one entry of a WITH clause.
type CTE struct {
	parent Node
	Name   string
	Select *Select
	// Tokens holds "name [(cols)] AS (select...)" — the full declaration
	// text, used to rebuild a "WITH <cte-text> SELECT * FROM <name>" probe
	// query when a CTE's columns need to be discovered.
	Tokens TokenList
}

func (c *CTE) ParentNode() Node      { return c.parent }
func (c *CTE) NodeTokens() TokenList { return c.Tokens }
func (c *CTE) Detokenize() string    { return c.Tokens.Detokenize() }

// Core is a single SELECT arm: one "SELECT ... FROM ... WHERE ..." unit,
// possibly one of several joined by a compound set operator.
type Core struct {
	parent        Node
	ResultColumns []*ResultColumn
	From          *JoinSource // nil when the core has no FROM
	Distinct      bool
	GroupBy       []*Expr
	Tokens        TokenList
}

func (c *Core) ParentNode() Node      { return c.parent }
func (c *Core) NodeTokens() TokenList { return c.Tokens }

// ParentStatement returns the enclosing Select, or nil if this Core was
// built standalone.
func (c *Core) ParentStatement() *Select {
	if sel, ok := c.parent.(*Select); ok {
		return sel
	}
	return nil
}

// JoinSource is a FROM clause's join product: one primary source plus
// zero or more joined sources.
type JoinSource struct {
	parent       Node
	Single       *SingleSource
	OtherSources []*JoinSourceOther
	Tokens       TokenList
}

func (j *JoinSource) ParentNode() Node      { return j.parent }
func (j *JoinSource) NodeTokens() TokenList { return j.Tokens }

// JoinSourceOther is one joined-in source after the first; its resolved
// columns are concatenated onto the primary source's.
type JoinSourceOther struct {
	parent Node
	Single *SingleSource
	Tokens TokenList
}

func (j *JoinSourceOther) ParentNode() Node      { return j.parent }
func (j *JoinSourceOther) NodeTokens() TokenList { return j.Tokens }

// SingleSourceKind distinguishes how a FROM-list entry resolves its
// columns, modeled as a tagged union rather than a class hierarchy.
type SingleSourceKind int

const (
	SourceTable SingleSourceKind = iota
	SourceSubSelect
	SourceJoin
	SourceTableFunction
)

// SingleSource is one FROM-list entry before dispatch.
type SingleSource struct {
	parent Node

	Kind SingleSourceKind

	// SourceTable fields.
	Database string
	Table    string

	// SourceSubSelect fields.
	Select *Select

	// SourceJoin fields: a parenthesized nested join.
	Join *JoinSource

	// SourceTableFunction fields.
	FuncName string

	Alias  string
	Tokens TokenList
}

func (s *SingleSource) ParentNode() Node      { return s.parent }
func (s *SingleSource) NodeTokens() TokenList { return s.Tokens }
func (s *SingleSource) Detokenize() string    { return s.Tokens.Detokenize() }

// ResultColumn is one entry of a core's result-column list.
type ResultColumn struct {
	parent Node
	Star   bool
	// Table is the star's table/alias prefix ("t" in "t.*"); empty for a
	// bare "*" or for a non-star result column.
	Table  string
	Expr   *Expr
	Alias  string
	Tokens TokenList
}

func (r *ResultColumn) ParentNode() Node      { return r.parent }
func (r *ResultColumn) NodeTokens() TokenList { return r.Tokens }
func (r *ResultColumn) Detokenize() string    { return r.Tokens.Detokenize() }

// ExprMode distinguishes a simple column reference from any other
// expression.
type ExprMode int

const (
	ExprID ExprMode = iota
	ExprOther
)

// Expr is a result-column's expression. In ExprID mode it is a simple
// (possibly qualified) column reference; otherwise it is an opaque
// expression whose text is obtained via Tokens.Detokenize().
type Expr struct {
	parent   Node
	Mode     ExprMode
	Database string
	Table    string
	Column   string
	Tokens   TokenList
}

func (e *Expr) ParentNode() Node      { return e.parent }
func (e *Expr) NodeTokens() TokenList { return e.Tokens }
func (e *Expr) Detokenize() string    { return e.Tokens.Detokenize() }

// CreateView is a parsed CREATE VIEW statement.
type CreateView struct {
	parent   Node
	Database string
	Name     string
	Select   *Select
	Tokens   TokenList
}

func (c *CreateView) ParentNode() Node      { return c.parent }
func (c *CreateView) NodeTokens() TokenList { return c.Tokens }

// FindNodeWithToken walks root's subtree looking for the most specific
// node whose own token span contains tok (by identity, not value), then
// returns it. This backs the token translator, which needs to find the
// innermost statement containing a token before climbing back out to the
// nearest Core.
func FindNodeWithToken(root Node, tok *Token) Node {
	var best Node
	walk(root, func(n Node) {
		if containsToken(n.NodeTokens(), tok) {
			best = n
		}
	})
	return best
}

func containsToken(tl TokenList, tok *Token) bool {
	for _, t := range tl {
		if t == tok {
			return true
		}
	}
	return false
}

// walk visits every node in the subtree rooted at n, parents before
// children, so the last node visited for which visit records a match is
// the most deeply nested one containing the token.
func walk(n Node, visit func(Node)) {
	if n == nil {
		return
	}
	visit(n)
	switch node := n.(type) {
	case *Select:
		if node.With != nil {
			walk(node.With, visit)
		}
		for _, c := range node.Cores {
			walk(c, visit)
		}
	case *With:
		for _, cte := range node.CTEs {
			walk(cte, visit)
		}
	case *CTE:
		walk(node.Select, visit)
	case *Core:
		walk(node.From, visit)
		for _, rc := range node.ResultColumns {
			walk(rc, visit)
		}
	case *JoinSource:
		walk(node.Single, visit)
		for _, o := range node.OtherSources {
			walk(o, visit)
		}
	case *JoinSourceOther:
		walk(node.Single, visit)
	case *SingleSource:
		switch node.Kind {
		case SourceSubSelect:
			walk(node.Select, visit)
		case SourceJoin:
			walk(node.Join, visit)
		}
	case *ResultColumn:
		if node.Expr != nil {
			walk(node.Expr, visit)
		}
	case *CreateView:
		walk(node.Select, visit)
	}
}

// NearestCore climbs parent links from n until it reaches a *Core,
// returning nil if none is found.
func NearestCore(n Node) *Core {
	for n != nil {
		if core, ok := n.(*Core); ok {
			return core
		}
		n = n.ParentNode()
	}
	return nil
}
