// ==============================================================================================
// FILE: reader/reader.go
// ==============================================================================================
// PACKAGE: reader
// PURPOSE: Converts a token stream into exactly one Expression (spec.md §4.2): atoms, lists,
//          vectors, hashmaps, and the reader-macro prefix shortcuts ('`~~@@^). Parse failures
//          are returned as errors, never panics (spec.md §7: "parse errors never raise").
// ==============================================================================================

package reader

import (
	"fmt"
	"strconv"

	"github.com/amoghasbhardwaj/mal-go/lexer"
	"github.com/amoghasbhardwaj/mal-go/token"
	"github.com/amoghasbhardwaj/mal-go/types"
)

// Reader holds the state of one read: the lexer plus one token of lookahead.
type Reader struct {
	l        *lexer.Lexer
	curToken token.Token
}

// New initializes a Reader over l's token stream.
func New(l *lexer.Lexer) *Reader {
	r := &Reader{l: l}
	r.next()
	return r
}

// Read reads one MAL source string and returns exactly one Expression,
// ignoring any trailing input (spec.md §4.2). An empty/whitespace-only input
// that reaches EOF without producing a form reports a clean EOF error.
func Read(input string) (types.Expression, error) {
	r := New(lexer.New(input))
	return r.ReadForm()
}

func (r *Reader) next() {
	r.curToken = r.l.NextToken()
}

// ReadForm reads one top-level expression.
func (r *Reader) ReadForm() (types.Expression, error) {
	return r.readForm()
}

func (r *Reader) readForm() (types.Expression, error) {
	switch r.curToken.Type {
	case token.EOF:
		return nil, r.errf("unexpected end of input")
	case token.ILLEGAL:
		return nil, r.errf("%s", r.curToken.Literal)
	case token.LPAREN:
		return r.readSeq(token.RPAREN, func(items []types.Expression) types.Expression {
			return types.List{Items: items}
		})
	case token.LBRACKET:
		return r.readSeq(token.RBRACKET, func(items []types.Expression) types.Expression {
			return types.Vector{Items: items}
		})
	case token.LBRACE:
		return r.readHashMap()
	case token.RPAREN, token.RBRACKET, token.RBRACE:
		return nil, r.errf("unexpected token %q", r.curToken.Literal)
	case token.QUOTE:
		return r.readWrapped("quote")
	case token.QUASIQUOTE:
		return r.readWrapped("quasiquote")
	case token.UNQUOTE:
		return r.readWrapped("unquote")
	case token.SPLICE_UNQUOTE:
		return r.readWrapped("splice-unquote")
	case token.DEREF:
		return r.readWrapped("deref")
	case token.META:
		return r.readMeta()
	case token.NUMBER:
		return r.readNumber()
	case token.STRING:
		s := r.curToken.Literal
		r.next()
		return types.Str{Value: s}, nil
	case token.KEYWORD:
		kw := r.curToken.Literal
		r.next()
		return types.Keyword{Value: kw}, nil
	case token.SYMBOL:
		return r.readSymbolLike()
	}
	return nil, r.errf("unexpected token %q", r.curToken.Literal)
}

func (r *Reader) readNumber() (types.Expression, error) {
	lit := r.curToken.Literal
	n, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return nil, r.errf("invalid number %q", lit)
	}
	r.next()
	return types.Number{Value: n}, nil
}

func (r *Reader) readSymbolLike() (types.Expression, error) {
	lit := r.curToken.Literal
	r.next()
	switch lit {
	case "true":
		return types.True, nil
	case "false":
		return types.False, nil
	case "nil":
		return types.Nil, nil
	}
	return types.Symbol{Value: lit}, nil
}

// readWrapped expands a single-token reader macro ('`~~@@) into
// (symbolName argument), per the expansion table in spec.md §4.2.
func (r *Reader) readWrapped(symbolName string) (types.Expression, error) {
	r.next() // consume the macro character
	arg, err := r.readForm()
	if err != nil {
		return nil, err
	}
	return types.List{Items: []types.Expression{types.Symbol{Value: symbolName}, arg}}, nil
}

// readMeta expands `^m x` into `(with-meta x m)` — note the argument swap
// called out explicitly in spec.md §4.2.
func (r *Reader) readMeta() (types.Expression, error) {
	r.next() // consume '^'
	meta, err := r.readForm()
	if err != nil {
		return nil, err
	}
	x, err := r.readForm()
	if err != nil {
		return nil, err
	}
	return types.List{Items: []types.Expression{types.Symbol{Value: "with-meta"}, x, meta}}, nil
}

func (r *Reader) readSeq(closing token.Type, build func([]types.Expression) types.Expression) (types.Expression, error) {
	r.next() // consume opening delimiter
	var items []types.Expression
	for {
		if r.curToken.Type == token.EOF {
			return nil, r.errf("unexpected end of input")
		}
		if r.curToken.Type == closing {
			r.next()
			return build(items), nil
		}
		item, err := r.readForm()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
}

func (r *Reader) readHashMap() (types.Expression, error) {
	r.next() // consume '{'
	var keyVals []types.Expression
	for {
		if r.curToken.Type == token.EOF {
			return nil, r.errf("unexpected end of input")
		}
		if r.curToken.Type == token.RBRACE {
			r.next()
			break
		}
		key, err := r.readForm()
		if err != nil {
			return nil, err
		}
		if _, ok := types.KeyOf(key); !ok {
			return nil, r.errf("malformed hash-map: key must be a string or keyword")
		}
		if r.curToken.Type == token.RBRACE || r.curToken.Type == token.EOF {
			return nil, r.errf("malformed hash-map: missing value for key")
		}
		val, err := r.readForm()
		if err != nil {
			return nil, err
		}
		keyVals = append(keyVals, key, val)
	}
	m, ok := types.NewHashMap(keyVals)
	if !ok {
		return nil, r.errf("malformed hash-map: non-string/keyword key")
	}
	return m, nil
}

func (r *Reader) errf(format string, args ...any) error {
	return fmt.Errorf("%s at %d:%d", fmt.Sprintf(format, args...), r.curToken.Line, r.curToken.Column)
}
