package mdcommand

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/shopspring/decimal"

	"retailos/internal/app/domains/entity/etline"
	"retailos/internal/app/domains/modules/mdquantity"
	"retailos/internal/app/pkg/textnorm"
)

// keywords of at least this many runes tolerate one typo
const fuzzyKeywordRunes = 5

// kinds in tie-break order when two keywords start at the same token
var kindPriority = []Kind{KindRemove, KindCancel, KindConfirm, KindAdd, KindSummary}

type compiledLexicon struct {
	keywords   map[Kind][][]string
	connectors map[string]bool
	fillers    map[string]bool
	aliases    map[string]string
}

// Parser turns raw text into a Command using per-language lexicons
type Parser struct {
	english *compiledLexicon
	byLang  map[string]*compiledLexicon
}

// NewParser compiles the given lexicons; the "en" entry is the fallback
// consulted for every language
func NewParser(lexicons ...Lexicon) *Parser {
	p := &Parser{byLang: make(map[string]*compiledLexicon, len(lexicons))}
	for _, lex := range lexicons {
		p.byLang[lex.Language] = compile(lex)
	}
	p.english = p.byLang[English.Language]
	if p.english == nil {
		p.english = compile(English)
	}
	return p
}

func compile(lex Lexicon) *compiledLexicon {
	c := &compiledLexicon{
		keywords:   make(map[Kind][][]string, len(lex.Keywords)),
		connectors: make(map[string]bool),
		fillers:    make(map[string]bool),
		aliases:    make(map[string]string, len(lex.Aliases)),
	}
	for kind, phrases := range lex.Keywords {
		for _, phrase := range phrases {
			if toks := strings.Fields(fold(phrase)); len(toks) > 0 {
				c.keywords[kind] = append(c.keywords[kind], toks)
			}
		}
	}
	for _, w := range lex.Connectors {
		c.connectors[fold(w)] = true
	}
	for _, w := range lex.Fillers {
		c.fillers[fold(w)] = true
	}
	for from, to := range lex.Aliases {
		c.aliases[fold(from)] = to
	}
	return c
}

type token struct {
	raw  string
	key  string
	used bool
}

// Parse classifies rawText. language selects the lexicon used with English;
// unknown languages fall back to English alone.
func (p *Parser) Parse(language, rawText string) Command {
	tokens := tokenize(rawText)
	if len(tokens) == 0 {
		return UnknownCommand{Text: rawText}
	}

	lexes := []*compiledLexicon{p.english}
	if lex, ok := p.byLang[strings.ToLower(language)]; ok && lex != p.english {
		lexes = append([]*compiledLexicon{lex}, lexes...)
	}

	kind, start, length := detect(tokens, lexes)
	if kind != KindUnknown {
		for i := start; i < start+length; i++ {
			tokens[i].used = true
		}
	}
	segments := split(tokens, lexes)

	switch kind {
	case KindRemove:
		return RemoveCommand{Items: itemRefs(segments, lexes)}
	case KindCancel:
		// "cancel the tomatoes" names an item, so it is a removal
		if refs := itemRefs(segments, lexes); len(refs) > 0 {
			return RemoveCommand{Items: refs}
		}
		return CancelCommand{}
	case KindConfirm:
		return ConfirmCommand{}
	case KindSummary:
		return SummaryCommand{}
	case KindAdd:
		return AddCommand{Lines: requestedLines(segments, lexes, true)}
	}

	// no keyword: a list of quantities and items is an add
	if lines := requestedLines(segments, lexes, false); len(lines) > 0 {
		return AddCommand{Lines: lines}
	}
	return UnknownCommand{Text: rawText}
}

// detect finds the earliest keyword across lexicons
func detect(tokens []token, lexes []*compiledLexicon) (Kind, int, int) {
	bestKind, bestStart, bestLen := KindUnknown, len(tokens), 0
	for _, kind := range kindPriority {
		for _, lex := range lexes {
			for _, kw := range lex.keywords[kind] {
				start := find(tokens, kw)
				if start < 0 {
					continue
				}
				// earlier wins; at the same start the longer phrase wins
				if start < bestStart || (start == bestStart && len(kw) > bestLen) {
					bestKind, bestStart, bestLen = kind, start, len(kw)
				}
			}
		}
	}
	return bestKind, bestStart, bestLen
}

func find(tokens []token, kw []string) int {
outer:
	for i := 0; i+len(kw) <= len(tokens); i++ {
		for j, want := range kw {
			if !keywordMatches(want, tokens[i+j].key) {
				continue outer
			}
		}
		return i
	}
	return -1
}

func keywordMatches(keyword, tok string) bool {
	if keyword == tok {
		return true
	}
	if utf8.RuneCountInString(keyword) < fuzzyKeywordRunes || tok == "" {
		return false
	}
	return levenshtein.ComputeDistance(keyword, tok) <= 1
}

// split groups unused tokens into item segments at commas and connectors,
// dropping filler words
func split(tokens []token, lexes []*compiledLexicon) [][]token {
	var segments [][]token
	var cur []token
	flush := func() {
		if len(cur) > 0 {
			segments = append(segments, cur)
			cur = nil
		}
	}
	for _, t := range tokens {
		switch {
		case t.used:
			flush()
		case t.raw == ",":
			flush()
		case isWord(lexes, t.key, func(l *compiledLexicon) map[string]bool { return l.connectors }):
			flush()
		case isWord(lexes, t.key, func(l *compiledLexicon) map[string]bool { return l.fillers }):
		default:
			cur = append(cur, t)
		}
	}
	flush()
	return segments
}

func isWord(lexes []*compiledLexicon, key string, set func(*compiledLexicon) map[string]bool) bool {
	for _, lex := range lexes {
		if set(lex)[key] {
			return true
		}
	}
	return false
}

// itemRefs one reference per segment; a quantity in the segment, as in
// "remove 3kg rice", is dropped from the phrase
func itemRefs(segments [][]token, lexes []*compiledLexicon) []ItemRef {
	var refs []ItemRef
	for _, seg := range segments {
		raw := joinRaw(seg)
		if parsed, ok := mdquantity.ParsePhrase(raw); ok && strings.TrimSpace(parsed.Rest) != "" {
			raw = parsed.Rest
		}
		phrase := textnorm.Key(raw)
		if phrase == "" {
			continue
		}
		refs = append(refs, ItemRef{Phrase: phrase, Alias: alias(phrase, lexes)})
	}
	return refs
}

// requestedLines reads one line per segment. With implicitQty a segment
// without a quantity means one unit; otherwise such segments are skipped.
func requestedLines(segments [][]token, lexes []*compiledLexicon, implicitQty bool) []etline.RequestedLine {
	var lines []etline.RequestedLine
	for _, seg := range segments {
		parsed, ok := mdquantity.ParsePhrase(joinRaw(seg))
		if !ok && !implicitQty {
			continue
		}
		name := textnorm.Key(parsed.Rest)
		if name == "" {
			continue
		}
		qty := parsed.Quantity
		if !ok {
			qty = decimal.NewFromInt(1)
		}
		if a := alias(name, lexes); a != "" {
			name = a
		}
		lines = append(lines, etline.RequestedLine{RawText: name, Quantity: qty, UnitHint: parsed.Unit})
	}
	return lines
}

// alias translates a whole phrase, or failing that each word of it
func alias(phrase string, lexes []*compiledLexicon) string {
	for _, lex := range lexes {
		if to, ok := lex.aliases[phrase]; ok {
			return to
		}
	}
	words := strings.Fields(phrase)
	changed := false
	for i, w := range words {
		for _, lex := range lexes {
			if to, ok := lex.aliases[w]; ok {
				words[i] = to
				changed = true
				break
			}
		}
	}
	if !changed {
		return ""
	}
	return strings.Join(words, " ")
}

func joinRaw(seg []token) string {
	parts := make([]string, 0, len(seg))
	for _, t := range seg {
		parts = append(parts, t.raw)
	}
	return strings.Join(parts, " ")
}

var apostrophes = strings.NewReplacer("'", "", "\u2019", "")

// fold keys a word so "don't" and "dont" compare equal
func fold(s string) string {
	return textnorm.Key(apostrophes.Replace(s))
}

func tokenize(text string) []token {
	text = strings.NewReplacer(",", " , ", ";", " , ", "\n", " , ", "&", " , ").Replace(strings.ToLower(text))
	var out []token
	for _, f := range strings.Fields(text) {
		if f == "," {
			out = append(out, token{raw: f})
			continue
		}
		key := fold(f)
		if key == "" {
			continue
		}
		out = append(out, token{raw: f, key: key})
	}
	return out
}
