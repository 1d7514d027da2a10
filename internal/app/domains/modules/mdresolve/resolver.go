package mdresolve

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"retailos/internal/app/domains/entity/etcatalog"
	"retailos/internal/app/domains/entity/etline"
	"retailos/internal/app/pkg/textnorm"
)

// Outcome how a phrase resolved against a snapshot
type Outcome string

const (
	Matched    Outcome = "matched"
	Ambiguous  Outcome = "ambiguous"
	Unresolved Outcome = "unresolved"
)

// scores closer than this are a tie
const tieEpsilon = 1e-9

// Result resolution of one phrase. Item is set only when Outcome is Matched.
type Result struct {
	Outcome    Outcome
	Item       *etcatalog.Item
	Score      float64
	Candidates []etline.Candidate
}

// Resolver maps item mentions onto catalog entries. It holds no state besides
// its thresholds, so resolving the same phrase against the same snapshot
// always gives the same result.
type Resolver struct {
	threshold      float64
	suggestFloor   float64
	maxSuggestions int
}

// NewResolver threshold is the minimum score for auto-selection; candidates
// between suggestFloor and threshold are only offered as suggestions.
func NewResolver(threshold, suggestFloor float64, maxSuggestions int) *Resolver {
	if suggestFloor > threshold {
		suggestFloor = threshold
	}
	return &Resolver{
		threshold:      threshold,
		suggestFloor:   suggestFloor,
		maxSuggestions: maxSuggestions,
	}
}

// Resolve picks the single best catalog item for phrase, or reports why it could not
func (r *Resolver) Resolve(phrase string, snap *etcatalog.Snapshot) Result {
	if item, ok := snap.Lookup(phrase); ok {
		return Result{
			Outcome:    Matched,
			Item:       item,
			Score:      1,
			Candidates: []etline.Candidate{{CanonicalName: item.CanonicalName, Score: 1}},
		}
	}

	ranked := r.rank(phrase, snap)
	if len(ranked) == 0 {
		return Result{Outcome: Unresolved}
	}

	top := ranked[0]
	candidates := r.toCandidates(ranked)
	if top.score < r.threshold {
		return Result{Outcome: Unresolved, Score: top.score, Candidates: candidates}
	}
	if len(ranked) > 1 && math.Abs(ranked[1].score-top.score) < tieEpsilon {
		return Result{Outcome: Ambiguous, Score: top.score, Candidates: candidates}
	}
	return Result{Outcome: Matched, Item: top.item, Score: top.score, Candidates: candidates}
}

// ResolveAmong picks the single name in names that phrase matches with at
// least the auto-select threshold. Used to find a line in a short list, such
// as a cart, rather than a whole catalog.
func (r *Resolver) ResolveAmong(phrase string, names []string) (string, bool) {
	query := textnorm.StemmedTokens(phrase)
	if len(query) == 0 {
		return "", false
	}
	best, bestScore, tied := "", 0.0, false
	for _, name := range names {
		s := Similarity(query, textnorm.StemmedTokens(name))
		switch {
		case s > bestScore+tieEpsilon:
			best, bestScore, tied = name, s, false
		case math.Abs(s-bestScore) < tieEpsilon && textnorm.Key(name) != textnorm.Key(best):
			tied = true
		}
	}
	if best == "" || bestScore < r.threshold || tied {
		return "", false
	}
	return best, true
}

type scored struct {
	item  *etcatalog.Item
	score float64
}

func (r *Resolver) rank(phrase string, snap *etcatalog.Snapshot) []scored {
	query := textnorm.StemmedTokens(phrase)
	if len(query) == 0 {
		return nil
	}

	var out []scored
	for _, item := range snap.Items() {
		s := Similarity(query, textnorm.StemmedTokens(item.CanonicalName))
		if s >= r.suggestFloor {
			out = append(out, scored{item: item, score: s})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].score != out[j].score {
			return out[i].score > out[j].score
		}
		return out[i].item.Key < out[j].item.Key
	})
	return out
}

func (r *Resolver) toCandidates(ranked []scored) []etline.Candidate {
	n := len(ranked)
	if r.maxSuggestions > 0 && n > r.maxSuggestions {
		n = r.maxSuggestions
	}
	out := make([]etline.Candidate, 0, n)
	for _, s := range ranked[:n] {
		out = append(out, etline.Candidate{CanonicalName: s.item.CanonicalName, Score: s.score})
	}
	return out
}

// Similarity in [0, 1] between two stemmed token lists: the better of token
// overlap (Dice coefficient) and normalised edit distance of the joined text.
func Similarity(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	joinedA, joinedB := strings.Join(a, " "), strings.Join(b, " ")
	if joinedA == joinedB {
		return 1
	}
	return math.Max(dice(a, b), editSimilarity(joinedA, joinedB))
}

func dice(a, b []string) float64 {
	set := make(map[string]int, len(a))
	for _, t := range a {
		set[t]++
	}
	shared := 0
	for _, t := range b {
		if set[t] > 0 {
			set[t]--
			shared++
		}
	}
	return 2 * float64(shared) / float64(len(a)+len(b))
}

func editSimilarity(a, b string) float64 {
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return 0
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}
