package mdavailability

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"retailos/internal/app/domains/entity/etcatalog"
	"retailos/internal/app/domains/entity/etline"
	"retailos/internal/app/domains/modules/mdquantity"
	"retailos/internal/app/domains/modules/mdresolve"
)

// Evaluation requested lines split into those that resolved to a catalog
// item in its unit and those rejected before classification
type Evaluation struct {
	Resolved []etline.ResolvedLine
	Rejected []etline.UnavailableLine
}

// Evaluator runs resolution and unit normalisation for one turn's lines
type Evaluator struct {
	resolver    *mdresolve.Resolver
	normalizer  *mdquantity.Normalizer
	partitioner *Partitioner
}

// NewEvaluator creates an Evaluator
func NewEvaluator(resolver *mdresolve.Resolver, normalizer *mdquantity.Normalizer, partitioner *Partitioner) *Evaluator {
	return &Evaluator{
		resolver:    resolver,
		normalizer:  normalizer,
		partitioner: partitioner,
	}
}

// Partitioner the classifier used by Evaluate
func (e *Evaluator) Partitioner() *Partitioner {
	return e.partitioner
}

// ResolveLines resolves each requested line on its own; a bad line never
// stops the others
func (e *Evaluator) ResolveLines(reqs []etline.RequestedLine, snap *etcatalog.Snapshot) Evaluation {
	var out Evaluation
	for _, req := range reqs {
		line, rejected := e.resolveOne(req, snap)
		if rejected != nil {
			out.Rejected = append(out.Rejected, *rejected)
			continue
		}
		out.Resolved = append(out.Resolved, line)
	}
	return out
}

// Evaluate resolves and classifies reqs; rejected lines join the unavailable set
func (e *Evaluator) Evaluate(reqs []etline.RequestedLine, snap *etcatalog.Snapshot) etline.Partition {
	ev := e.ResolveLines(reqs, snap)
	p := e.partitioner.Partition(ev.Resolved, snap)
	p.Unavailable = append(p.Unavailable, ev.Rejected...)
	return p
}

func (e *Evaluator) resolveOne(req etline.RequestedLine, snap *etcatalog.Snapshot) (etline.ResolvedLine, *etline.UnavailableLine) {
	name := strings.TrimSpace(req.RawText)
	reject := func(reason etline.Reason, detail string, alternatives []string) *etline.UnavailableLine {
		return &etline.UnavailableLine{
			RequestedName: name,
			Quantity:      req.Quantity,
			Unit:          req.UnitHint,
			AvailableQty:  decimal.Zero,
			Reason:        reason,
			Detail:        detail,
			Alternatives:  alternatives,
		}
	}

	if !req.Quantity.IsPositive() {
		return etline.ResolvedLine{}, reject(etline.ReasonInvalidQuantity, mdquantity.ErrInvalidQuantity.Error(), nil)
	}

	res := e.resolver.Resolve(name, snap)
	switch res.Outcome {
	case mdresolve.Unresolved:
		return etline.ResolvedLine{}, reject(etline.ReasonUnresolvedItem, "no confident catalog match", candidateNames(res.Candidates))
	case mdresolve.Ambiguous:
		return etline.ResolvedLine{}, reject(etline.ReasonAmbiguousItem, "several catalog items match equally well", candidateNames(res.Candidates))
	}

	item := res.Item
	qty, err := e.normalizer.Normalize(req.Quantity, req.UnitHint, item.Unit)
	if err != nil {
		r := reject(etline.ReasonUnitMismatch, err.Error(), nil)
		if errors.Is(err, mdquantity.ErrInvalidQuantity) {
			r.Reason = etline.ReasonInvalidQuantity
		}
		r.CanonicalName = item.CanonicalName
		r.AvailableQty = item.StockQty
		return etline.ResolvedLine{}, r
	}

	return etline.ResolvedLine{
		CanonicalName: item.CanonicalName,
		RequestedName: name,
		Unit:          item.Unit,
		Category:      item.Category,
		Quantity:      qty,
	}, nil
}

func candidateNames(cands []etline.Candidate) []string {
	out := make([]string, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.CanonicalName)
	}
	return out
}
