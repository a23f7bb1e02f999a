package layout

import (
	"github.com/dgallion1/docoutline/internal/doctree"
)

// Outliner runs the full layout pipeline for one document at a time. It holds
// no per-document state, so one Outliner may serve many goroutines.
type Outliner struct {
	classifier *Classifier
}

// NewOutliner builds an Outliner with the given classifier tuning.
func NewOutliner(h Heuristics) (*Outliner, error) {
	c, err := NewClassifier(h)
	if err != nil {
		return nil, err
	}
	return &Outliner{classifier: c}, nil
}

// Outline derives the title and heading outline of doc.
func (o *Outliner) Outline(doc *Document) *doctree.Outline {
	title := ResolveTitle(doc)

	lines := RecombineLines(AssembleLines(doc))
	style := ProfileStyle(lines)
	headings := o.classifier.Classify(lines, style)

	return &doctree.Outline{
		Title:   title,
		Outline: ResolveHierarchy(headings),
	}
}
