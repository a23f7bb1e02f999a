package doctree

// Level is a heading rank in the outline.
type Level string

const (
	H1 Level = "H1"
	H2 Level = "H2"
	H3 Level = "H3"
)

// Depth returns 1, 2 or 3 for a known level and 0 otherwise.
func (l Level) Depth() int {
	switch l {
	case H1:
		return 1
	case H2:
		return 2
	case H3:
		return 3
	}
	return 0
}

// LevelForDepth maps a 1-based depth to a Level. ok is false beyond H3.
func LevelForDepth(depth int) (Level, bool) {
	switch depth {
	case 1:
		return H1, true
	case 2:
		return H2, true
	case 3:
		return H3, true
	}
	return "", false
}

// Outline is the result for one document.
type Outline struct {
	Title   string    `json:"title"`
	Outline []Heading `json:"outline"`
}

// Heading is one outline entry, in document reading order.
type Heading struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// ErrorResult replaces an Outline when a document could not be processed.
type ErrorResult struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// NewErrorResult builds the error object written for a failed document.
func NewErrorResult(filename string, err error) *ErrorResult {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &ErrorResult{
		Error:   "Failed to process " + filename,
		Details: details,
	}
}

// DocNode is a heading with its nested subheadings.
type DocNode struct {
	Heading
	Children []*DocNode
}

// Nest folds the flat outline into a tree. A heading becomes the child of the
// closest preceding heading with a smaller depth; headings with none are roots.
func Nest(o *Outline) []*DocNode {
	type stackEntry struct {
		node  *DocNode
		depth int
	}
	var roots []*DocNode
	var stack []stackEntry

	for _, h := range o.Outline {
		depth := h.Level.Depth()
		node := &DocNode{Heading: h}

		for len(stack) > 0 && stack[len(stack)-1].depth >= depth {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1].node
			parent.Children = append(parent.Children, node)
		}
		stack = append(stack, stackEntry{node: node, depth: depth})
	}
	return roots
}
