// internal/catalog/navigator.go
package catalog

import (
	"errors"
	"strings"

	"github.com/haspco/safety-catalog/internal/models"
)

var (
	ErrUnknownOption  = errors.New("option is not available at this step")
	ErrNothingToPick  = errors.New("no further level to select")
	ErrAlreadyAtStart = errors.New("already at the first step")
)

// Level is a step of the drill-down, in order.
type Level int

const (
	LevelManufacturer Level = iota
	LevelCategory
	LevelSubCategory
	LevelSubSubCategory
	LevelProducts
)

var levelNames = [...]string{"manufacturer", "category", "subCategory", "subSubCategory", "products"}

func (l Level) String() string {
	if l < LevelManufacturer || l > LevelProducts {
		return "unknown"
	}
	return levelNames[l]
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Selection is a partial path through the hierarchy. Within the levels of a
// GroupBy only the leading run of non-empty fields counts. When browsing by
// category, Manufacturer is not a level but an optional filter.
type Selection struct {
	Manufacturer   string `json:"manufacturer,omitempty" form:"manufacturer"`
	Category       string `json:"category,omitempty" form:"category"`
	SubCategory    string `json:"subCategory,omitempty" form:"subCategory"`
	SubSubCategory string `json:"subSubCategory,omitempty" form:"subSubCategory"`
}

func (s Selection) get(level Level) string {
	switch level {
	case LevelManufacturer:
		return strings.TrimSpace(s.Manufacturer)
	case LevelCategory:
		return strings.TrimSpace(s.Category)
	case LevelSubCategory:
		return strings.TrimSpace(s.SubCategory)
	case LevelSubSubCategory:
		return strings.TrimSpace(s.SubSubCategory)
	default:
		return ""
	}
}

func (s Selection) set(level Level, value string) Selection {
	switch level {
	case LevelManufacturer:
		s.Manufacturer = value
	case LevelCategory:
		s.Category = value
	case LevelSubCategory:
		s.SubCategory = value
	case LevelSubSubCategory:
		s.SubSubCategory = value
	}
	return s
}

// Depth is the number of leading levels of by that are selected.
func (s Selection) Depth(by GroupBy) int {
	depth := 0
	for _, level := range by.levels() {
		if s.get(level) == "" {
			break
		}
		depth++
	}
	return depth
}

// Truncate keeps the first depth levels of by and clears everything deeper.
// Fields after a gap are dropped too.
func (s Selection) Truncate(by GroupBy, depth int) Selection {
	var out Selection
	if by == ByCategory {
		out.Manufacturer = s.get(LevelManufacturer)
	}
	levels := by.levels()
	if limit := s.Depth(by); depth > limit {
		depth = limit
	}
	for _, level := range levels[:max(depth, 0)] {
		out = out.set(level, s.get(level))
	}
	return out
}

// matches applies the selection to p: Manufacturer when set, then the
// category path up to its first empty field.
func (s Selection) matches(p *models.Product) bool {
	if m := s.get(LevelManufacturer); m != "" && !SameLabel(levelValue(p, LevelManufacturer), m) {
		return false
	}
	for _, level := range ByCategory.levels() {
		want := s.get(level)
		if want == "" {
			break
		}
		if !SameLabel(levelValue(p, level), want) {
			return false
		}
	}
	return true
}

// OptionsAt returns the distinct values of the next level of by among the
// products matching sel, in first-seen order. Absent values are skipped.
func OptionsAt(products []models.Product, sel Selection, by GroupBy) []string {
	levels := by.levels()
	sel = sel.Truncate(by, len(levels))
	depth := sel.Depth(by)
	if depth >= len(levels) {
		return nil
	}
	next := levels[depth]
	seen := make(map[string]struct{})
	var options []string
	for i := range products {
		p := &products[i]
		if !sel.matches(p) {
			continue
		}
		value := levelValue(p, next)
		key := Key(value)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		options = append(options, value)
	}
	return options
}

// ProductsAt returns every product matching sel, in input order. Levels
// below the selection are unconstrained.
func ProductsAt(products []models.Product, sel Selection) []models.Product {
	var out []models.Product
	for i := range products {
		if sel.matches(&products[i]) {
			out = append(out, products[i])
		}
	}
	return out
}

// View is what the drill-down shows for a selection.
type View struct {
	Step      Level            `json:"step"`
	Selection Selection        `json:"selection"`
	Options   []string         `json:"options"`
	Products  []models.Product `json:"products"`
}

// Resolve decides the step for sel. When the next level has no values the
// level is skipped and every product under sel is shown instead; the same
// rule applies at every depth. When options exist, the products that stop
// at sel are returned with them so none become unreachable.
func Resolve(products []models.Product, sel Selection, by GroupBy) View {
	levels := by.levels()
	sel = sel.Truncate(by, len(levels))
	depth := sel.Depth(by)

	var options []string
	if depth < len(levels) {
		options = OptionsAt(products, sel, by)
	}
	if len(options) == 0 && (depth > 0 || depth == len(levels)) {
		return View{Step: LevelProducts, Selection: sel, Options: []string{}, Products: nonNil(ProductsAt(products, sel))}
	}

	next := levels[depth]
	var direct []models.Product
	for i := range products {
		p := &products[i]
		if sel.matches(p) && Key(levelValue(p, next)) == "" {
			direct = append(direct, *p)
		}
	}
	return View{Step: next, Selection: sel, Options: nonNilStrings(options), Products: nonNil(direct)}
}

// Navigator is the step-wise drill-down state machine. Not safe for
// concurrent use.
type Navigator struct {
	products []models.Product
	by       GroupBy
	view     View
}

func NewNavigator(products []models.Product, by GroupBy) *Navigator {
	return NewNavigatorAt(products, by, Selection{})
}

// NewNavigatorAt starts from an existing selection, e.g. one restored from
// query parameters.
func NewNavigatorAt(products []models.Product, by GroupBy, sel Selection) *Navigator {
	if by != ByCategory {
		by = ByManufacturer
	}
	return &Navigator{products: products, by: by, view: Resolve(products, sel, by)}
}

func (n *Navigator) Step() Level {
	return n.view.Step
}

func (n *Navigator) Selection() Selection {
	return n.view.Selection
}

func (n *Navigator) View() View {
	return n.view
}

// Select picks value at the current step and moves forward.
func (n *Navigator) Select(value string) error {
	if n.view.Step == LevelProducts {
		return ErrNothingToPick
	}
	var picked string
	for _, option := range n.view.Options {
		if SameLabel(option, value) {
			picked = option
			break
		}
	}
	if picked == "" {
		return ErrUnknownOption
	}
	sel := n.view.Selection
	n.view = Resolve(n.products, sel.Truncate(n.by, sel.Depth(n.by)).set(n.view.Step, picked), n.by)
	return nil
}

// Back drops the most recent selection. Deeper fields are cleared in the
// same assignment.
func (n *Navigator) Back() error {
	depth := n.view.Selection.Depth(n.by)
	if depth == 0 {
		return ErrAlreadyAtStart
	}
	n.view = Resolve(n.products, n.view.Selection.Truncate(n.by, depth-1), n.by)
	return nil
}

// BackTo returns to level, clearing the selection at that level and below.
// Levels that are not part of the navigator's hierarchy reset to the start.
func (n *Navigator) BackTo(level Level) {
	depth := 0
	for i, l := range n.by.levels() {
		if l == level {
			depth = i
			break
		}
	}
	n.view = Resolve(n.products, n.view.Selection.Truncate(n.by, depth), n.by)
}

func nonNil(products []models.Product) []models.Product {
	if products == nil {
		return []models.Product{}
	}
	return products
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
