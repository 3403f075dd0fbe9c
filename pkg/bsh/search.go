package bsh

// Operator is a comparison or logical operator understood by the engine.
// The engine also accepts the upper-case spellings.
type Operator string

const (
	OpEq        Operator = "eq"
	OpNe        Operator = "ne"
	OpGt        Operator = "gt"
	OpGte       Operator = "gte"
	OpLt        Operator = "lt"
	OpLte       Operator = "lte"
	OpLike      Operator = "like"
	OpILike     Operator = "ilike"
	OpContains  Operator = "contains"
	OpIContains Operator = "icontains"
	OpStarts    Operator = "starts"
	OpIStarts   Operator = "istarts"
	OpIn        Operator = "in"
	OpNotIn     Operator = "nin"
	OpBetween   Operator = "between"
	OpIsNull    Operator = "isnull"
	OpNotNull   Operator = "notnull"
	OpAnd       Operator = "and"
	OpOr        Operator = "or"
)

// Aggregate functions.
const (
	AggCount = "COUNT"
	AggSum   = "SUM"
	AggAvg   = "AVG"
	AggMin   = "MIN"
	AggMax   = "MAX"
)

// SortDirection orders search results.
type SortDirection int

const (
	SortAsc  SortDirection = 1
	SortDesc SortDirection = -1
)

// Filter is one predicate. Logical operators combine the nested Filters.
// A nil Value is omitted while zero values are sent.
type Filter struct {
	Operator Operator `json:"operator,omitempty" yaml:"operator,omitempty"`
	Field    string   `json:"field,omitempty"    yaml:"field,omitempty"`
	Value    any      `json:"value,omitempty"    yaml:"value,omitempty"`
	Type     string   `json:"type,omitempty"     yaml:"type,omitempty"`
	Filters  []Filter `json:"filters,omitempty"  yaml:"filters,omitempty"`
}

// Aggregate is an aggregation applied within a group.
type Aggregate struct {
	Function string `json:"function" yaml:"function"`
	Field    string `json:"field"    yaml:"field"`
	Alias    string `json:"alias"    yaml:"alias"`
}

// GroupBy groups results by fields and aggregates within each group.
type GroupBy struct {
	Fields    []string    `json:"fields,omitempty"    yaml:"fields,omitempty"`
	Aggregate []Aggregate `json:"aggregate,omitempty" yaml:"aggregate,omitempty"`
}

// Sort orders results by one field.
type Sort struct {
	Field     string        `json:"field"     yaml:"field"`
	Direction SortDirection `json:"direction" yaml:"direction"`
}

// Pagination selects one page of results.
type Pagination struct {
	Page int `json:"page" yaml:"page"`
	Size int `json:"size" yaml:"size"`
}

// Search is the engine query document. From nests a sub-query as the source.
type Search struct {
	Fields     []string    `json:"fields,omitempty"     yaml:"fields,omitempty"`
	Entity     string      `json:"entity,omitempty"     yaml:"entity,omitempty"`
	Alias      string      `json:"alias,omitempty"      yaml:"alias,omitempty"`
	Filters    []Filter    `json:"filters,omitempty"    yaml:"filters,omitempty"`
	GroupBy    *GroupBy    `json:"groupBy,omitempty"    yaml:"groupBy,omitempty"`
	Sort       []Sort      `json:"sort,omitempty"       yaml:"sort,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty" yaml:"pagination,omitempty"`
	From       *Search     `json:"from,omitempty"       yaml:"from,omitempty"`
}

// NewSearch starts an empty search.
func NewSearch() *Search {
	return &Search{}
}

// Where appends a filter.
func (s *Search) Where(field string, op Operator, value any) *Search {
	s.Filters = append(s.Filters, Filter{Field: field, Operator: op, Value: value})

	return s
}

// OrderBy appends a sort clause.
func (s *Search) OrderBy(field string, direction SortDirection) *Search {
	s.Sort = append(s.Sort, Sort{Field: field, Direction: direction})

	return s
}

// Page sets pagination.
func (s *Search) Page(page, size int) *Search {
	s.Pagination = &Pagination{Page: page, Size: size}

	return s
}

// Select restricts the returned fields.
func (s *Search) Select(fields ...string) *Search {
	s.Fields = append(s.Fields, fields...)

	return s
}
