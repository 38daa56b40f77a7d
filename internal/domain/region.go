package domain

// Geographic partition under which tours are grouped.
// A Region is the scope of one package optimization run.
type Region struct {
	ID   string
	Name string
}
