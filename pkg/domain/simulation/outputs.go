package simulation

import "github.com/biosimkit/biosimkit/pkg/cmp"

// Outputs are what a SED-ML document asks a simulator to record: tabular
// reports and 2D plots, both referencing data generators by id.
type Outputs struct {
	Reports []Report
	Plots   []Plot2D
}

func (o Outputs) Equal(other Outputs) bool {
	return cmp.SliceContentEqWith(o.Reports, other.Reports, Report.Equal) &&
		cmp.SliceContentEqWith(o.Plots, other.Plots, Plot2D.Equal)
}

// Empty tells whether the document declares no outputs at all.
func (o Outputs) Empty() bool {
	return len(o.Reports) == 0 && len(o.Plots) == 0
}

// Report is a tabular output; each data set becomes one column.
type Report struct {
	ID       string
	Name     string
	DataSets []DataSet
}

func (r Report) Equal(o Report) bool {
	return r.ID == o.ID &&
		r.Name == o.Name &&
		cmp.SliceEqWith(r.DataSets, o.DataSets, cmp.EqEq[DataSet])
}

// DataSet is one column of a report, fed by a data generator.
type DataSet struct {
	ID            string
	Label         string
	DataGenerator string
}

// Plot2D is a two-dimensional chart of data-generator pairs.
type Plot2D struct {
	ID     string
	Name   string
	Curves []Curve
}

func (p Plot2D) Equal(o Plot2D) bool {
	return p.ID == o.ID &&
		p.Name == o.Name &&
		cmp.SliceEqWith(p.Curves, o.Curves, cmp.EqEq[Curve])
}

// Curve is one line of a 2D plot.
type Curve struct {
	ID             string
	Name           string
	XDataGenerator string
	YDataGenerator string
}
