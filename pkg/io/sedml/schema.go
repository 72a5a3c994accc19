package sedml

import "encoding/xml"

// XML shape of a SED-ML L1V3 document.
//
// Only the constructs named in the toolkit's scope are modelled:
// listOfModels, listOfSimulations (uniform time courses), listOfTasks,
// listOfDataGenerators and listOfOutputs (reports and 2D plots).

const (
	// Namespace of SED-ML level 1 version 3.
	Namespace = "http://sed-ml.org/sed-ml/level1/version3"

	// MathMLNamespace qualifies math elements of data generators.
	MathMLNamespace = "http://www.w3.org/1998/Math/MathML"

	// TimeSymbol is the SED-ML URN of the implicit simulation-time variable.
	TimeSymbol = "urn:sedml:symbol:time"
)

type sedDocument struct {
	XMLName xml.Name `xml:"sedML"`
	XMLNS   string   `xml:"xmlns,attr"`
	Level   int      `xml:"level,attr"`
	Version int      `xml:"version,attr"`

	Models         []sedModel         `xml:"listOfModels>model"`
	TimeCourses    []sedTimeCourse    `xml:"listOfSimulations>uniformTimeCourse"`
	Tasks          []sedTask          `xml:"listOfTasks>task"`
	DataGenerators []sedDataGenerator `xml:"listOfDataGenerators>dataGenerator"`
	Outputs        *sedOutputs        `xml:"listOfOutputs"`
}

type sedModel struct {
	ID       string      `xml:"id,attr"`
	Name     string      `xml:"name,attr,omitempty"`
	Language string      `xml:"language,attr"`
	Source   string      `xml:"source,attr"`
	Changes  []sedChange `xml:"listOfChanges>changeAttribute"`
}

type sedChange struct {
	Target   string `xml:"target,attr"`
	NewValue string `xml:"newValue,attr"`
}

type sedTimeCourse struct {
	ID              string        `xml:"id,attr"`
	Name            string        `xml:"name,attr,omitempty"`
	InitialTime     float64       `xml:"initialTime,attr"`
	OutputStartTime float64       `xml:"outputStartTime,attr"`
	OutputEndTime   float64       `xml:"outputEndTime,attr"`
	NumberOfPoints  int           `xml:"numberOfPoints,attr"`
	Algorithm       *sedAlgorithm `xml:"algorithm"`
}

type sedAlgorithm struct {
	KisaoID    string                  `xml:"kisaoID,attr"`
	Parameters []sedAlgorithmParameter `xml:"listOfAlgorithmParameters>algorithmParameter"`
}

type sedAlgorithmParameter struct {
	KisaoID string `xml:"kisaoID,attr"`
	Value   string `xml:"value,attr"`
}

type sedTask struct {
	ID                  string `xml:"id,attr"`
	Name                string `xml:"name,attr,omitempty"`
	ModelReference      string `xml:"modelReference,attr"`
	SimulationReference string `xml:"simulationReference,attr"`
}

type sedDataGenerator struct {
	ID        string        `xml:"id,attr"`
	Name      string        `xml:"name,attr,omitempty"`
	Variables []sedVariable `xml:"listOfVariables>variable"`
	Math      *sedMath      `xml:"math"`
}

type sedMath struct {
	XMLNS string `xml:"xmlns,attr"`
	CI    string `xml:"ci"`
}

type sedVariable struct {
	ID            string `xml:"id,attr"`
	Name          string `xml:"name,attr,omitempty"`
	TaskReference string `xml:"taskReference,attr"`
	Target        string `xml:"target,attr,omitempty"`
	Symbol        string `xml:"symbol,attr,omitempty"`
}

type sedOutputs struct {
	Reports []sedReport `xml:"report"`
	Plots   []sedPlot2D `xml:"plot2D"`
}

type sedReport struct {
	ID       string       `xml:"id,attr"`
	Name     string       `xml:"name,attr,omitempty"`
	DataSets []sedDataSet `xml:"listOfDataSets>dataSet"`
}

type sedDataSet struct {
	ID            string `xml:"id,attr"`
	Label         string `xml:"label,attr"`
	DataReference string `xml:"dataReference,attr"`
}

type sedPlot2D struct {
	ID     string     `xml:"id,attr"`
	Name   string     `xml:"name,attr,omitempty"`
	Curves []sedCurve `xml:"listOfCurves>curve"`
}

type sedCurve struct {
	ID             string `xml:"id,attr"`
	Name           string `xml:"name,attr,omitempty"`
	LogX           bool   `xml:"logX,attr"`
	LogY           bool   `xml:"logY,attr"`
	XDataReference string `xml:"xDataReference,attr"`
	YDataReference string `xml:"yDataReference,attr"`
}

// ids the writer derives from simulation/variable ids.

func taskID(simID string) string {
	return "task_" + simID
}

func reportID(simID string) string {
	return "report_" + simID
}

func dataGenID(varID string) string {
	return "data_gen_" + varID
}

func varID(id string) string {
	return "var_" + id
}

// TimeDataGenerator is the id of the data generator the writer always emits
// for simulation time.
const TimeDataGenerator = "data_gen_time"
