package ssnd

// Section names one state of the forward-pass line scanner. The parser
// walks the states strictly in order; each table advances the state when
// its terminating blank line (or EOF, for optional trailing tables) is
// reached.
type Section int

const (
	SectionHeader Section = iota
	SectionArcs
	SectionServices
	SectionRequests
	SectionHolding
	SectionPenalties
	SectionExecIn
	SectionExecOut
	SectionScenarios
	SectionDone
)

var sectionNames = map[Section]string{
	SectionHeader:    "HEADER",
	SectionArcs:      "ARCS",
	SectionServices:  "SERVICES",
	SectionRequests:  "REQS",
	SectionHolding:   "HOLDING",
	SectionPenalties: "PSI",
	SectionExecIn:    "EXEC_IN",
	SectionExecOut:   "EXEC_OUT",
	SectionScenarios: "SCENARIOS",
	SectionDone:      "DONE",
}

func (s Section) String() string {
	if name, ok := sectionNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Table header rows as they appear verbatim in instance files. A line
// equal to one of these switches the scanner into the matching section.
const (
	servicesHeaderRow  = "serviceID\tServices\torigin\talpha\tdestination\tbeta\tTranCost\tfs"
	requestsHeaderRow  = "reqs\torigins\tdestinations\talphas\tbetas\tcontract_based\trhos\tws"
	holdingHeaderRow   = "HoldingArcs\tHoldingCost"
	penaltiesHeaderRow = "reqs\ttimes\talphaPsi\tbetaPsi"
	execInHeaderRow    = "TimeNodes\tExecArcsIn"
	execOutHeaderRow   = "TimeNodes\tExecArcsOut"
	scenariosHeaderRow = "reqs\tws\trnd_ws"
)
