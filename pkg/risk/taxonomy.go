package risk

// CSFFunction is one of the six top-level NIST CSF 2.0 functions.
type CSFFunction string

const (
	FunctionGovern   CSFFunction = "GOVERN"
	FunctionIdentify CSFFunction = "IDENTIFY"
	FunctionProtect  CSFFunction = "PROTECT"
	FunctionDetect   CSFFunction = "DETECT"
	FunctionRespond  CSFFunction = "RESPOND"
	FunctionRecover  CSFFunction = "RECOVER"
)

// Risk factor identifiers. The factor set is fixed; one FactorVector entry
// exists per identifier for every assessment.
const (
	FactorDataLineage     = "data_lineage"
	FactorExplainability  = "model_explainability"
	FactorDriftMonitoring = "drift_monitoring"
	FactorThirdParty      = "third_party_dependencies"
	FactorDataSecurity    = "data_security_controls"
)

// Risk type identifiers used as keys into the risk-type mapping table.
const (
	RiskTrainingDataPoisoning      = "training_data_poisoning"
	RiskModelDrift                 = "model_drift"
	RiskAdversarialExamples        = "adversarial_examples"
	RiskModelInversion             = "model_inversion"
	RiskSupplyChainCompromise      = "supply_chain_compromise"
	RiskUnvettedDependencies       = "unvetted_dependencies"
	RiskDataLineageOpacity         = "data_lineage_opacity"
	RiskInsufficientDataProtection = "insufficient_data_protection"
	RiskModelTheft                 = "model_theft"
)

// LibraryRiskClass classifies a third-party library by attack surface.
type LibraryRiskClass int

const (
	LibraryRiskUnknown LibraryRiskClass = iota
	LibraryRiskMedium
	LibraryRiskHigh
)

// FactorDefinition is one fixed, weighted risk condition.
type FactorDefinition struct {
	ID          string `json:"id"`
	Weight      int    `json:"weight"`
	Description string `json:"description"`
}

// CSFCategory is one stable entry of the control framework catalog. The
// core treats the ID as an opaque, immutable lookup key.
type CSFCategory struct {
	ID          string      `json:"id"`
	Function    CSFFunction `json:"function"`
	Description string      `json:"description"`
}

// CategoryRef is one side of the many-to-many risk-type mapping: a taxonomy
// category plus the inherent severity of the risk type for that category.
type CategoryRef struct {
	Category string   `json:"category"`
	Severity Severity `json:"severity"`
}

// RiskType describes one entry of the AI risk catalog.
type RiskType struct {
	Description string        `json:"description"`
	Mappings    []CategoryRef `json:"mappings"`
}

// EffortLevel drives the cost estimate attached to an action template.
type EffortLevel string

const (
	EffortLow    EffortLevel = "Low"
	EffortMedium EffortLevel = "Medium"
	EffortHigh   EffortLevel = "High"
)

// CostRange is a remediation cost estimate band in USD.
type CostRange struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
}

// TimelineRange is a remediation timeline estimate band in days.
type TimelineRange struct {
	MinDays int `json:"min_days"`
	MaxDays int `json:"max_days"`
}

// ActionTemplate is a static, reusable remediation description tied to one
// taxonomy category. At most one template exists per category.
type ActionTemplate struct {
	Category    string        `json:"category"`
	Description string        `json:"description"`
	Effort      EffortLevel   `json:"effort"`
	Timeline    TimelineRange `json:"timeline"`
	Reference   string        `json:"reference"`
}

// Taxonomy holds every static lookup table the engine consumes. Built once
// at process start by DefaultTaxonomy and never mutated afterwards, so
// concurrent assessment calls need no coordination.
type Taxonomy struct {
	Factors           []FactorDefinition
	LibraryRisk       map[string]LibraryRiskClass
	RecognizedSources map[string]bool
	RiskTypes         map[string]RiskType
	Categories        map[string]CSFCategory
	Templates         map[string]ActionTemplate
	Costs             map[EffortLevel]CostRange
	GenericCost       CostRange
	GenericTimeline   TimelineRange
}

// WeightTotal returns the sum of all factor weights. This is the documented
// maximum raw score before the stress multiplier is applied; it is a table
// property, not assumed to equal 100.
func (t *Taxonomy) WeightTotal() int {
	total := 0
	for _, f := range t.Factors {
		total += f.Weight
	}
	return total
}

// FactorWeight returns the configured weight for a factor id, 0 if unknown.
func (t *Taxonomy) FactorWeight(id string) int {
	for _, f := range t.Factors {
		if f.ID == id {
			return f.Weight
		}
	}
	return 0
}

const nistCSFReference = "https://nvlpubs.nist.gov/nistpubs/CSWP/NIST.CSWP.29.pdf"

// DefaultTaxonomy builds the built-in lookup tables. The weights sum to 90.
func DefaultTaxonomy() *Taxonomy {
	return &Taxonomy{
		Factors: []FactorDefinition{
			{ID: FactorDataLineage, Weight: 20, Description: "Training data provenance not documented"},
			{ID: FactorExplainability, Weight: 15, Description: "Black-box model with limited explainability"},
			{ID: FactorDriftMonitoring, Weight: 25, Description: "No ML model drift monitoring"},
			{ID: FactorThirdParty, Weight: 20, Description: "High-risk third-party dependencies"},
			{ID: FactorDataSecurity, Weight: 10, Description: "Insufficient data security controls"},
		},
		LibraryRisk: map[string]LibraryRiskClass{
			"tensorflow":   LibraryRiskHigh,
			"pytorch":      LibraryRiskHigh,
			"keras":        LibraryRiskHigh,
			"scikit-learn": LibraryRiskHigh,
			"transformers": LibraryRiskHigh,
			"xgboost":      LibraryRiskHigh,
			"numpy":        LibraryRiskMedium,
			"pandas":       LibraryRiskMedium,
			"scipy":        LibraryRiskMedium,
			"requests":     LibraryRiskMedium,
			"flask":        LibraryRiskMedium,
			"django":       LibraryRiskMedium,
		},
		RecognizedSources: map[string]bool{
			"internal_db_documented":        true,
			"internal_warehouse_documented": true,
			"curated_dataset":               true,
			"versioned_feature_store":       true,
		},
		RiskTypes: map[string]RiskType{
			RiskTrainingDataPoisoning: {
				Description: "Manipulation of training data to corrupt model behavior",
				Mappings: []CategoryRef{
					{Category: "PR.DS-06", Severity: SeverityCritical},
					{Category: "ID.RA-01", Severity: SeverityHigh},
					{Category: "DE.AE-02", Severity: SeverityMedium},
				},
			},
			RiskModelDrift: {
				Description: "Degradation of model performance as input distributions shift",
				Mappings: []CategoryRef{
					{Category: "DE.CM-07", Severity: SeverityHigh},
					{Category: "ID.RA-01", Severity: SeverityLow},
				},
			},
			RiskAdversarialExamples: {
				Description: "Crafted inputs that cause the model to mispredict",
				Mappings: []CategoryRef{
					{Category: "DE.AE-02", Severity: SeverityHigh},
					{Category: "ID.RA-01", Severity: SeverityMedium},
				},
			},
			RiskModelInversion: {
				Description: "Reconstruction of sensitive training data from model outputs",
				Mappings: []CategoryRef{
					{Category: "PR.AC-07", Severity: SeverityHigh},
					{Category: "PR.DS-06", Severity: SeverityMedium},
				},
			},
			RiskSupplyChainCompromise: {
				Description: "Compromise introduced through third-party ML components",
				Mappings: []CategoryRef{
					{Category: "GV.SC-01", Severity: SeverityCritical},
					{Category: "ID.SC-04", Severity: SeverityHigh},
					{Category: "RS.AN-01", Severity: SeverityLow},
				},
			},
			RiskUnvettedDependencies: {
				Description: "Third-party libraries in use without security assessment",
				Mappings: []CategoryRef{
					{Category: "ID.SC-04", Severity: SeverityMedium},
				},
			},
			RiskDataLineageOpacity: {
				Description: "Unknown or undocumented provenance of training data",
				Mappings: []CategoryRef{
					{Category: "ID.AM-03", Severity: SeverityMedium},
					{Category: "GV.OC-02", Severity: SeverityLow},
				},
			},
			RiskInsufficientDataProtection: {
				Description: "Missing encryption or access controls around model data",
				Mappings: []CategoryRef{
					{Category: "PR.DS-06", Severity: SeverityHigh},
					{Category: "PR.AC-07", Severity: SeverityMedium},
				},
			},
			// Recognized but not yet mapped to any control category.
			RiskModelTheft: {
				Description: "Exfiltration of proprietary model weights or architecture",
				Mappings:    []CategoryRef{},
			},
		},
		Categories: map[string]CSFCategory{
			"GV.SC-01": {ID: "GV.SC-01", Function: FunctionGovern, Description: "Cybersecurity supply chain risk management strategy is established"},
			"GV.OC-02": {ID: "GV.OC-02", Function: FunctionGovern, Description: "Internal and external stakeholders and their expectations are understood"},
			"ID.RA-01": {ID: "ID.RA-01", Function: FunctionIdentify, Description: "Vulnerabilities in assets are identified, validated, and recorded"},
			"ID.AM-03": {ID: "ID.AM-03", Function: FunctionIdentify, Description: "Representations of authorized data flows are maintained"},
			"ID.SC-04": {ID: "ID.SC-04", Function: FunctionIdentify, Description: "Suppliers and third-party partners are routinely assessed"},
			"PR.DS-06": {ID: "PR.DS-06", Function: FunctionProtect, Description: "Integrity checking mechanisms verify software and data integrity"},
			"PR.AC-07": {ID: "PR.AC-07", Function: FunctionProtect, Description: "Users, devices, and other assets are authenticated commensurate with risk"},
			"DE.CM-07": {ID: "DE.CM-07", Function: FunctionDetect, Description: "Monitoring for unauthorized activity and model behavior changes is performed"},
			"DE.AE-02": {ID: "DE.AE-02", Function: FunctionDetect, Description: "Potentially adverse events are analyzed to characterize attack methods"},
			"RS.AN-01": {ID: "RS.AN-01", Function: FunctionRespond, Description: "Notifications from detection systems are investigated"},
			"RC.RP-04": {ID: "RC.RP-04", Function: FunctionRecover, Description: "Critical mission function restoration is planned and exercised"},
		},
		Templates: map[string]ActionTemplate{
			"GV.SC-01": {Category: "GV.SC-01", Description: "Establish a cybersecurity supply chain risk management strategy", Effort: EffortHigh, Timeline: TimelineRange{MinDays: 60, MaxDays: 90}, Reference: nistCSFReference + "#page=25"},
			"GV.OC-02": {Category: "GV.OC-02", Description: "Implement AI governance and decision transparency oversight", Effort: EffortMedium, Timeline: TimelineRange{MinDays: 30, MaxDays: 60}, Reference: nistCSFReference + "#page=23"},
			"ID.RA-01": {Category: "ID.RA-01", Description: "Run a comprehensive AI asset vulnerability assessment", Effort: EffortMedium, Timeline: TimelineRange{MinDays: 14, MaxDays: 30}, Reference: "https://nvlpubs.nist.gov/nistpubs/ai/NIST.AI.100-1.pdf#page=45"},
			"ID.AM-03": {Category: "ID.AM-03", Description: "Implement data lineage documentation and automated tracking", Effort: EffortMedium, Timeline: TimelineRange{MinDays: 30, MaxDays: 45}, Reference: nistCSFReference + "#page=30"},
			"ID.SC-04": {Category: "ID.SC-04", Description: "Assess the security posture of third-party ML libraries and vendors", Effort: EffortMedium, Timeline: TimelineRange{MinDays: 21, MaxDays: 45}, Reference: nistCSFReference + "#page=32"},
			"PR.DS-06": {Category: "PR.DS-06", Description: "Implement cryptographic training data integrity verification", Effort: EffortHigh, Timeline: TimelineRange{MinDays: 45, MaxDays: 90}, Reference: "https://nvlpubs.nist.gov/nistpubs/SpecialPublications/NIST.SP.800-53r5.pdf#page=195"},
			"PR.AC-07": {Category: "PR.AC-07", Description: "Deploy role-based access controls and MFA for AI system components", Effort: EffortMedium, Timeline: TimelineRange{MinDays: 30, MaxDays: 60}, Reference: nistCSFReference + "#page=35"},
			"DE.CM-07": {Category: "DE.CM-07", Description: "Deploy continuous ML model performance and drift monitoring", Effort: EffortHigh, Timeline: TimelineRange{MinDays: 30, MaxDays: 60}, Reference: nistCSFReference + "#page=40"},
			"DE.AE-02": {Category: "DE.AE-02", Description: "Implement adversarial example and input manipulation detection", Effort: EffortHigh, Timeline: TimelineRange{MinDays: 60, MaxDays: 90}, Reference: nistCSFReference + "#page=39"},
			"RS.AN-01": {Category: "RS.AN-01", Description: "Establish AI incident analysis and forensics procedures", Effort: EffortMedium, Timeline: TimelineRange{MinDays: 21, MaxDays: 45}, Reference: nistCSFReference + "#page=43"},
			"RC.RP-04": {Category: "RC.RP-04", Description: "Develop AI system recovery and model redeployment planning", Effort: EffortMedium, Timeline: TimelineRange{MinDays: 30, MaxDays: 60}, Reference: nistCSFReference + "#page=46"},
		},
		Costs: map[EffortLevel]CostRange{
			EffortLow:    {Min: 5000, Max: 15000, Currency: "USD"},
			EffortMedium: {Min: 15000, Max: 50000, Currency: "USD"},
			EffortHigh:   {Min: 50000, Max: 150000, Currency: "USD"},
		},
		GenericCost:     CostRange{Min: 5000, Max: 150000, Currency: "USD"},
		GenericTimeline: TimelineRange{MinDays: 7, MaxDays: 120},
	}
}
