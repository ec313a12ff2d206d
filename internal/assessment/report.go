package assessment

// ReportVersion identifies the assessment methodology version carried in
// every report.
const ReportVersion = "1.01"

// ExportPotential is the qualitative block of the report.
type ExportPotential struct {
	UKGlobalRCA                 string `json:"uk_global_rca"`
	BilateralRCA                string `json:"bilateral_rca"`
	UKRCADifference             string `json:"uk_rca_difference"`
	PartnerGlobalRCA            string `json:"partner_global_rca"`
	GlobalRCADifference         string `json:"global_rca_difference"`
	ImportMarketSize            string `json:"import_market_size"`
	ProductSharePartnerImport   string `json:"product_share_partner_import"`
	UKExportsWorld              string `json:"uk_exports_world"`
	UKExportsAffected           string `json:"uk_exports_affected"`
	ProductShareUKExportWorld   string `json:"product_share_uk_export_world"`
	ProductShareUKExportPartner string `json:"product_share_uk_export_partner"`
}

// Report is the assessment result. Key names and ordering are stable; the
// snapshot fixtures in the case-management service compare serialized reports
// byte for byte.
type Report struct {
	Version         string          `json:"version"`
	CommodityCodes  []string        `json:"commodity_codes"`
	Product         string          `json:"product"`
	StartYear       string          `json:"start_year"`
	EndYear         string          `json:"end_year"`
	Years           []string        `json:"years"`
	Warnings        []string        `json:"warnings"`
	ExportPotential ExportPotential `json:"export_potential"`
	Calculations    Metrics         `json:"calculations"`
	AggregateData   []FlowRow       `json:"aggregate_data"`
	RawData         []CommodityRow  `json:"raw_data"`
}
