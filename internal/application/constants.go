package application

const (
	// History limits
	defaultHistoryLimit = 10

	// Settings keys
	apiKeySetting = "gemini_api_key"

	// Export file names
	ExportJSONFileName  = "analisis_deportivo.json"
	ExportExcelFileName = "analisis_deportivo.xlsx"

	// Excel report configuration
	excelMatchesSheet = "Partidos"
	excelExpertsSheet = "Expertos"
	excelHeaderColor  = "FFD700" // Gold

	// Google Sheets configuration
	sheetsDefaultTitle   = "Pronóstico - Análisis deportivo"
	sheetsClearRange     = "A1:Z1000"
	sheetsStartCell      = "A1"
	sheetsPermissionRole = "writer"
)
