package dto

// CutoffTimeResponse respuesta de GET /ConfigHr/getConfigHr.
type CutoffTimeResponse struct {
	CutoffTime string `json:"cutoffTime"` // HH:MM
}
