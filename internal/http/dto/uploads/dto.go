// Package uploads define el contrato del endpoint de firma de subidas.
package uploads

type SignRequest struct {
	Feature     string `json:"feature"`   // hero | testimonials | news | gallery | team | volunteers | donation-docs | profile
	Qualifier   string `json:"qualifier"` // breakpoint / scope / slug según la superficie
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
}

type SignResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl"`
	ExpiresIn int    `json:"expiresIn"` // segundos
}
