package models

// Parcela is a monitored field plot. The ID is assigned by the upstream
// feed and treated as authoritative, so it is never auto-incremented.
type Parcela struct {
	ID          int     `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Nombre      string  `json:"nombre"`
	Ubicacion   string  `json:"ubicacion"`
	Responsable string  `json:"responsable"`
	TipoCultivo string  `json:"tipo_cultivo"`
	UltimoRiego string  `json:"ultimo_riego"`
	Latitud     float64 `json:"latitud"`
	Longitud    float64 `json:"longitud"`
	UserID      *uint   `json:"user_id,omitempty"`
}

func (Parcela) TableName() string {
	return "parcelas"
}
