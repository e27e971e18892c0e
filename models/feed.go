package models

// LecturaFeed is one reading as delivered by the upstream feed, and also
// the shape clients submit in store-sensor-data batches.
type LecturaFeed struct {
	Humedad     float64 `json:"humedad"`
	Temperatura float64 `json:"temperatura"`
	Lluvia      float64 `json:"lluvia"`
	Sol         float64 `json:"sol"`
}

// ParcelaFeed is a parcela as reported upstream, with its current reading
// embedded. Sensor may be absent.
type ParcelaFeed struct {
	ID          int          `json:"id"`
	Nombre      string       `json:"nombre"`
	Ubicacion   string       `json:"ubicacion"`
	Responsable string       `json:"responsable"`
	TipoCultivo string       `json:"tipo_cultivo"`
	UltimoRiego string       `json:"ultimo_riego"`
	Latitud     float64      `json:"latitud"`
	Longitud    float64      `json:"longitud"`
	Sensor      *LecturaFeed `json:"sensor,omitempty"`
}

// FeedSnapshot is the full upstream payload. Both keys must be present;
// pointers let the client tell a missing key from a zero value.
type FeedSnapshot struct {
	Sensores *LecturaFeed  `json:"sensores"`
	Parcelas []ParcelaFeed `json:"parcelas"`
}
