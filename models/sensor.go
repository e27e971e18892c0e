package models

import "time"

// Sensor is one stored reading. Rows are immutable once created and
// deduplicated by Hash, a digest of the four numeric fields.
type Sensor struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ParcelaID   *int      `json:"parcela_id,omitempty"`
	Humedad     float64   `json:"humedad"`
	Temperatura float64   `json:"temperatura"`
	Lluvia      float64   `json:"lluvia"`
	Sol         float64   `json:"sol"`
	Hash        string    `json:"-" gorm:"uniqueIndex;size:64"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Sensor) TableName() string {
	return "sensores"
}

// HistorialSensor is the ambient (general) reading series. Every fetch
// appends one row; this series is not deduplicated.
type HistorialSensor struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Humedad     float64   `json:"humedad"`
	Temperatura float64   `json:"temperatura"`
	Lluvia      float64   `json:"lluvia"`
	Sol         float64   `json:"sol"`
	CreatedAt   time.Time `json:"created_at"`
}

func (HistorialSensor) TableName() string {
	return "historial_sensores"
}
