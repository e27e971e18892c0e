package models

type Usuario struct {
	ID                uint   `json:"id" gorm:"primaryKey"`
	Nombre            string `json:"nombre"`
	Apellidos         string `json:"apellidos"`
	Correo            string `json:"correo" gorm:"unique;not null"`
	Contrasena        string `json:"-"` // bcrypt hash; empty for Google accounts
	PreguntaSeguridad string `json:"pregunta_seguridad"`
}

func (Usuario) TableName() string {
	return "usuarios"
}
