package controllers

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/celestecruzzg/IOT-FINAL/config"
	"github.com/celestecruzzg/IOT-FINAL/models"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"
)

// Accounts created through Google login carry this sentinel instead of a
// security question.
const googleAuthSentinel = "Google Auth"

// verifyGoogleToken is a seam for tests; production verifies against
// Google's certs with the configured OAuth client id as audience.
var verifyGoogleToken = func(ctx context.Context, token string) (*idtoken.Payload, error) {
	return idtoken.Validate(ctx, token, os.Getenv("GOOGLE_CLIENT_ID"))
}

func generateSessionToken(user models.Usuario) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":     user.ID,
		"correo": user.Correo,
		"exp":    time.Now().Add(time.Hour).Unix(),
	})
	return token.SignedString(config.JWTSecret())
}

// Register creates a local user with a bcrypt-hashed password.
func Register(c *gin.Context) {
	var req struct {
		Nombre            string `json:"nombre" binding:"required"`
		Apellidos         string `json:"apellidos" binding:"required"`
		Correo            string `json:"correo" binding:"required"`
		Contrasena        string `json:"contraseña" binding:"required"`
		PreguntaSeguridad string `json:"pregunta_seguridad" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Todos los campos son requeridos", err)
		return
	}

	var existing models.Usuario
	err := config.DB.Where("correo = ?", req.Correo).First(&existing).Error
	if err == nil {
		respondError(c, http.StatusBadRequest, "El correo ya está registrado", nil)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusInternalServerError, "Error al registrar usuario", err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Contrasena), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error al registrar usuario", err)
		return
	}

	user := models.Usuario{
		Nombre:            req.Nombre,
		Apellidos:         req.Apellidos,
		Correo:            req.Correo,
		Contrasena:        string(hashed),
		PreguntaSeguridad: req.PreguntaSeguridad,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al registrar usuario", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Usuario registrado exitosamente",
		"userId":  user.ID,
	})
}

// Login authenticates with password plus security answer. Unknown email and
// wrong password share one message; the security answer is compared as
// stored, without hashing.
func Login(c *gin.Context) {
	var req struct {
		Correo             string `json:"correo"`
		Contrasena         string `json:"contraseña"`
		RespuestaSeguridad string `json:"respuesta_seguridad"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Correo == "" || req.Contrasena == "" || req.RespuestaSeguridad == "" {
		respondError(c, http.StatusBadRequest, "Correo, contraseña y respuesta de seguridad son requeridos", nil)
		return
	}

	var user models.Usuario
	if err := config.DB.Where("correo = ?", req.Correo).First(&user).Error; err != nil {
		respondError(c, http.StatusUnauthorized, "Credenciales inválidas", nil)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Contrasena), []byte(req.Contrasena)); err != nil {
		respondError(c, http.StatusUnauthorized, "Credenciales inválidas", nil)
		return
	}

	if req.RespuestaSeguridad != user.PreguntaSeguridad {
		respondError(c, http.StatusUnauthorized, "Respuesta de seguridad incorrecta", nil)
		return
	}

	token, err := generateSessionToken(user)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error al iniciar sesión", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user": gin.H{
			"id":        user.ID,
			"nombre":    user.Nombre,
			"correo":    user.Correo,
			"apellidos": user.Apellidos,
		},
	})
}

// GetSecurityQuestion returns the stored security question for an email.
func GetSecurityQuestion(c *gin.Context) {
	var req struct {
		Correo string `json:"correo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Correo == "" {
		respondError(c, http.StatusBadRequest, "El correo es requerido", nil)
		return
	}

	var user models.Usuario
	if err := config.DB.Where("correo = ?", req.Correo).First(&user).Error; err != nil {
		respondError(c, http.StatusNotFound, "Usuario no encontrado", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"pregunta_seguridad": user.PreguntaSeguridad,
	})
}

// GoogleLogin verifies a Google ID token, finds or creates the matching
// local account, and refreshes nombre/apellidos from the claims on every
// login.
func GoogleLogin(c *gin.Context) {
	var req struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		respondError(c, http.StatusBadRequest, "Token de Google requerido", nil)
		return
	}

	payload, err := verifyGoogleToken(c.Request.Context(), req.Token)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Token de Google inválido", err)
		return
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		respondError(c, http.StatusBadRequest, "Token de Google inválido", nil)
		return
	}

	nombre := claimString(payload, "given_name")
	if nombre == "" {
		nombre = claimString(payload, "name")
	}
	if nombre == "" {
		nombre = strings.SplitN(email, "@", 2)[0]
	}
	apellidos := claimString(payload, "family_name")

	var user models.Usuario
	err = config.DB.Where("correo = ? AND pregunta_seguridad = ?", email, googleAuthSentinel).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.Usuario{
			Nombre:            nombre,
			Apellidos:         apellidos,
			Correo:            email,
			PreguntaSeguridad: googleAuthSentinel,
		}
		if err := config.DB.Create(&user).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Error al iniciar sesión con Google", err)
			return
		}
	case err != nil:
		respondError(c, http.StatusInternalServerError, "Error al iniciar sesión con Google", err)
		return
	default:
		user.Nombre = nombre
		user.Apellidos = apellidos
		if err := config.DB.Model(&user).Updates(map[string]interface{}{
			"nombre":    nombre,
			"apellidos": apellidos,
		}).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Error al iniciar sesión con Google", err)
			return
		}
	}

	token, err := generateSessionToken(user)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error al iniciar sesión con Google", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user": gin.H{
			"id":        user.ID,
			"nombre":    user.Nombre,
			"correo":    user.Correo,
			"apellidos": user.Apellidos,
		},
	})
}

func claimString(payload *idtoken.Payload, key string) string {
	s, _ := payload.Claims[key].(string)
	return s
}
