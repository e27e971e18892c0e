package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"

	"github.com/celestecruzzg/IOT-FINAL/config"
	"github.com/celestecruzzg/IOT-FINAL/models"
	"github.com/celestecruzzg/IOT-FINAL/utils"

	"github.com/gin-gonic/gin"
)

const generalHistoryLimit = 20

// FetchAndStore pulls the upstream snapshot, reconciles it into the local
// store, and returns the merged state. One bad parcela never aborts the
// rest of the batch.
func FetchAndStore(c *gin.Context) {
	snapshot, err := utils.FetchFeed(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error al obtener y almacenar datos", err)
		return
	}

	// The ambient series records every fetch, without deduplication.
	hist := models.HistorialSensor{
		Humedad:     snapshot.Sensores.Humedad,
		Temperatura: snapshot.Sensores.Temperatura,
		Lluvia:      snapshot.Sensores.Lluvia,
		Sol:         snapshot.Sensores.Sol,
	}
	if err := config.DB.Create(&hist).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al obtener y almacenar datos", err)
		return
	}

	var localIDs []int
	if err := config.DB.Model(&models.Parcela{}).Pluck("id", &localIDs).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al obtener y almacenar datos", err)
		return
	}

	plan := utils.Reconcile(snapshot, localIDs, nil)
	failed := applyParcelas(plan.ToInsert, plan.ToUpdate)
	applyReadings(plan.Readings, failed)

	var parcelas []models.Parcela
	if err := config.DB.Find(&parcelas).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al obtener y almacenar datos", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"message":         "Datos actualizados correctamente",
		"parcelas":        parcelas,
		"sensores":        snapshot.Sensores,
		"deletedParcelas": plan.DeletedIDs,
	})
}

// applyParcelas persists parcela inserts and full-field updates. Failures
// are logged per parcela and the failed ids returned so dependent readings
// can be skipped.
func applyParcelas(toInsert, toUpdate []models.Parcela) map[int]bool {
	failed := make(map[int]bool)

	for _, p := range toInsert {
		parcela := p
		if err := config.DB.Create(&parcela).Error; err != nil {
			config.Log.Errorw("error al insertar parcela", "parcela_id", p.ID, "error", err)
			failed[p.ID] = true
		}
	}

	for _, p := range toUpdate {
		err := config.DB.Model(&models.Parcela{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
			"nombre":       p.Nombre,
			"ubicacion":    p.Ubicacion,
			"responsable":  p.Responsable,
			"tipo_cultivo": p.TipoCultivo,
			"ultimo_riego": p.UltimoRiego,
			"latitud":      p.Latitud,
			"longitud":     p.Longitud,
		}).Error
		if err != nil {
			config.Log.Errorw("error al actualizar parcela", "parcela_id", p.ID, "error", err)
			failed[p.ID] = true
		}
	}

	return failed
}

// applyReadings inserts readings whose hash is not yet stored. Readings
// pointing at a parcela whose upsert failed are skipped so the reference
// always resolves. Newly stored readings are pushed to connected
// dashboards.
func applyReadings(readings []models.Sensor, failedParcelas map[int]bool) {
	for i := range readings {
		r := &readings[i]
		if r.ParcelaID != nil && failedParcelas[*r.ParcelaID] {
			continue
		}
		inserted, err := insertReadingIfNew(r)
		if err != nil {
			config.Log.Errorw("error al insertar lectura", "hash", r.Hash, "error", err)
			continue
		}
		if inserted {
			BroadcastReading(*r)
		}
	}
}

// insertReadingIfNew persists the reading unless its hash is already
// stored. On insert the row's assigned ID and CreatedAt are written back
// through the pointer so callers broadcast the persisted row.
func insertReadingIfNew(r *models.Sensor) (bool, error) {
	var count int64
	if err := config.DB.Model(&models.Sensor{}).Where("hash = ?", r.Hash).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if err := config.DB.Create(r).Error; err != nil {
		return false, err
	}
	return true, nil
}

// StoreSensorData accepts a client-submitted batch: one general reading
// plus optional parcelas with embedded readings. Existing parcelas are
// left untouched; new ones are owned by the requesting user.
func StoreSensorData(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Autenticación fallida", nil)
		return
	}

	var batch models.FeedSnapshot
	if err := c.ShouldBindJSON(&batch); err != nil || batch.Sensores == nil {
		respondError(c, http.StatusBadRequest, "Formato de datos inválido", nil)
		return
	}

	general := models.Sensor{
		Humedad:     batch.Sensores.Humedad,
		Temperatura: batch.Sensores.Temperatura,
		Lluvia:      batch.Sensores.Lluvia,
		Sol:         batch.Sensores.Sol,
		Hash:        utils.ReadingHash(batch.Sensores.Humedad, batch.Sensores.Temperatura, batch.Sensores.Lluvia, batch.Sensores.Sol),
	}
	if inserted, err := insertReadingIfNew(&general); err != nil {
		respondError(c, http.StatusInternalServerError, "Error al almacenar datos", err)
		return
	} else if inserted {
		BroadcastReading(general)
	}

	if len(batch.Parcelas) > 0 {
		var localIDs []int
		if err := config.DB.Model(&models.Parcela{}).Pluck("id", &localIDs).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Error al almacenar datos", err)
			return
		}

		// Client batches only create what is missing; updates and
		// deletions belong to the upstream fetch path.
		plan := utils.Reconcile(&batch, localIDs, &userID)
		failed := applyParcelas(plan.ToInsert, nil)
		applyReadings(plan.Readings, failed)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Datos almacenados correctamente",
	})
}

// GetGeneralHistory returns the last readings of the ambient series in
// ascending order, plus a best-effort live reading from upstream.
func GetGeneralHistory(c *gin.Context) {
	var current *models.LecturaFeed
	if snapshot, err := utils.FetchFeed(c.Request.Context()); err == nil {
		current = snapshot.Sensores
	} else {
		config.Log.Warnw("feed no disponible para lectura actual", "error", err)
	}

	var historial []models.HistorialSensor
	if err := config.DB.Order("created_at DESC").Limit(generalHistoryLimit).Find(&historial).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al obtener historial", err)
		return
	}

	// Queried newest-first for the LIMIT, reversed for charting.
	for i, j := 0, len(historial)-1; i < j; i, j = i+1, j-1 {
		historial[i], historial[j] = historial[j], historial[i]
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"currentData": current,
		"historial":   historial,
	})
}

// GetParcelaHistory returns the full reading history of one parcela.
func GetParcelaHistory(c *gin.Context) {
	parcelaID := c.Param("parcelaId")

	var history []models.Sensor
	if err := config.DB.Where("parcela_id = ?", parcelaID).Order("created_at DESC").Find(&history).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al obtener historial", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    history,
	})
}

// GetParcelasEliminadas lists parcelas stored locally but absent from the
// live upstream snapshot. The difference is recomputed on every call;
// deletion is never materialized.
func GetParcelasEliminadas(c *gin.Context) {
	snapshot, err := utils.FetchFeed(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error al obtener histórico de parcelas eliminadas", err)
		return
	}

	currentIDs := make(map[int]bool, len(snapshot.Parcelas))
	for _, p := range snapshot.Parcelas {
		currentIDs[p.ID] = true
	}

	var stored []models.Parcela
	if err := config.DB.Find(&stored).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al obtener histórico de parcelas eliminadas", err)
		return
	}

	eliminadas := []models.Parcela{}
	for _, p := range stored {
		if !currentIDs[p.ID] {
			eliminadas = append(eliminadas, p)
		}
	}

	message := "No hay parcelas eliminadas"
	if len(eliminadas) > 0 {
		message = "Histórico de parcelas eliminadas obtenido correctamente"
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    eliminadas,
		"message": message,
	})
}

// parcelaConLectura is a stored parcela joined with its latest reading.
type parcelaConLectura struct {
	ID          int      `json:"id"`
	Nombre      string   `json:"nombre"`
	Ubicacion   string   `json:"ubicacion"`
	Responsable string   `json:"responsable"`
	TipoCultivo string   `json:"tipo_cultivo"`
	UltimoRiego string   `json:"ultimo_riego"`
	Latitud     float64  `json:"latitud"`
	Longitud    float64  `json:"longitud"`
	UserID      *uint    `json:"user_id,omitempty"`
	Humedad     *float64 `json:"humedad"`
	Temperatura *float64 `json:"temperatura"`
	Lluvia      *float64 `json:"lluvia"`
	Sol         *float64 `json:"sol"`
}

// GetParcelas returns the stored parcelas, each with the values of its
// most recent reading.
func GetParcelas(c *gin.Context) {
	var parcelas []parcelaConLectura
	err := config.DB.Raw(`
		SELECT p.id, p.nombre, p.ubicacion, p.responsable, p.tipo_cultivo,
		       p.ultimo_riego, p.latitud, p.longitud, p.user_id,
		       s.humedad, s.temperatura, s.lluvia, s.sol
		FROM parcelas p
		LEFT JOIN sensores s ON p.id = s.parcela_id
		WHERE s.id IN (
			SELECT MAX(id)
			FROM sensores
			GROUP BY parcela_id
		)`).Scan(&parcelas).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error al obtener parcelas", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"parcelas": parcelas,
	})
}

// GetParcelasAPI returns the raw upstream parcela list, bypassing the
// local store.
func GetParcelasAPI(c *gin.Context) {
	snapshot, err := utils.FetchFeed(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error al obtener datos de parcelas de la API", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Datos de parcelas obtenidos correctamente",
		"parcelas": snapshot.Parcelas,
	})
}

// ExportCSV streams the ambient series as a CSV download.
func ExportCSV(c *gin.Context) {
	var records []models.HistorialSensor
	if err := config.DB.Order("created_at DESC").Find(&records).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al obtener historial", err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=historial_sensores.csv")
	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"created_at", "humedad", "temperatura", "lluvia", "sol"})
	for _, r := range records {
		writer.Write([]string{
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%.2f", r.Humedad),
			fmt.Sprintf("%.2f", r.Temperatura),
			fmt.Sprintf("%.2f", r.Lluvia),
			fmt.Sprintf("%.2f", r.Sol),
		})
	}
}
