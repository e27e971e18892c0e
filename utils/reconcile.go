package utils

import "github.com/celestecruzzg/IOT-FINAL/models"

// ReconcilePlan is the outcome of diffing an upstream snapshot against the
// locally stored parcela ids. Parcela writes must be applied before the
// readings so the parcela_id references resolve.
type ReconcilePlan struct {
	ToInsert   []models.Parcela
	ToUpdate   []models.Parcela
	DeletedIDs []int
	Readings   []models.Sensor
}

// Reconcile is a pure single-pass diff: parcelas present upstream but not
// locally become inserts (owned by ownerID when given), parcelas present in
// both become full-field updates, and local ids missing upstream are
// reported as deleted. Each embedded reading is hashed for deduplication;
// the caller skips hashes already stored.
func Reconcile(snapshot *models.FeedSnapshot, localIDs []int, ownerID *uint) ReconcilePlan {
	local := make(map[int]bool, len(localIDs))
	for _, id := range localIDs {
		local[id] = true
	}

	var plan ReconcilePlan
	current := make(map[int]bool, len(snapshot.Parcelas))
	for _, pf := range snapshot.Parcelas {
		current[pf.ID] = true

		parcela := models.Parcela{
			ID:          pf.ID,
			Nombre:      pf.Nombre,
			Ubicacion:   pf.Ubicacion,
			Responsable: pf.Responsable,
			TipoCultivo: pf.TipoCultivo,
			UltimoRiego: pf.UltimoRiego,
			Latitud:     pf.Latitud,
			Longitud:    pf.Longitud,
		}
		if local[pf.ID] {
			// Ownership is never touched on update.
			plan.ToUpdate = append(plan.ToUpdate, parcela)
		} else {
			parcela.UserID = ownerID
			plan.ToInsert = append(plan.ToInsert, parcela)
		}

		if pf.Sensor != nil {
			parcelaID := pf.ID
			plan.Readings = append(plan.Readings, models.Sensor{
				ParcelaID:   &parcelaID,
				Humedad:     pf.Sensor.Humedad,
				Temperatura: pf.Sensor.Temperatura,
				Lluvia:      pf.Sensor.Lluvia,
				Sol:         pf.Sensor.Sol,
				Hash:        ReadingHash(pf.Sensor.Humedad, pf.Sensor.Temperatura, pf.Sensor.Lluvia, pf.Sensor.Sol),
			})
		}
	}

	for _, id := range localIDs {
		if !current[id] {
			plan.DeletedIDs = append(plan.DeletedIDs, id)
		}
	}
	return plan
}
