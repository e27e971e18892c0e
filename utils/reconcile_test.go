package utils

import (
	"testing"

	"github.com/celestecruzzg/IOT-FINAL/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotWithParcelas(ids ...int) *models.FeedSnapshot {
	snap := &models.FeedSnapshot{
		Sensores: &models.LecturaFeed{Humedad: 50, Temperatura: 20, Lluvia: 0, Sol: 70},
		Parcelas: []models.ParcelaFeed{},
	}
	for _, id := range ids {
		snap.Parcelas = append(snap.Parcelas, models.ParcelaFeed{
			ID:          id,
			Nombre:      "Parcela",
			Ubicacion:   "Zona Sur",
			Responsable: "Ana López",
			TipoCultivo: "Maíz",
			Latitud:     21.05,
			Longitud:    -86.85,
			Sensor:      &models.LecturaFeed{Humedad: float64(id), Temperatura: 22, Lluvia: 1, Sol: 60},
		})
	}
	return snap
}

func TestReconcileClassifiesInsertUpdateDelete(t *testing.T) {
	plan := Reconcile(snapshotWithParcelas(2, 3, 4), []int{1, 2, 3}, nil)

	assert.Equal(t, []int{1}, plan.DeletedIDs)

	var updateIDs, insertIDs []int
	for _, p := range plan.ToUpdate {
		updateIDs = append(updateIDs, p.ID)
	}
	for _, p := range plan.ToInsert {
		insertIDs = append(insertIDs, p.ID)
	}
	assert.ElementsMatch(t, []int{2, 3}, updateIDs)
	assert.ElementsMatch(t, []int{4}, insertIDs)
}

func TestReconcileAssignsOwnerOnInsertOnly(t *testing.T) {
	owner := uint(7)
	plan := Reconcile(snapshotWithParcelas(1, 2), []int{1}, &owner)

	require.Len(t, plan.ToInsert, 1)
	require.Len(t, plan.ToUpdate, 1)
	require.NotNil(t, plan.ToInsert[0].UserID)
	assert.Equal(t, owner, *plan.ToInsert[0].UserID)
	assert.Nil(t, plan.ToUpdate[0].UserID)
}

func TestReconcileHashesEmbeddedReadings(t *testing.T) {
	plan := Reconcile(snapshotWithParcelas(5), nil, nil)

	require.Len(t, plan.Readings, 1)
	r := plan.Readings[0]
	require.NotNil(t, r.ParcelaID)
	assert.Equal(t, 5, *r.ParcelaID)
	assert.Equal(t, ReadingHash(r.Humedad, r.Temperatura, r.Lluvia, r.Sol), r.Hash)
}

func TestReconcileSkipsParcelaWithoutSensor(t *testing.T) {
	snap := snapshotWithParcelas(1)
	snap.Parcelas[0].Sensor = nil

	plan := Reconcile(snap, nil, nil)
	assert.Empty(t, plan.Readings)
	assert.Len(t, plan.ToInsert, 1)
}

func TestReconcileSameSnapshotTwiceIsStable(t *testing.T) {
	snap := snapshotWithParcelas(1, 2)
	first := Reconcile(snap, nil, nil)

	// After applying the first plan the parcelas exist locally, so the
	// second pass reports only updates and the exact same reading hashes.
	second := Reconcile(snap, []int{1, 2}, nil)
	assert.Empty(t, second.ToInsert)
	assert.Empty(t, second.DeletedIDs)
	assert.Len(t, second.ToUpdate, 2)

	require.Equal(t, len(first.Readings), len(second.Readings))
	for i := range first.Readings {
		assert.Equal(t, first.Readings[i].Hash, second.Readings[i].Hash)
	}
}
