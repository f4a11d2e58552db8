package etl

import (
	"fmt"

	"go.uber.org/zap"

	"student-etl/core/reconcile"
	"student-etl/feature/etl/models"
)

// consolidate left-joins the auxiliary sets onto the identity set and
// shapes the merged rows to the fixed consolidated column set. Engine
// failures surface as integrity errors and abort the run.
func consolidate(sets []models.NormalizedSet, logger *zap.Logger) ([]models.ConsolidatedRow, error) {
	var identity reconcile.Source
	found := false
	aux := make([]reconcile.Source, 0, len(sets))
	for _, set := range sets {
		src := reconcile.Source{Name: set.Source, Records: toRecords(set.Records)}
		if set.Identity {
			if found {
				return nil, fmt.Errorf("%w: more than one identity source declared", models.ErrIntegrity)
			}
			identity = src
			found = true
			continue
		}
		aux = append(aux, src)
	}
	if !found {
		return nil, fmt.Errorf("%w: no identity source declared", models.ErrIntegrity)
	}

	rows, stats, err := reconcile.Merge(identity, aux...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrIntegrity, err)
	}

	for name, n := range stats.OrphansBySource {
		if n > 0 {
			logger.Warn("Orphan records excluded",
				zap.String("source", name),
				zap.Int("records", n),
			)
		}
	}

	out := make([]models.ConsolidatedRow, 0, len(rows))
	for _, row := range rows {
		fields := make(map[string]any, len(models.ConsolidatedColumns))
		for _, col := range models.ConsolidatedColumns {
			fields[col] = row.Fields[col]
		}
		out = append(out, models.ConsolidatedRow{Key: row.Key, Fields: fields, Sources: row.Sources})
	}
	return out, nil
}

func toRecords(recs []models.NormalizedRecord) []reconcile.Record {
	out := make([]reconcile.Record, 0, len(recs))
	for _, r := range recs {
		out = append(out, reconcile.Record{Key: r.Key, Fields: r.Fields})
	}
	return out
}
