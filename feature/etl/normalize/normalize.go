package normalize

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"student-etl/core/utils"
	"student-etl/feature/etl/models"
)

// Valid score range. Out-of-range values are clamped to the nearest
// bound, never discarded.
const (
	ScoreMin = 0.0
	ScoreMax = 5.0
)

// Normalizer cleans raw record sets source by source: key resolution,
// deduplication, numeric clamping and contact synthesis.
type Normalizer struct {
	domain string
	logger *zap.Logger
}

// New creates a Normalizer. The domain is the suffix of synthesized
// contact addresses.
func New(domain string, logger *zap.Logger) *Normalizer {
	return &Normalizer{domain: domain, logger: logger}
}

// Normalize converts one source's raw records into a NormalizedSet.
// Individual records that cannot be normalized are dropped and counted,
// never fatal; a profile without key aliases is a configuration error and
// aborts immediately.
func (n *Normalizer) Normalize(profile models.SourceProfile, raws []models.RawRecord) (*models.NormalizedSet, error) {
	if len(profile.KeyAliases) == 0 {
		return nil, fmt.Errorf("%w: source %s declares no key aliases", models.ErrIntegrity, profile.Name)
	}

	set := &models.NormalizedSet{Source: profile.Name, Identity: profile.Identity}
	set.Stats.Read = len(raws)

	// Deduplicate by key: last-seen values win but the record keeps the
	// position of its first occurrence. Each collapsed duplicate counts
	// as discarded.
	position := make(map[string]int)
	for _, raw := range raws {
		rec, err := n.normalizeRecord(profile, raw)
		if err != nil {
			set.Stats.Dropped++
			n.logger.Debug("Record dropped",
				zap.String("source", profile.Name),
				zap.Error(err),
			)
			continue
		}

		if idx, seen := position[rec.Key]; seen {
			set.Records[idx] = rec
			set.Stats.Dropped++
			continue
		}
		position[rec.Key] = len(set.Records)
		set.Records = append(set.Records, rec)
	}

	// Contact synthesis runs after deduplication so each surviving
	// record counts at most one synthesis event.
	if profile.ContactField != "" {
		for i := range set.Records {
			rec := &set.Records[i]
			if current, _ := rec.Fields[profile.ContactField].(string); current != "" {
				continue
			}
			rec.Fields[profile.ContactField] = n.synthesizeContact(rec.Key)
			set.Stats.Synthesized++
		}
	}

	return set, nil
}

// normalizeRecord cleans a single record: every value is trimmed and
// NFC-normalized, the key is resolved through the profile's aliases, and
// declared numeric fields are parsed and clamped.
func (n *Normalizer) normalizeRecord(profile models.SourceProfile, raw models.RawRecord) (models.NormalizedRecord, error) {
	fields := make(map[string]any, len(raw.Fields))
	for name, value := range raw.Fields {
		fields[name] = cleanString(value)
	}

	key := ""
	for _, alias := range profile.KeyAliases {
		if v, _ := fields[alias].(string); v != "" && key == "" {
			key = v
		}
		delete(fields, alias)
	}
	if key == "" {
		return models.NormalizedRecord{}, fmt.Errorf("%w: missing student key", models.ErrRecord)
	}
	fields[models.FieldStudentID] = key

	for _, name := range profile.NumericFields {
		v, _ := fields[name].(string)
		if v == "" {
			return models.NormalizedRecord{}, fmt.Errorf("%w: missing numeric field %q", models.ErrRecord, name)
		}
		f, ok := utils.ToFloat(v)
		if !ok {
			return models.NormalizedRecord{}, fmt.Errorf("%w: field %q value %q is not numeric", models.ErrRecord, name, v)
		}
		fields[name] = clampScore(f)
	}

	return models.NormalizedRecord{Key: key, Fields: fields}, nil
}

func (n *Normalizer) synthesizeContact(key string) string {
	return fmt.Sprintf("alumno%s@%s", strings.ToLower(key), n.domain)
}

// clampScore rounds to one decimal and clamps into the valid range.
func clampScore(v float64) float64 {
	v = math.Round(v*10) / 10
	if v < ScoreMin {
		return ScoreMin
	}
	if v > ScoreMax {
		return ScoreMax
	}
	return v
}

// cleanString trims whitespace and normalizes to Unicode NFC so values
// from differently-encoded sources compare equal.
func cleanString(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
