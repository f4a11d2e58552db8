// Package models contains the data types shared by the ETL pipeline stages.
//
// It defines the record shapes that flow through the pipeline (RawRecord,
// NormalizedRecord, ConsolidatedRow), the per-run telemetry (RunMetrics,
// MonitorEntry), and the GORM models for the persisted tables.
//
// # Tables
//
//   - hechos: the consolidated table, one row per unique student key.
//   - etl_monitor: the append-only monitoring table, one row per run.
//
// # Source profiles
//
// A SourceProfile declares how one input source is read and normalized:
// its format kind, file path, the accepted aliases for the student key,
// and which fields carry numeric scores.
package models
