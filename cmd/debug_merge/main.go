package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"student-etl/core/config"
	"student-etl/core/logger"
	"student-etl/core/reconcile"
	"student-etl/feature/etl"
	"student-etl/feature/etl/extract"
	"student-etl/feature/etl/models"
	"student-etl/feature/etl/normalize"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer logg.Sync()

	profiles := etl.Profiles(cfg.Pipeline)

	// Test 1: Extract every source and check raw counts
	fmt.Println("=== TEST 1: Source Extraction ===")
	raws := make(map[string][]models.RawRecord, len(profiles))
	for _, p := range profiles {
		records, read, err := extract.Read(p)
		if err != nil {
			log.Fatal(err)
		}
		raws[p.Name] = records
		fmt.Printf("source=%s kind=%s path=%s records=%d\n", p.Name, p.Kind, p.Path, read)
	}

	// Test 2: Normalize and check per-source drop accounting
	fmt.Println("\n=== TEST 2: Normalization ===")
	norm := normalize.New(cfg.Pipeline.ContactDomain, logg)
	sets := make([]models.NormalizedSet, 0, len(profiles))
	var identity *models.NormalizedSet
	for _, p := range profiles {
		set, err := norm.Normalize(p, raws[p.Name])
		if err != nil {
			log.Fatal(err)
		}
		sets = append(sets, *set)
		fmt.Printf("source=%s read=%d kept=%d dropped=%d synthesized=%d\n",
			set.Source, set.Stats.Read, len(set.Records), set.Stats.Dropped, set.Stats.Synthesized)
	}
	for i := range sets {
		if sets[i].Identity {
			identity = &sets[i]
		}
	}
	if identity == nil {
		log.Fatal("no identity source among the configured profiles")
	}
	fmt.Printf("identity source: %s (%d rows drive the merge)\n", identity.Source, len(identity.Records))

	// Test 3: Merge and check orphan accounting
	fmt.Println("\n=== TEST 3: Merge ===")
	toSource := func(set models.NormalizedSet) reconcile.Source {
		records := make([]reconcile.Record, 0, len(set.Records))
		for _, r := range set.Records {
			records = append(records, reconcile.Record{Key: r.Key, Fields: r.Fields})
		}
		return reconcile.Source{Name: set.Source, Records: records}
	}
	aux := make([]reconcile.Source, 0, len(sets)-1)
	for _, set := range sets {
		if !set.Identity {
			aux = append(aux, toSource(set))
		}
	}
	rows, stats, err := reconcile.Merge(toSource(*identity), aux...)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("merged rows: %d (identity rows: %d)\n", len(rows), stats.IdentityRows)
	for _, src := range aux {
		fmt.Printf("source=%s matched=%d orphans=%d\n",
			src.Name, stats.MatchedBySource[src.Name], stats.OrphansBySource[src.Name])
	}
	fmt.Printf("auxiliary values merged: %d\n", stats.FilledFields)

	// Test 4: Inspect the first merged row column by column
	fmt.Println("\n=== TEST 4: First Row ===")
	if len(rows) == 0 {
		fmt.Println("merge produced no rows")
	} else {
		first := rows[0]
		fmt.Printf("key=%s sources=%v\n", first.Key, first.Sources)
		for _, col := range models.ConsolidatedColumns {
			if v, ok := first.Fields[col]; ok && v != nil {
				fmt.Printf("  %s=%v\n", col, v)
			} else {
				fmt.Printf("  %s=<empty>\n", col)
			}
		}
	}

	// Save detailed output
	output := map[string]interface{}{
		"merged_rows":   len(rows),
		"identity_rows": stats.IdentityRows,
		"filled_fields": stats.FilledFields,
		"matched":       stats.MatchedBySource,
		"orphans":       stats.OrphansBySource,
		"sources_read":  len(profiles),
	}
	for _, set := range sets {
		output["dropped_"+set.Source] = set.Stats.Dropped
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	os.WriteFile("debug_merge.json", data, 0644)

	fmt.Println("\nDebug complete. Check debug_merge.json for details.")
}
