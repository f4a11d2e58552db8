// Package reconcile provides a generic merge engine for joining keyed
// record sets from heterogeneous sources into one consolidated set.
//
// The engine performs a left outer join anchored on an identity source:
// every identity record survives into the output, auxiliary records only
// contribute fields to rows that already exist. Records present only in an
// auxiliary source are excluded and reported as orphans.
//
// # Field precedence
//
// When the same field name arrives from more than one source:
//
//  1. A non-empty identity value always wins.
//  2. Auxiliary sources fill fields that are still null or empty, in the
//     order the sources are declared, so the first declared auxiliary
//     source wins conflicts between auxiliaries.
//  3. Numeric zero counts as a real value, never as an absence.
//
// # Invariants
//
// The engine requires key uniqueness within every source and a non-empty
// key on every record. Violations return ErrDuplicateKey or ErrMissingKey
// instead of silently picking a record; upstream deduplication owns the
// policy for collapsing repeated keys.
//
// # Usage
//
//	rows, stats, err := reconcile.Merge(identitySource, gradesSource, enrollmentSource)
//	if err != nil {
//	    // structural invariant broken, abort the run
//	}
//
// The engine knows nothing about students or schemas; the feature adapter
// converts domain record sets into Sources and maps the merged rows back.
package reconcile
