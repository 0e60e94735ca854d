// Package scan contains the core analysis pipeline: it partitions enabled
// rules into per-organization batches, dispatches each batch to the analysis
// agent concurrently, reconciles the structured responses back into typed
// check results, aggregates findings, and assembles the final report.
//
// The pipeline never fails partially: a batch whose agent call errors or
// returns an unstructured response is recovered into empty-findings results
// for every rule in that batch, so the output always contains exactly one
// result per enabled rule.
package scan
