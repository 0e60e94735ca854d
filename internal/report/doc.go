// Package report serializes scan reports.
//
// It provides JSON and Markdown writers behind a common Writer interface,
// plus timestamped persistence of reports to disk
// (aegis_scan_results_<YYYYMMDD_HHMMSS>.<ext>).
package report
