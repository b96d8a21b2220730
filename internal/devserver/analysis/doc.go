// Package analysis implements the keyword based SQL scoring used by the
// development backend: complexity, fingerprints, similarity, COE exports
// and report consolidation.
package analysis
