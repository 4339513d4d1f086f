// Package wikicollect collects Wikipedia article text for a set of search
// terms and exports it as newline-delimited JSON for dataset assembly.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., yaml/, mediawiki/, sqlite/, s3/).
package wikicollect
