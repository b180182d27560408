// Package extractor houses the source-specific extraction strategies and
// the dispatcher that selects between them.
//
// The dispatch-and-fallback rules are the heart of the tool: Instagram URLs
// go through the embed-page scraper with an oEmbed fallback, everything
// else is fetched once and tried against the schema.org/Recipe JSON-LD
// parser before degrading to generic page extraction. Missing data is a
// normal, low-information outcome — strategies degrade to partial results
// instead of failing.
package extractor

// Quality grades how much usable data a strategy produced. Fallback
// decisions key off this tri-state instead of ad-hoc emptiness checks in
// callers.
type Quality int

const (
	// QualityAbsent: the strategy found nothing it recognises.
	QualityAbsent Quality = iota

	// QualityInsufficient: some expected markers were present but the
	// primary payload is missing (e.g. embed page without a caption).
	QualityInsufficient

	// QualitySufficient: the primary payload was extracted.
	QualitySufficient
)

func (q Quality) String() string {
	switch q {
	case QualitySufficient:
		return "sufficient"
	case QualityInsufficient:
		return "insufficient"
	default:
		return "absent"
	}
}
