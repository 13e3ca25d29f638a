// Package detect decides whether a social post is sponsored content, which
// brand handles are implicated, and with what confidence.
package detect

import (
	"strings"

	"github.com/okabrink/creator-scout/posts"
)

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Signal names for the structural heuristics. Keyword matches are recorded
// under their literal text instead.
const (
	SignalPaidPartnershipLabel = "paid_partnership_label"
	SignalTaggedInPost         = "tagged_in_post"
	SignalMentionedInCaption   = "mentioned_in_caption"
)

// Result is the per-post detection outcome. BrandHandles never contains the
// post's own owner handle.
type Result struct {
	BrandHandles []string
	Signals      []string
	Confidence   Confidence
	Sponsored    bool
}

// Detect examines a single post and extracts sponsorship signals. A post
// with no caption, tags, or partnership fields yields an empty
// low-confidence result rather than an error.
func Detect(post posts.Post) Result {
	owner := posts.NormalizeHandle(post.OwnerHandle)

	brands := newOrderedSet()
	signals := newOrderedSet()

	// Platform-native paid-partnership disclosures carry the most trust.
	if len(post.PartnershipHandles) > 0 {
		for _, h := range post.PartnershipHandles {
			if handle := posts.NormalizeHandle(h); handle != "" && handle != owner {
				brands.add(handle)
			}
		}
		signals.add(SignalPaidPartnershipLabel)
	}

	for _, h := range post.TaggedAccounts {
		if handle := posts.NormalizeHandle(h); handle != "" && handle != owner {
			brands.add(handle)
			signals.add(SignalTaggedInPost)
		}
	}

	for _, handle := range posts.ExtractMentions(post.Caption) {
		if handle != owner {
			brands.add(handle)
			signals.add(SignalMentionedInCaption)
		}
	}

	sponsored := scanKeywords(post, signals)

	return Result{
		BrandHandles: brands.values(),
		Signals:      signals.values(),
		Confidence:   rankConfidence(signals, sponsored),
		Sponsored:    sponsored,
	}
}

// Annotate runs detection and writes the sponsorship outcome back onto the
// mapped post, so enrichment can consume it without re-running detection.
func Annotate(post *posts.Post) Result {
	result := Detect(*post)
	post.Sponsored = result.Sponsored
	post.SponsorSignals = result.Signals
	post.DetectedBrands = result.BrandHandles
	return result
}

// scanKeywords matches the sponsorship vocabulary against the caption plus
// hashtag text and records every matching literal as a signal.
func scanKeywords(post posts.Post, signals *orderedSet) bool {
	var sb strings.Builder
	sb.WriteString(post.Caption)
	for _, tag := range post.Hashtags {
		sb.WriteString(" #")
		sb.WriteString(tag)
	}
	text := strings.ToLower(sb.String())

	sponsored := false
	for _, literal := range SponsorHashtags {
		if strings.Contains(text, literal) {
			signals.add(literal)
			sponsored = true
		}
	}
	for _, literal := range SponsorPhrases {
		if strings.Contains(text, literal) {
			signals.add(literal)
			sponsored = true
		}
	}
	return sponsored
}

// rankConfidence applies the triage precedence, first match wins. Note that
// keyword signals alone never reach high without a tag or mention; product
// has been asked to confirm whether that conservatism is intended.
func rankConfidence(signals *orderedSet, sponsored bool) Confidence {
	tagged := signals.has(SignalTaggedInPost)
	mentioned := signals.has(SignalMentionedInCaption)

	switch {
	case signals.has(SignalPaidPartnershipLabel):
		return ConfidenceHigh
	case tagged && mentioned:
		return ConfidenceHigh
	case sponsored && (tagged || mentioned):
		return ConfidenceHigh
	case tagged || mentioned:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

type orderedSet struct {
	seen   map[string]bool
	sorted []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]bool)}
}

func (s *orderedSet) add(v string) {
	if !s.seen[v] {
		s.seen[v] = true
		s.sorted = append(s.sorted, v)
	}
}

func (s *orderedSet) has(v string) bool {
	return s.seen[v]
}

func (s *orderedSet) values() []string {
	if s.sorted == nil {
		return []string{}
	}
	return s.sorted
}
