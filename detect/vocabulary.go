package detect

// VocabularyVersion tracks revisions to the sponsorship marker table so the
// vocabulary can evolve independently of the detection algorithm.
const VocabularyVersion = 1

// SponsorHashtags are hashtag literals that mark a post as sponsored
// content. Matching is substring-based over the lowercased caption plus
// hashtag text, and every literal that matches is recorded as its own
// signal.
var SponsorHashtags = []string{
	"#ad",
	"#sponsored",
	"#gifted",
	"#paid",
	"#partner",
	"#brandpartner",
	"#brandambassador",
	"#collab",
	"#werbung",
	"#anzeige",
	"#pub",
	"#publicite",
	"#prpackage",
}

// SponsorPhrases are free-text disclosure phrases, including the common
// "ad |" / "| ad" caption prefix pattern.
var SponsorPhrases = []string{
	"paid partnership",
	"sponsored by",
	"gifted by",
	"in collaboration with",
	"in kooperation mit",
	"ad |",
	"| ad",
}
