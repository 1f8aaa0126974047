package post

import "regexp"

// Regex families are compiled once at package level. All scoring is a pure
// function of these tables; changing a table is a versioned configuration
// change, not a runtime decision.

// vulnerabilityPatterns detect personal/authentic framing: first-person
// pronouns, questions, emotional-state words, storytelling signals.
var vulnerabilityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(I|my|me|we|our|us)\b`),
	regexp.MustCompile(`[?]`),
	regexp.MustCompile(`(?i)\b(struggled|frustrated|confused|worried|concerned)\b`),
	regexp.MustCompile(`(?i)\b(story|journey|experience|learned|realized)\b`),
}

// jargonPatterns is the marketing/promotional lexicon.
var jargonPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bsynerg\w*\b`),
	regexp.MustCompile(`(?i)\bleverage\b`),
	regexp.MustCompile(`(?i)\bparadigm\b`),
	regexp.MustCompile(`(?i)\bdisrupt\w*\b`),
	regexp.MustCompile(`(?i)\binnovate\w*\b`),
	regexp.MustCompile(`(?i)\bgame-changer\b`),
	regexp.MustCompile(`(?i)\bthought leader\b`),
	regexp.MustCompile(`(?i)\bbest-in-class\b`),
	regexp.MustCompile(`(?i)\breach out\b`),
	regexp.MustCompile(`(?i)\bcircle back\b`),
	regexp.MustCompile(`(?i)\btouch base\b`),
	regexp.MustCompile(`(?i)\brevolutionary\b`),
	regexp.MustCompile(`(?i)\bcutting-edge\b`),
	regexp.MustCompile(`(?i)\bscalable\b`),
	regexp.MustCompile(`\bROI\b`),
	regexp.MustCompile(`(?i)\bgrowth hack\w*\b`),
}

// urlRegex matches bare URLs and www-style references.
var urlRegex = regexp.MustCompile(`(?i)https?://\S+|www\.\S+`)

// contractionRegex matches common English contractions, a casualness signal.
var contractionRegex = regexp.MustCompile(`(?i)\b\w+(?:n't|'re|'ll|'ve|'m|'d)\b`)

// casualMarkerRegex matches informal register markers.
var casualMarkerRegex = regexp.MustCompile(`(?i)\b(lol|lmao|haha+|gonna|wanna|gotta|kinda|sorta|tbh|imo|imho|btw|yeah|nah|stuff|dunno)\b`)

// passiveRegex is a rough passive-voice detector: auxiliary + -ed/-en form.
var passiveRegex = regexp.MustCompile(`(?i)\b(was|were|been|being|is|are)\s+\w+(?:ed|en)\b`)

// longWordLen is the threshold for "formal register" vocabulary.
const longWordLen = 7

// sentenceSplitRegex splits text into sentences on terminal punctuation.
var sentenceSplitRegex = regexp.MustCompile(`[.!?]+`)
