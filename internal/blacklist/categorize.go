package blacklist

import "regexp"

// Keyword families, checked in order. The first family whose regex matches
// decides the category; phrases that match nothing fall back to LowEffort.
var families = []struct {
	category Category
	re       *regexp.Regexp
}{
	{CategoryPromotional, regexp.MustCompile(`(?i)\b(affiliate link|discount code|coupon|promo code|use code|check out my|special offer|limited time|free trial|sign up (now|today)|buy now|act now|order now|dm me|early access|get \d+% off)\b`)},
	{CategorySelfReferential, regexp.MustCompile(`(?i)\b(my (product|tool|startup|company|app|service|business)|i built|i made a|our platform)\b`)},
	{CategoryLink, regexp.MustCompile(`(?i)(bit\.ly/|tinyurl\.com/|goo\.gl/|\?utm_|\?ref=|https?://|www\.|\b[a-z0-9-]+\.(io|com|co|net|app|dev|ai)\b)`)},
	{CategorySpam, regexp.MustCompile(`(?i)(!{3,}|\b[A-Z]{2,}(\s+[A-Z]{2,}){3,}\b|winner|guaranteed|100% free)`)},
	{CategoryOffTopic, regexp.MustCompile(`(?i)\b(click here|clickbait|you won'?t believe|shocking)\b`)},
	{CategoryLowEffort, regexp.MustCompile(`(?i)\b(thoughts\?|any feedback\?|what do you think\?)\b`)},
}

// Categorize assigns a keyword-family category to a phrase. The boolean
// reports whether any family actually matched; callers mining candidate
// patterns use it to decide whether an unmatched phrase is worth keeping.
func Categorize(phrase string) (Category, bool) {
	for _, f := range families {
		if f.re.MatchString(phrase) {
			return f.category, true
		}
	}
	return CategoryLowEffort, false
}
