package post

import "regexp"

// Tone is a coarse per-post tone classification. The community-level
// dominant tone is the mode across a sample.
type Tone string

const (
	ToneCasual     Tone = "casual"
	ToneTechnical  Tone = "technical"
	ToneSupportive Tone = "supportive"
	ToneNeutral    Tone = "neutral"
)

// Tone lexicons. Votes are counted per family; the family with the most
// votes wins, ties resolved in declaration order below.
var (
	technicalToneRegex = regexp.MustCompile("(?i)\\b(api|database|server|deploy|deployment|bug|latency|algorithm|config|backend|frontend|schema|query|cache|docker|kubernetes|compile|runtime|benchmark)\\b|```")

	supportiveToneRegex = regexp.MustCompile(`(?i)\b(thanks|thank you|grateful|congrats|congratulations|proud of|good luck|hope this helps|happy to help|you got this|hang in there|appreciate)\b`)

	casualToneRegex = regexp.MustCompile(`(?i)\b(lol|lmao|haha+|gonna|wanna|gotta|kinda|tbh|honestly|btw|yeah|nah|dude|folks|pretty much)\b|!{2,}`)
)

// toneOrder fixes tie-breaking so classification is deterministic.
var toneOrder = []struct {
	tone Tone
	re   *regexp.Regexp
}{
	{ToneCasual, casualToneRegex},
	{ToneTechnical, technicalToneRegex},
	{ToneSupportive, supportiveToneRegex},
}

// Classify returns the tone of a single post. Texts with no lexicon hits
// are neutral.
func Classify(text string) Tone {
	best := ToneNeutral
	bestVotes := 0
	for _, entry := range toneOrder {
		votes := len(entry.re.FindAllString(text, -1))
		if votes > bestVotes {
			best = entry.tone
			bestVotes = votes
		}
	}
	return best
}
