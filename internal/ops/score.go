package ops

import (
	"github.com/quenchwood/blend/internal/post"
)

// ScoreInput carries the text to score.
type ScoreInput struct {
	Text string `json:"text"`
}

// ScoreOutput returns the feature vector plus the matched link and jargon details.
type ScoreOutput struct {
	Scores post.Scored `json:"scores"`
	Links  []string    `json:"links,omitempty"`
	Jargon []string    `json:"jargon,omitempty"`
}

// Score runs the feature scorer on a single text without touching storage.
// Useful for inspecting why a post scores the way it does. Total on any
// input: empty text yields the scorer's zero-feature vector.
func Score(input ScoreInput) (*ScoreOutput, error) {
	return &ScoreOutput{
		Scores: post.Score(input.Text),
		Links:  post.ExtractLinks(input.Text),
		Jargon: post.JargonHits(input.Text),
	}, nil
}
