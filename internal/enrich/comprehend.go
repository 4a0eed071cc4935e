package enrich

import (
	"context"
	"log/slog"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/comprehend"
	ctypes "github.com/aws/aws-sdk-go-v2/service/comprehend/types"
)

const (
	// minTextLength is the shortest text worth sending to Comprehend.
	minTextLength = 10
	// maxTextBytes is the Comprehend single-document size limit.
	maxTextBytes = 5000
)

// KeyPhrase is a detected phrase with its confidence score (0-1).
type KeyPhrase struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// Entity is a detected named entity with its type and confidence.
type Entity struct {
	Text  string  `json:"text"`
	Type  string  `json:"type"`
	Score float64 `json:"score"`
}

// Sentiment holds the overall classification and per-class scores.
type Sentiment struct {
	Overall  string  `json:"overall"`
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
	Mixed    float64 `json:"mixed"`
}

// Insights is the enrichment result. The zero value (all empty) is valid
// and is what every downstream consumer receives when enrichment is
// disabled or fails.
type Insights struct {
	KeyPhrases []KeyPhrase `json:"key_phrases"`
	Sentiment  Sentiment   `json:"sentiment"`
	Entities   []Entity    `json:"entities"`
}

// ComprehendAPI is the minimal interface for the Comprehend operations the
// enricher needs.
type ComprehendAPI interface {
	DetectKeyPhrases(ctx context.Context, input *comprehend.DetectKeyPhrasesInput, opts ...func(*comprehend.Options)) (*comprehend.DetectKeyPhrasesOutput, error)
	DetectSentiment(ctx context.Context, input *comprehend.DetectSentimentInput, opts ...func(*comprehend.Options)) (*comprehend.DetectSentimentOutput, error)
	DetectEntities(ctx context.Context, input *comprehend.DetectEntitiesInput, opts ...func(*comprehend.Options)) (*comprehend.DetectEntitiesOutput, error)
}

// Client runs NLP analysis over report text.
type Client struct {
	api ComprehendAPI
}

// NewClient creates an enrichment client from an AWS config.
func NewClient(cfg awssdk.Config) *Client {
	return &Client{api: comprehend.NewFromConfig(cfg)}
}

// NewClientFromAPI creates a client with an injected API, for tests.
func NewClientFromAPI(api ComprehendAPI) *Client {
	return &Client{api: api}
}

// AnalyzeText runs key phrase, sentiment, and entity detection over text.
// Each detection failure degrades to an empty result with a warning; the
// call never fails the run.
func (c *Client) AnalyzeText(ctx context.Context, text string) Insights {
	var insights Insights

	if len(text) < minTextLength {
		slog.Warn("Text too short for enrichment, skipping")
		return insights
	}

	if len(text) > maxTextBytes {
		text = text[:maxTextBytes]
		slog.Debug("Truncated text for enrichment", "bytes", maxTextBytes)
	}

	input := awssdk.String(text)

	kp, err := c.api.DetectKeyPhrases(ctx, &comprehend.DetectKeyPhrasesInput{
		Text:         input,
		LanguageCode: ctypes.LanguageCodeEn,
	})
	if err != nil {
		slog.Warn("Key phrase detection failed", "error", err)
	} else {
		for _, p := range kp.KeyPhrases {
			insights.KeyPhrases = append(insights.KeyPhrases, KeyPhrase{
				Text:  awssdk.ToString(p.Text),
				Score: float64(awssdk.ToFloat32(p.Score)),
			})
		}
	}

	sent, err := c.api.DetectSentiment(ctx, &comprehend.DetectSentimentInput{
		Text:         input,
		LanguageCode: ctypes.LanguageCodeEn,
	})
	if err != nil {
		slog.Warn("Sentiment detection failed", "error", err)
	} else {
		insights.Sentiment.Overall = string(sent.Sentiment)
		if s := sent.SentimentScore; s != nil {
			insights.Sentiment.Positive = float64(awssdk.ToFloat32(s.Positive))
			insights.Sentiment.Negative = float64(awssdk.ToFloat32(s.Negative))
			insights.Sentiment.Neutral = float64(awssdk.ToFloat32(s.Neutral))
			insights.Sentiment.Mixed = float64(awssdk.ToFloat32(s.Mixed))
		}
	}

	ent, err := c.api.DetectEntities(ctx, &comprehend.DetectEntitiesInput{
		Text:         input,
		LanguageCode: ctypes.LanguageCodeEn,
	})
	if err != nil {
		slog.Warn("Entity detection failed", "error", err)
	} else {
		for _, e := range ent.Entities {
			insights.Entities = append(insights.Entities, Entity{
				Text:  awssdk.ToString(e.Text),
				Type:  string(e.Type),
				Score: float64(awssdk.ToFloat32(e.Score)),
			})
		}
	}

	slog.Info("Enrichment complete",
		"key_phrases", len(insights.KeyPhrases),
		"entities", len(insights.Entities),
		"sentiment", insights.Sentiment.Overall)

	return insights
}
