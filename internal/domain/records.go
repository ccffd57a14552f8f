package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Category string

type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

type Urgency string

const (
	UrgencyHigh   Urgency = "High"
	UrgencyMedium Urgency = "Medium"
	UrgencyLow    Urgency = "Low"
)

type Duration string

const (
	DurationShort  Duration = "Short (< 5 minutes)"
	DurationMedium Duration = "Medium (5-15 minutes)"
	DurationLong   Duration = "Long (> 15 minutes)"
)

// GeneralTopic is reported when no topic keyword matched.
const GeneralTopic = "general"

type AnalysisRecord struct {
	Sentiment        Sentiment `json:"sentiment"`
	DurationEstimate Duration  `json:"duration_estimate"`
	KeyTopics        []string  `json:"key_topics"`
	UrgencyLevel     Urgency   `json:"urgency_level"`
}

type CategoryScore struct {
	Category Category
	Hits     int
}

// CategoryScores keeps one entry per category in lexicon declaration order.
// It encodes as a JSON object whose keys keep that order.
type CategoryScores []CategoryScore

func (s CategoryScores) Get(c Category) int {
	for _, cs := range s {
		if cs.Category == c {
			return cs.Hits
		}
	}
	return 0
}

func (s CategoryScores) Total() int {
	total := 0
	for _, cs := range s {
		total += cs.Hits
	}
	return total
}

func (s CategoryScores) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cs := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(cs.Category))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(cs.Hits))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *CategoryScores) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("category scores: expected object, got %v", tok)
	}
	out := CategoryScores{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("category scores: expected key, got %v", keyTok)
		}
		var hits int
		if err := dec.Decode(&hits); err != nil {
			return fmt.Errorf("category scores %q: %w", key, err)
		}
		out = append(out, CategoryScore{Category: Category(key), Hits: hits})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}

type ClassificationRecord struct {
	PrimaryCategory     Category       `json:"primary_category"`
	CategoryDescription string         `json:"category_description"`
	ConfidenceScore     float64        `json:"confidence_score"`
	AllScores           CategoryScores `json:"all_scores"`
	Recommendation      string         `json:"recommendation"`
}

// Confidence renders the score the way the reports print it: shortest
// decimal form with at least one fractional digit ("50.0", "33.33").
func (c ClassificationRecord) Confidence() string {
	return FormatScore(c.ConfidenceScore)
}

// MarshalJSON writes confidence_score with FormatScore so whole values keep
// their fractional digit (50.0, not 50).
func (c ClassificationRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		PrimaryCategory     Category        `json:"primary_category"`
		CategoryDescription string          `json:"category_description"`
		ConfidenceScore     json.RawMessage `json:"confidence_score"`
		AllScores           CategoryScores  `json:"all_scores"`
		Recommendation      string          `json:"recommendation"`
	}{
		PrimaryCategory:     c.PrimaryCategory,
		CategoryDescription: c.CategoryDescription,
		ConfidenceScore:     json.RawMessage(FormatScore(c.ConfidenceScore)),
		AllScores:           c.AllScores,
		Recommendation:      c.Recommendation,
	})
}

func FormatScore(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

type CustomerInfoRecord struct {
	MentionedServices []string `json:"mentioned_services"`
	IssuesReported    []string `json:"issues_reported"`
	Requests          []string `json:"requests"`
	SentimentMarkers  []string `json:"sentiment_markers"`
}

type CallResult struct {
	Transcript     string
	Strategy       string
	Analysis       AnalysisRecord
	Classification ClassificationRecord
	CustomerInfo   CustomerInfoRecord
	Report         string
}

type HistoryEntry struct {
	ID           int64
	Result       CallResult
	ClassifiedAt time.Time
}

type HistoryStats struct {
	TotalCalls       int
	AvgConfidence    float64
	UniqueCategories int
	CommonSentiment  Sentiment
	CategoryCounts   map[Category]int
	SentimentCounts  map[Sentiment]int
}
