package models

// Document type and encoding constants for the Natural Language API
const (
	DocumentPlainText = "PLAIN_TEXT"
	EncodingUTF32     = "UTF32"
)

// Document represents the document wrapper sent to the Natural Language API
type Document struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// AnalyzeRequest represents the shared request structure for the analyze endpoints
type AnalyzeRequest struct {
	Document     Document `json:"document"`
	EncodingType string   `json:"encodingType"`
}

// TextSpan represents a span of analyzed text
type TextSpan struct {
	Content     string `json:"content"`
	BeginOffset int    `json:"beginOffset"`
}

// PartOfSpeech represents the grammatical tagging of a token
type PartOfSpeech struct {
	Tag string `json:"tag"`
}

// Token represents a single token from the analyzeSyntax response
type Token struct {
	Text         TextSpan     `json:"text"`
	PartOfSpeech PartOfSpeech `json:"partOfSpeech"`
	Lemma        string       `json:"lemma"`
}

// Sentence represents a single sentence from the analyzeSyntax response
type Sentence struct {
	Text TextSpan `json:"text"`
}

// SyntaxResponse represents the response from the analyzeSyntax endpoint
type SyntaxResponse struct {
	Sentences []Sentence `json:"sentences"`
	Tokens    []Token    `json:"tokens"`
	Language  string     `json:"language"`
}

// Sentiment represents a sentiment score with its magnitude
type Sentiment struct {
	Score     float64 `json:"score"`
	Magnitude float64 `json:"magnitude"`
}

// SentimentResponse represents the response from the analyzeSentiment endpoint
type SentimentResponse struct {
	DocumentSentiment Sentiment `json:"documentSentiment"`
	Language          string    `json:"language"`
}

// ErrorResponse represents the error envelope returned by the API
type ErrorResponse struct {
	Error ErrorStatus `json:"error"`
}

// ErrorStatus represents the status detail inside an API error envelope
type ErrorStatus struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}
