package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TokenStat represents the aggregated statistics for one distinct token
type TokenStat struct {
	Part  string `json:"part"`
	Count int    `json:"count"`
}

// SyntaxResult represents the persisted outcome of a syntax analysis
type SyntaxResult struct {
	Sentences  int       `json:"sentences"`
	TokenCount int       `json:"token_count"`
	Tokens     *TokenMap `json:"tokens"`
}

// SentimentResult represents the persisted outcome of a sentiment analysis
type SentimentResult struct {
	Score     float64 `json:"score"`
	Magnitude float64 `json:"magnitude"`
}

// BlobResult represents the full analysis of a single text blob
type BlobResult struct {
	Original  string           `json:"original"`
	Syntax    *SyntaxResult    `json:"syntax"`
	Sentiment *SentimentResult `json:"sentiment"`
}

// TokenMap maps distinct token text to its statistics while remembering
// insertion order. encoding/json would serialize a plain map with sorted
// keys, which destroys the count-descending order readers rely on, so this
// type carries the order through marshal and unmarshal.
type TokenMap struct {
	keys  []string
	stats map[string]TokenStat
}

// NewTokenMap creates an empty token map
func NewTokenMap() *TokenMap {
	return &TokenMap{stats: make(map[string]TokenStat)}
}

// Set stores stat under token. A new token is appended to the order; an
// existing one keeps its position.
func (m *TokenMap) Set(token string, stat TokenStat) {
	if m.stats == nil {
		m.stats = make(map[string]TokenStat)
	}
	if _, ok := m.stats[token]; !ok {
		m.keys = append(m.keys, token)
	}
	m.stats[token] = stat
}

// Get returns the statistics stored for token
func (m *TokenMap) Get(token string) (TokenStat, bool) {
	stat, ok := m.stats[token]
	return stat, ok
}

// Len returns the number of distinct tokens
func (m *TokenMap) Len() int {
	return len(m.keys)
}

// Keys returns the tokens in stored order
func (m *TokenMap) Keys() []string {
	return m.keys
}

// MarshalJSON writes the entries as a JSON object in stored order
func (m *TokenMap) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(m.stats[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, keeping the key order of the document
func (m *TokenMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("tokens: expected object, got %v", tok)
	}
	m.keys = nil
	m.stats = make(map[string]TokenStat)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("tokens: expected string key, got %v", keyTok)
		}
		var stat TokenStat
		if err := dec.Decode(&stat); err != nil {
			return err
		}
		m.Set(key, stat)
	}
	_, err = dec.Token()
	return err
}
