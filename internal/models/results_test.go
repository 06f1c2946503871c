package models

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestTokenMapMarshalKeepsInsertionOrder(t *testing.T) {
	m := NewTokenMap()
	m.Set("zebra", TokenStat{Part: "NOUN", Count: 3})
	m.Set("apple", TokenStat{Part: "NOUN", Count: 2})
	m.Set("mango", TokenStat{Part: "NOUN", Count: 1})

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got := string(data)
	zebra := strings.Index(got, `"zebra"`)
	apple := strings.Index(got, `"apple"`)
	mango := strings.Index(got, `"mango"`)
	if zebra == -1 || apple == -1 || mango == -1 {
		t.Fatalf("missing keys in %s", got)
	}
	if !(zebra < apple && apple < mango) {
		t.Errorf("keys reordered: %s", got)
	}
}

func TestTokenMapRoundTrip(t *testing.T) {
	m := NewTokenMap()
	m.Set("the", TokenStat{Part: "DET", Count: 5})
	m.Set("walrus", TokenStat{Part: "NOUN", Count: 2})
	m.Set(".", TokenStat{Part: "PUNCT", Count: 2})

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back TokenMap
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !reflect.DeepEqual(back.Keys(), m.Keys()) {
		t.Errorf("key order changed: got %v, want %v", back.Keys(), m.Keys())
	}
	for _, key := range m.Keys() {
		want, _ := m.Get(key)
		got, ok := back.Get(key)
		if !ok || got != want {
			t.Errorf("stat for %q: got %+v, want %+v", key, got, want)
		}
	}
}

func TestTokenMapSetKeepsPositionOnOverwrite(t *testing.T) {
	m := NewTokenMap()
	m.Set("a", TokenStat{Part: "X", Count: 1})
	m.Set("b", TokenStat{Part: "X", Count: 1})
	m.Set("a", TokenStat{Part: "X", Count: 2})

	if want := []string{"a", "b"}; !reflect.DeepEqual(m.Keys(), want) {
		t.Errorf("keys: got %v, want %v", m.Keys(), want)
	}
	if stat, _ := m.Get("a"); stat.Count != 2 {
		t.Errorf("count: got %d, want 2", stat.Count)
	}
}

func TestTokenMapNilMarshalsAsNull(t *testing.T) {
	result := SyntaxResult{Sentences: 0, TokenCount: 0}
	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"tokens":null`) {
		t.Errorf("nil token map should encode as null, got %s", data)
	}
}

func TestTokenMapUnmarshalRejectsNonObject(t *testing.T) {
	var m TokenMap
	if err := json.Unmarshal([]byte(`[1,2]`), &m); err == nil {
		t.Error("expected error for array input")
	}
}

func TestBlobResultFieldNames(t *testing.T) {
	blob := BlobResult{Original: "Hi"}
	data, err := json.Marshal(blob)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"original", "syntax", "sentiment"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("missing field %q in %s", key, data)
		}
	}
	if len(fields) != 3 {
		t.Errorf("expected exactly 3 fields, got %d: %s", len(fields), data)
	}
}
