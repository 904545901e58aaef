package search

import (
	"math"
	"sort"
)

// Index is a TF-IDF vector index over course documents.
type Index struct {
	docs    []Document
	idf     map[string]float64
	vectors []map[string]float64
}

// NewIndex builds the index: term frequencies per document weighted by
// smoothed inverse document frequency, L2-normalized.
func NewIndex(docs []Document) *Index {
	n := len(docs)

	df := make(map[string]int)
	tokenized := make([][]string, n)
	for i, doc := range docs {
		tokens := tokenize(doc.Text)
		tokenized[i] = tokens
		for _, term := range uniqueTerms(tokens) {
			df[term]++
		}
	}

	idf := make(map[string]float64, len(df))
	for term, count := range df {
		idf[term] = math.Log(float64(1+n)/float64(1+count)) + 1
	}

	vectors := make([]map[string]float64, n)
	for i, tokens := range tokenized {
		vectors[i] = normalize(vectorize(tokens, idf))
	}

	return &Index{docs: docs, idf: idf, vectors: vectors}
}

// Match is one ranked search result.
type Match struct {
	Document Document
	Score    float64
}

// TopK returns the k documents most similar to the query, best first.
// Documents sharing no terms with the query score zero but are still eligible
// to pad the result when k exceeds the number of overlapping documents.
func (ix *Index) TopK(query string, k int) []Match {
	queryVec := normalize(vectorize(tokenize(query), ix.idf))

	matches := make([]Match, len(ix.docs))
	for i, doc := range ix.docs {
		matches[i] = Match{Document: doc, Score: dot(queryVec, ix.vectors[i])}
	}
	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Score > matches[b].Score
	})

	if k > len(matches) {
		k = len(matches)
	}
	if k < 0 {
		k = 0
	}
	return matches[:k]
}

func uniqueTerms(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	terms := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		terms = append(terms, t)
	}
	return terms
}

func vectorize(tokens []string, idf map[string]float64) map[string]float64 {
	vec := make(map[string]float64)
	for _, t := range tokens {
		weight, known := idf[t]
		if !known {
			continue
		}
		vec[t] += weight
	}
	return vec
}

func normalize(vec map[string]float64) map[string]float64 {
	var sum float64
	for _, w := range vec {
		sum += w * w
	}
	if sum == 0 {
		return vec
	}
	norm := math.Sqrt(sum)
	for t, w := range vec {
		vec[t] = w / norm
	}
	return vec
}

func dot(a, b map[string]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for t, w := range a {
		sum += w * b[t]
	}
	return sum
}
