package embedding

import "testing"

func TestSimpleTokenizer(t *testing.T) {
	tok := &SimpleTokenizer{}
	inputIDs, attentionMask, tokenTypeIDs := tok.Tokenize("hello world", 8)
	if len(inputIDs) != 8 || len(attentionMask) != 8 || len(tokenTypeIDs) != 8 {
		t.Fatalf("lengths: %d %d %d, want 8", len(inputIDs), len(attentionMask), len(tokenTypeIDs))
	}
	if inputIDs[0] != 101 {
		t.Errorf("expected [CLS] at position 0, got %d", inputIDs[0])
	}
	if attentionMask[0] != 1 || attentionMask[1] != 1 || attentionMask[2] != 1 {
		t.Errorf("attention mask should cover CLS and two words: %v", attentionMask)
	}
	if inputIDs[3] != 102 {
		t.Errorf("expected [SEP] after last word, got %d", inputIDs[3])
	}
}

func TestSimpleTokenizer_Deterministic(t *testing.T) {
	tok := &SimpleTokenizer{}
	a, _, _ := tok.Tokenize("quanto tenho na conta", 16)
	b, _, _ := tok.Tokenize("quanto tenho na conta", 16)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("tokenization not deterministic at %d: %d != %d", i, a[i], b[i])
		}
	}
}

func TestSplitWords(t *testing.T) {
	words := SplitWords("  hello\tworld\nfoo  ")
	if len(words) != 3 || words[0] != "hello" || words[2] != "foo" {
		t.Errorf("SplitWords: got %v", words)
	}
	if got := SplitWords(""); len(got) != 0 {
		t.Errorf("empty input: got %v", got)
	}
}

func TestHashString_NonNegative(t *testing.T) {
	for _, s := range []string{"", "a", "depósito", "ずっと", "a very long string to overflow the hash"} {
		if HashString(s) < 0 {
			t.Errorf("HashString(%q) is negative", s)
		}
	}
}
