package tokenize

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	var tokens []string
	for token := range Tokenize("Well, what a sunny day!") {
		tokens = append(tokens, token)
	}
	want := []string{"Well", "what", "a", "sunny", "day"}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("Tokenize: got %v, want %v", tokens, want)
	}
}

func TestFragmentsGrouping(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		words int
		want  []string
	}{
		{
			name:  "three word chunks",
			text:  "the quick brown fox jumps over the lazy dog",
			words: 3,
			want:  []string{"THEQUICKBROWN", "FOXJUMPSOVER", "THELAZYDOG"},
		},
		{
			name:  "short and digit tokens dropped",
			text:  "an 42 owl flew by 7 mice",
			words: 2,
			want:  []string{"OWLFLEW", "MICE"},
		},
		{
			name:  "no usable tokens",
			text:  "a b 1 2 3",
			words: 3,
			want:  []string{" "},
		},
		{
			name:  "default chunk size on zero",
			text:  "alpha beta gamma delta",
			words: 0,
			want:  []string{"ALPHABETAGAMMA", "DELTA"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fragments(tt.text, tt.words, false)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Fragments(%q, %d) = %v, want %v", tt.text, tt.words, got, tt.want)
			}
		})
	}
}

func TestFragmentsStemming(t *testing.T) {
	got := Fragments("running runner", 1, true)
	want := []string{"RUN", "RUNNER"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Fragments with stemming = %v, want %v", got, want)
	}
}
