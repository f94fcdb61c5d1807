package practice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/phraseflash/internal/models"
	"github.com/vytor/phraseflash/internal/practice"
)

func eq(v string) models.DiffSpan  { return models.DiffSpan{Type: models.DiffEqual, Value: v} }
func ins(v string) models.DiffSpan { return models.DiffSpan{Type: models.DiffInsert, Value: v} }
func del(v string) models.DiffSpan { return models.DiffSpan{Type: models.DiffDelete, Value: v} }

func TestDiff_EdgeCases(t *testing.T) {
	tests := []struct {
		name      string
		attempt   string
		reference string
		want      []models.DiffSpan
	}{
		{"both empty", "  ", "?!", []models.DiffSpan{}},
		{"empty attempt", "", "  " + coffee + " ", []models.DiffSpan{del(coffee)}},
		{"empty reference", "  hi there ", "", []models.DiffSpan{ins("hi there")}},
		{"equal after normalization", "hello world", "  Hello, World!  ", []models.DiffSpan{eq("Hello, World!")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, practice.Diff(tt.attempt, tt.reference, "en"))
		})
	}
}

func TestDiff_WordBased(t *testing.T) {
	tests := []struct {
		name      string
		attempt   string
		reference string
		want      []models.DiffSpan
	}{
		{
			name:      "missing word",
			attempt:   "I would like to have coffee",
			reference: coffee,
			want:      []models.DiffSpan{eq("I would like to have "), del("a "), eq("coffee")},
		},
		{
			name:      "substituted word prefers delete last",
			attempt:   "I like tea",
			reference: "I like coffee",
			want:      []models.DiffSpan{eq("I like "), ins("tea "), del("coffee")},
		},
		{
			name:      "reference casing and punctuation kept",
			attempt:   "i LIKE tea",
			reference: "I like Coffee.",
			want:      []models.DiffSpan{eq("I like "), ins("tea "), del("Coffee.")},
		},
		{
			name:      "extra word at end",
			attempt:   "good morning everyone",
			reference: "Good morning",
			want:      []models.DiffSpan{eq("Good morning "), ins("everyone")},
		},
		{
			name:      "bare punctuation rides with previous word",
			attempt:   "hello there world",
			reference: "Hello , world",
			want:      []models.DiffSpan{eq("Hello , "), ins("there "), eq("world")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, practice.Diff(tt.attempt, tt.reference, "en"))
		})
	}
}

func TestDiff_CharacterBased(t *testing.T) {
	got := practice.Diff("私は先生です", "私は学生です。", "ja")
	assert.Equal(t, []models.DiffSpan{eq("私は"), ins("先"), del("学"), eq("生です。")}, got)

	got = practice.Diff("abd", "ABC", "ja")
	assert.Equal(t, []models.DiffSpan{eq("AB"), ins("d"), del("C")}, got)
}

func TestDiff_MissingLanguageIsCharacterBased(t *testing.T) {
	want := []models.DiffSpan{eq("こんにち"), ins("わ"), del("は")}
	assert.Equal(t, want, practice.Diff("こんにちわ", "こんにちは", ""))
	assert.Equal(t, want, practice.Diff("こんにちわ", "こんにちは", "ja"))
}

func TestDiff_InsertSpansDoNotPanic(t *testing.T) {
	inputs := [][2]string{
		{"extra words here", "words"},
		{"x", "y"},
		{"abc", ""},
		{"a b c d e f", "f e d c b a"},
		{"!!! hello ???", "bye"},
	}
	for _, lang := range []string{"", "en", "ja"} {
		for _, in := range inputs {
			assert.NotPanics(t, func() { practice.Diff(in[0], in[1], lang) }, "%q vs %q lang=%q", in[0], in[1], lang)
		}
	}
}

func TestAligner_Granularity(t *testing.T) {
	a := practice.NewAligner()
	tests := []struct {
		lang string
		want practice.Granularity
	}{
		{"ja", practice.CharacterBased},
		{"JA", practice.CharacterBased},
		{"ja-JP", practice.CharacterBased},
		{"zh-Hant", practice.CharacterBased},
		{"th", practice.CharacterBased},
		{"en", practice.WordBased},
		{"es-419", practice.WordBased},
		{"", practice.CharacterBased},
		{"  ", practice.CharacterBased},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Granularity(tt.lang))
		})
	}

	custom := practice.NewAligner("ko")
	assert.Equal(t, practice.CharacterBased, custom.Granularity("ko-KR"))
	assert.Equal(t, practice.WordBased, custom.Granularity("ja"))
}

func TestDiff_Reconstruction(t *testing.T) {
	tests := []struct {
		attempt   string
		reference string
		lang      string
	}{
		{"I would like to have coffee", coffee, "en"},
		{"I would love a tea please", coffee, "en"},
		{"to have a coffee I would like", coffee, "en"},
		{"Where is the station", "Excuse me, where is the train station?", "en"},
		{"私は先生です", "私は学生です。", "ja"},
		{"我喜欢喝咖啡", "我很喜欢喝茶。", "zh"},
		{"สวัสดีครับ", "สวัสดีค่ะ", "th"},
		{"it is, a test", "It's a test, right?", "ja"},
	}

	for _, tt := range tests {
		t.Run(tt.attempt, func(t *testing.T) {
			spans := practice.Diff(tt.attempt, tt.reference, tt.lang)

			var ref, att strings.Builder
			for _, s := range spans {
				if s.Type != models.DiffInsert {
					ref.WriteString(s.Value)
				}
				if s.Type != models.DiffDelete {
					att.WriteString(s.Value)
				}
			}

			assert.Equal(t, strings.TrimSpace(tt.reference), strings.TrimSpace(ref.String()))
			assert.Equal(t, practice.Normalize(tt.attempt), practice.Normalize(att.String()))
		})
	}
}

func TestDiff_AdjacentSpansAlternate(t *testing.T) {
	spans := practice.Diff("one two three four", "one too three for", "en")
	for i := 1; i < len(spans); i++ {
		assert.NotEqual(t, spans[i-1].Type, spans[i].Type)
	}
}
