package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeKeyword(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"  Окна   ПВХ!!  ", "окна пвх"},
		{"Plastic Windows", "plastic windows"},
		{"UPPER-case.keyword", "upper-case.keyword"},
		{"tabs\t\tand   spaces", "tabs and spaces"},
		{"цена 3000 руб?", "цена 3000 руб"},
		{"ёжик в тумане", "ёжик в тумане"},
		{"@#$%", ""},
		{"", ""},
	}
	for _, c := range cases {
		require.Equal(t, c.want, NormalizeKeyword(c.input), "input: %q", c.input)
	}
}

func TestNormalizeKeywordIdempotent(t *testing.T) {
	inputs := []string{
		"  Окна   ПВХ!!  ",
		"already normalized",
		"ремонт квартир - недорого",
	}
	for _, input := range inputs {
		once := NormalizeKeyword(input)
		require.Equal(t, once, NormalizeKeyword(once))
	}
}
