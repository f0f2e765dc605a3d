package quantity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"7 plates", 7},
		{"abc", 0},
		{"12", 12},
		{"  3   kg dal", 3},
		{"4.5 plates", 0},
		{"-2", -2},
		{"plates 7", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Parse(tc.in), "Parse(%q)", tc.in)
	}
}
