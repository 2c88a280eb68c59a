package isodate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{in: "2017-03-01", want: time.Date(2017, 3, 1, 0, 0, 0, 0, time.UTC), ok: true},
		{in: " 2017-03-01T10:20:30 ", want: time.Date(2017, 3, 1, 10, 20, 30, 0, time.UTC), ok: true},
		{in: "2017-03-01T10:20:30.5Z", want: time.Date(2017, 3, 1, 10, 20, 30, 500000000, time.UTC), ok: true},
		{in: "2017-03-01T10:20:30-02:00", want: time.Date(2017, 3, 1, 12, 20, 30, 0, time.UTC), ok: true},
		{in: "2017-03", want: time.Date(2017, 3, 1, 0, 0, 0, 0, time.UTC), ok: true},
		{in: "", ok: false},
		{in: "yesterday", ok: false},
	}
	for _, tc := range cases {
		got, ok := Parse(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		if tc.ok {
			assert.True(t, tc.want.Equal(got), "input %q: got %v", tc.in, got)
			assert.Equal(t, time.UTC, got.Location())
		}
	}
	assert.Nil(t, ParsePtr("nope"))
}
