package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyaneshwarpardhi/behaviour/internal/event"
)

func TestParseDraft(t *testing.T) {
	cases := []struct {
		in   string
		want event.Draft
	}{
		{"positive:Health:2", event.Draft{Type: event.Positive, Category: "Health", Points: 2}},
		{"Negative: Snacks : 3:crisps", event.Draft{Type: event.Negative, Category: "Snacks", Points: 3, Notes: "crisps"}},
		{"positive:Work:1:call at 10:30", event.Draft{Type: event.Positive, Category: "Work", Points: 1, Notes: "call at 10:30"}},
		{"::0", event.Draft{}},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseDraft(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseDraftErrors(t *testing.T) {
	for _, in := range []string{"", "positive:Health", "positive:Health:lots"} {
		_, err := parseDraft(in)
		assert.Error(t, err, in)
	}
}
