package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRankRange(t *testing.T) {
	tests := []struct {
		in       string
		expected RankRange
	}{
		{"1-10", Between(1, 10)},
		{" 3 - 5 ", Between(3, 5)},
		{"10-1", Between(10, 1)},
		{"0-5", Between(0, 5)},
		{"1-2-3", Between(1, 2)},
		{"", AllRanks()},
		{"5", AllRanks()},
		{"5-", AllRanks()},
		{"-5", AllRanks()},
		{"-1-5", AllRanks()},
		{"a-b", AllRanks()},
		{"1-x", AllRanks()},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseRankRange(tt.in), tt.in)
	}
}

func TestRankRange_String(t *testing.T) {
	assert.Equal(t, "all", AllRanks().String())
	assert.Equal(t, "2-8", Between(2, 8).String())
	assert.Equal(t, "3-", From(3).String())
	assert.Equal(t, "-4", Through(4).String())
}

func TestRankRange_IsAll(t *testing.T) {
	assert.True(t, AllRanks().IsAll())
	assert.False(t, Between(1, 2).IsAll())
}
