package gst

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateCode_Name(t *testing.T) {
	tests := []struct {
		name string
		code StateCode
		want string
	}{
		{"maharashtra", "27", "Maharashtra"},
		{"jammu and kashmir", "01", "Jammu and Kashmir"},
		{"ladakh", "38", "Ladakh"},
		{"delhi", "07", "Delhi"},
		{"unknown numeric code", "99", UnknownStateName},
		{"empty code", "", UnknownStateName},
		{"garbage code", "XX", UnknownStateName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.Name())
		})
	}
}

func TestStateCode_IsKnown(t *testing.T) {
	assert.True(t, StateCode("27").IsKnown())
	assert.True(t, StateCode("01").IsKnown())
	assert.False(t, StateCode("99").IsKnown())
	assert.False(t, StateCode("").IsKnown())
}
