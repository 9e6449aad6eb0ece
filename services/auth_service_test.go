package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRejectByBlacklist(t *testing.T) {
	tests := []struct {
		name        string
		blacklisted bool
		lookupErr   error
		want        bool
	}{
		{name: "clean token passes", blacklisted: false, lookupErr: nil, want: false},
		{name: "blacklisted token rejects", blacklisted: true, lookupErr: nil, want: true},
		{name: "lookup error fails open", blacklisted: false, lookupErr: assert.AnError, want: false},
		{name: "lookup error fails open even with stale hit", blacklisted: true, lookupErr: assert.AnError, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RejectByBlacklist(tc.blacklisted, tc.lookupErr))
		})
	}
}
