package common

import "testing"

func TestHasAny(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		subs     []string
		expected bool
	}{
		{"first substring matches", "quota exceeded for project", []string{"quota", "limit"}, true},
		{"later substring matches", "rate limit reached", []string{"quota", "limit"}, true},
		{"no match", "connection reset by peer", []string{"quota", "limit"}, false},
		{"empty substring list", "anything", nil, false},
		{"case sensitive", "Quota exceeded", []string{"quota"}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasAny(tc.s, tc.subs...); got != tc.expected {
				t.Errorf("HasAny(%q, %v) = %v, expected %v", tc.s, tc.subs, got, tc.expected)
			}
		})
	}
}
