package main

import (
	"reflect"
	"testing"
)

func TestRewriteListingLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"studhub"},
			want: []string{"studhub"},
		},
		{
			name: "listing id first token",
			in:   []string{"studhub", "lst-0a1b2c3d4e5f"},
			want: []string{"studhub", "listings", "show", "lst-0a1b2c3d4e5f"},
		},
		{
			name: "listing id after value flag",
			in:   []string{"studhub", "--dir", "./data", "lst-0a1b2c3d4e5f"},
			want: []string{"studhub", "--dir", "./data", "listings", "show", "lst-0a1b2c3d4e5f"},
		},
		{
			name: "listing id after equals flag",
			in:   []string{"studhub", "--format=yaml", "lst-0a1b2c3d4e5f"},
			want: []string{"studhub", "--format=yaml", "listings", "show", "lst-0a1b2c3d4e5f"},
		},
		{
			name: "listing id after bool flag",
			in:   []string{"studhub", "--pretty", "lst-0a1b2c3d4e5f"},
			want: []string{"studhub", "--pretty", "listings", "show", "lst-0a1b2c3d4e5f"},
		},
		{
			name: "listing id after double dash",
			in:   []string{"studhub", "--", "lst-0a1b2c3d4e5f"},
			want: []string{"studhub", "--", "listings", "show", "lst-0a1b2c3d4e5f"},
		},
		{
			name: "subcommand untouched",
			in:   []string{"studhub", "search", "lst-0a1b2c3d4e5f"},
			want: []string{"studhub", "search", "lst-0a1b2c3d4e5f"},
		},
		{
			name: "bare prefix is not an id",
			in:   []string{"studhub", "lst-"},
			want: []string{"studhub", "lst-"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteListingLookupArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v want %v", got, tt.want)
			}
		})
	}
}
