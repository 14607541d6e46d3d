package cmd

import (
	"testing"

	"github.com/theirongolddev/filmdesk/internal/export"
)

func TestExportKinds(t *testing.T) {
	tests := []struct {
		args    []string
		want    []export.Kind
		wantErr bool
	}{
		{args: nil, want: nil},
		{args: []string{"all"}, want: nil},
		{args: []string{"movies", "actors"}, want: []export.Kind{export.Movies, export.Actors}},
		{args: []string{"actors", "all"}, want: nil},
		{args: []string{"budgets"}, wantErr: true},
	}

	for _, tt := range tests {
		got, err := exportKinds(tt.args)
		if (err != nil) != tt.wantErr {
			t.Fatalf("exportKinds(%v) err = %v, wantErr %v", tt.args, err, tt.wantErr)
		}
		if len(got) != len(tt.want) {
			t.Fatalf("exportKinds(%v) = %v, want %v", tt.args, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("exportKinds(%v)[%d] = %s, want %s", tt.args, i, got[i], tt.want[i])
			}
		}
	}
}
