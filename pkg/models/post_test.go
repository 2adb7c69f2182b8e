package models

import (
	"testing"
	"time"
)

func TestPostMetaValidate(t *testing.T) {
	valid := PostMeta{
		Title: "Sealed Interfaces",
		Date:  time.Date(2025, 7, 6, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name    string
		modify  func(*PostMeta)
		wantErr bool
	}{
		{
			name:    "valid meta",
			modify:  func(m *PostMeta) {},
			wantErr: false,
		},
		{
			name:    "draft with tags is still valid",
			modify:  func(m *PostMeta) { m.Draft = true; m.Tags = []string{"java"} },
			wantErr: false,
		},
		{
			name:    "missing title",
			modify:  func(m *PostMeta) { m.Title = "" },
			wantErr: true,
		},
		{
			name:    "missing date",
			modify:  func(m *PostMeta) { m.Date = time.Time{} },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := valid
			tt.modify(&meta)
			err := meta.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPostMetaHasTag(t *testing.T) {
	meta := PostMeta{Tags: []string{"java", "language-design"}}

	if !meta.HasTag("java") {
		t.Error("expected HasTag(java) to be true")
	}
	if meta.HasTag("go") {
		t.Error("expected HasTag(go) to be false")
	}
	if (PostMeta{}).HasTag("any") {
		t.Error("expected empty tag set to contain nothing")
	}
}
