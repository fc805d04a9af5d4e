package model_test

import (
	"testing"

	"folder-pack/model"

	"github.com/stretchr/testify/assert"
)

func TestFolderName(t *testing.T) {
	tests := []struct {
		name string
		ref  model.RepoReference
		want string
	}{
		{"repository root", model.RepoReference{Repository: "repo"}, "repo"},
		{"single segment", model.RepoReference{Repository: "repo", Path: "docs"}, "docs"},
		{"nested", model.RepoReference{Repository: "repo", Path: "src/pkg/util"}, "util"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ref.FolderName())
		})
	}
}

func TestEntryKindString(t *testing.T) {
	assert.Equal(t, "file", model.KindFile.String())
	assert.Equal(t, "dir", model.KindDirectory.String())
	assert.Equal(t, "other", model.KindOther.String())
}
