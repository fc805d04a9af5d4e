package model

import "path"

// RepoReference identifies a folder inside a GitHub repository at a branch.
type RepoReference struct {
	Owner      string
	Repository string
	Branch     string
	Path       string
}

// FolderName is the default name of the local root directory: the last
// segment of the folder path, or the repository name for the repository root.
func (r RepoReference) FolderName() string {
	if r.Path == "" {
		return r.Repository
	}
	return path.Base(r.Path)
}

type EntryKind int

const (
	KindOther EntryKind = iota
	KindFile
	KindDirectory
)

func (k EntryKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "dir"
	default:
		return "other"
	}
}

// Entry is one child of a listed directory.
type Entry struct {
	Name        string
	Kind        EntryKind
	Type        string // type as reported by the API, kept for unsupported kinds
	DownloadURL string
	SHA         string
	Size        int64
}
