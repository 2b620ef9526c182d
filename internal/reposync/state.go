package reposync

// RepositoryState describes the on-disk working copy of the compliance
// repository. The synchronizer is the only mutator; sessions hold the most
// recently returned value.
type RepositoryState struct {
	LocalPath     string
	CurrentBranch string
	Cloned        bool
}
