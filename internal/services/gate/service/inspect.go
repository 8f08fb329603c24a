package service

import (
	"context"

	"refgate/internal/gitcli"
	perr "refgate/internal/platform/errors"
	"refgate/internal/services/gate/domain"
)

// Inspector adapts the git CLI onto the domain's InspectorPort
type Inspector struct {
	git *gitcli.Client
}

// NewInspector builds an Inspector over git
func NewInspector(git *gitcli.Client) *Inspector { return &Inspector{git: git} }

// ParentCount returns the number of parent edges on commit
func (i *Inspector) ParentCount(ctx context.Context, commit string) (int, error) {
	return i.git.ParentCount(ctx, commit)
}

// Verify checks the signature on commit against trustStorePath (empty means
// the ambient keyring) and maps git's status code onto the verdict enum.
// A code outside the known set is corrupt backend output and escalates
func (i *Inspector) Verify(ctx context.Context, commit, trustStorePath string) (domain.VerificationVerdict, error) {
	code, err := i.git.VerificationCode(ctx, commit, trustStorePath)
	if err != nil {
		return 0, err
	}
	v, ok := domain.VerificationFromCode(code)
	if !ok {
		return 0, perr.CorruptDataf("unknown verification status %q for commit %s", string(code), commit)
	}
	return v, nil
}

// Introduced lists every commit the update brings into the repository
func (i *Inspector) Introduced(ctx context.Context, oldID, newID string) ([]string, error) {
	return i.git.ListIntroduced(ctx, oldID, newID)
}
