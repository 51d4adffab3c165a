package remote

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/go-github/v81/github"
	"golang.org/x/oauth2"
)

// NewDefaultBranchLookup returns a DefaultBranch function backed by the
// GitHub API. An empty token yields an unauthenticated client, which is
// sufficient for public repositories.
func NewDefaultBranchLookup(token string) func(ctx context.Context, owner, repo string) (string, error) {
	var hc *http.Client
	if token != "" {
		hc = oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	}
	client := github.NewClient(hc)

	return func(ctx context.Context, owner, repo string) (string, error) {
		r, _, err := client.Repositories.Get(ctx, owner, repo)
		if err != nil {
			return "", err
		}
		branch := r.GetDefaultBranch()
		if branch == "" {
			return "", errors.New("repository has no default branch")
		}
		return branch, nil
	}
}
