package issues

import (
	"github.com/google/go-github/v39/github"

	"issuegrip/internal/domain"
)

func fromGitHub(gi *github.Issue) domain.Issue {
	issue := domain.Issue{
		ID:        gi.GetID(),
		Number:    gi.GetNumber(),
		Title:     gi.GetTitle(),
		URL:       gi.GetHTMLURL(),
		State:     domain.IssueState(gi.GetState()),
		Author:    gi.GetUser().GetLogin(),
		CreatedAt: gi.GetCreatedAt(),
		UpdatedAt: gi.GetUpdatedAt(),
		Comments:  gi.GetComments(),
		Body:      gi.GetBody(),
	}
	for _, l := range gi.Labels {
		issue.Labels = append(issue.Labels, domain.Label{
			ID:          l.GetID(),
			Name:        l.GetName(),
			Color:       l.GetColor(),
			Description: l.GetDescription(),
		})
	}
	return issue
}

func fromGitHubList(list []*github.Issue) []domain.Issue {
	out := make([]domain.Issue, 0, len(list))
	for _, gi := range list {
		if gi == nil {
			continue
		}
		out = append(out, fromGitHub(gi))
	}
	return out
}
