package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/kakuyomu"
	"github.com/fwojciec/kakuyomu/tool"
)

// Run executes the top command.
func (c *TopCmd) Run(deps *Dependencies) error {
	out, err := deps.Service.TopPage(deps.Ctx, c.Limit)
	return report(deps, out, err)
}

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	out, err := deps.Service.SearchWorks(deps.Ctx, kakuyomu.SearchParams{
		Query:                         c.Query,
		Page:                          c.Page,
		ExcludeQuery:                  c.Exclude,
		SerialStatus:                  c.SerialStatus,
		GenreName:                     c.Genre,
		TotalReviewPointRange:         c.ReviewPoints,
		TotalCharacterCountRange:      c.Characters,
		PublishedDateRange:            c.Published,
		LastEpisodePublishedDateRange: c.LastUpdated,
		Limit:                         c.Limit,
	})
	return report(deps, out, err)
}

// Run executes the episodes command.
func (c *EpisodesCmd) Run(deps *Dependencies) error {
	out, err := deps.Service.WorkEpisodes(deps.Ctx, c.WorkID, c.Limit)
	return report(deps, out, err)
}

// Run executes the episode command.
func (c *EpisodeCmd) Run(deps *Dependencies) error {
	out, err := deps.Service.EpisodeContent(deps.Ctx, c.WorkID, c.EpisodeID)
	return report(deps, out, err)
}

// Run executes the rankings command.
func (c *RankingsCmd) Run(deps *Dependencies) error {
	out, err := deps.Service.Rankings(deps.Ctx, kakuyomu.RankingParams{
		Genre:  c.Genre,
		Period: c.Period,
		Limit:  c.Limit,
	})
	return report(deps, out, err)
}

// Run executes the read command.
func (c *ReadCmd) Run(deps *Dependencies) error {
	out, err := deps.Service.ReadWork(deps.Ctx, c.WorkID, c.Limit)
	return report(deps, out, err)
}

// Run executes the call command. Tool failures are part of the output
// text, so the command itself only fails on malformed arguments.
func (c *CallCmd) Run(deps *Dependencies) error {
	args, err := tool.ParseArgs(c.Args)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", kakuyomu.ErrorMessage(err))
		return err
	}
	write(deps.Stdout, deps.Tools.Call(deps.Ctx, c.Tool, args))
	return nil
}

// Run executes the info command.
func (c *InfoCmd) Run(deps *Dependencies) error {
	write(deps.Stdout, deps.Tools.Info())
	return nil
}

func report(deps *Dependencies, out string, err error) error {
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", kakuyomu.ErrorMessage(err))
		return err
	}
	write(deps.Stdout, out)
	return nil
}

// write prints s, terminating it with a newline if it lacks one.
func write(w io.Writer, s string) {
	if s == "" {
		return
	}
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	fmt.Fprint(w, s)
}
