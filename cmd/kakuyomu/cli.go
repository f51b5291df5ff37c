package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/kakuyomu"
	"github.com/fwojciec/kakuyomu/tool"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Service kakuyomu.Service
	Tools   *tool.Registry
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	BaseURL     string        `name:"base-url" env:"KAKUYOMU_BASE_URL" default:"https://kakuyomu.jp" help:"Content source root URL"`
	Timeout     time.Duration `short:"t" env:"KAKUYOMU_TIMEOUT" default:"10s" help:"Fetch timeout per page"`
	RPS         float64       `name:"rps" env:"KAKUYOMU_RPS" default:"1" help:"Maximum requests per second (0 disables pacing)"`
	UserAgent   string        `name:"user-agent" env:"KAKUYOMU_USER_AGENT" default:"kakuyomu-reader/1.0" help:"User-Agent header for HTTP requests"`
	Browser     bool          `help:"Fetch pages with headless Chrome"`
	Concurrency int           `short:"c" default:"3" help:"Concurrent episode fetches for read"`
	Verbose     bool          `short:"v" help:"Log every fetch and operation"`

	Top      TopCmd      `cmd:"" help:"List works from the top page"`
	Search   SearchCmd   `cmd:"" help:"Search works"`
	Episodes EpisodesCmd `cmd:"" help:"List episodes of a work"`
	Episode  EpisodeCmd  `cmd:"" help:"Print the body of an episode"`
	Rankings RankingsCmd `cmd:"" help:"List ranked works"`
	Read     ReadCmd     `cmd:"" help:"Print the bodies of a work's episodes"`
	Call     CallCmd     `cmd:"" help:"Invoke a tool by name with key=value arguments"`
	Info     InfoCmd     `cmd:"" help:"Describe available tools"`
}

// TopCmd is the "top" subcommand.
type TopCmd struct {
	Limit int `short:"n" default:"10" help:"Maximum number of works"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query        string `arg:"" help:"Search query"`
	Page         int    `short:"p" default:"1" help:"Result page"`
	Exclude      string `name:"exclude" help:"Terms to exclude"`
	SerialStatus string `name:"serial-status" help:"Serial status filter (e.g. running, completed)"`
	Genre        string `short:"g" help:"Genre filter"`
	ReviewPoints string `name:"review-points" help:"Total review point range"`
	Characters   string `name:"characters" help:"Total character count range"`
	Published    string `name:"published" help:"Publish date range"`
	LastUpdated  string `name:"last-updated" help:"Last episode publish date range"`
	Limit        int    `short:"n" default:"10" help:"Maximum number of works"`
}

// EpisodesCmd is the "episodes" subcommand.
type EpisodesCmd struct {
	WorkID string `arg:"" help:"Work ID"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of episodes"`
}

// EpisodeCmd is the "episode" subcommand.
type EpisodeCmd struct {
	WorkID    string `arg:"" help:"Work ID"`
	EpisodeID string `arg:"" help:"Episode ID"`
}

// RankingsCmd is the "rankings" subcommand.
type RankingsCmd struct {
	Genre  string `short:"g" default:"all" help:"Ranking genre"`
	Period string `short:"p" default:"daily" help:"Ranking period (daily, weekly, monthly, yearly, entire)"`
	Limit  int    `short:"n" default:"10" help:"Maximum number of works"`
}

// ReadCmd is the "read" subcommand.
type ReadCmd struct {
	WorkID string `arg:"" help:"Work ID"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of episodes"`
}

// CallCmd is the "call" subcommand.
type CallCmd struct {
	Tool string   `arg:"" help:"Tool name (see 'kakuyomu info')"`
	Args []string `arg:"" optional:"" help:"Arguments as key=value"`
}

// InfoCmd is the "info" subcommand.
type InfoCmd struct{}
