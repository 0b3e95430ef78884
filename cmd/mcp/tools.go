package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fng3r/cis-haxball/services"
	"github.com/fng3r/cis-haxball/stats"
)

type toolDeps struct {
	standings  services.StandingsService
	statistics services.StatisticsService
	rating     services.RatingService
}

type LeagueArgs struct {
	LeagueID int `json:"league_id" jsonschema:"League (tournament) id"`
}

type LeadersArgs struct {
	LeagueID int    `json:"league_id" jsonschema:"League (tournament) id"`
	Metric   string `json:"metric" jsonschema:"goals, assists, goals_assists, clean_sheets, matches, yellow_cards or red_cards (default goals)"`
	PerMatch bool   `json:"per_match" jsonschema:"Rank by average per match (players with at least 10 matches)"`
	Limit    int    `json:"limit" jsonschema:"How many players to return (default 10)"`
}

type TeamArgs struct {
	TeamID        int  `json:"team_id" jsonschema:"Team id"`
	CurrentSeason bool `json:"current_season" jsonschema:"If true, only the active season is counted"`
}

type PlayerArgs struct {
	PlayerID      int  `json:"player_id" jsonschema:"Player id"`
	CurrentSeason bool `json:"current_season" jsonschema:"If true, only the active season is counted"`
}

type RatingArgs struct {
	Number int `json:"number" jsonschema:"Rating version number (0 = latest)"`
}

func registerTools(server *mcp.Server, deps toolDeps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "league_table",
		Description: "Returns the standings of a league with head-to-head tie-breaks applied",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args LeagueArgs) (*mcp.CallToolResult, any, error) {
		table, err := deps.standings.GetTable(ctx, args.LeagueID)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(table), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "league_leaders",
		Description: "Returns the top players of a league by a statistics metric",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args LeadersArgs) (*mcp.CallToolResult, any, error) {
		query, err := leaderQuery(args)
		if err != nil {
			return toolError(err), nil, nil
		}
		rows, err := deps.statistics.LeagueLeaders(ctx, args.LeagueID, query)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(map[string]any{
			"league_id": args.LeagueID,
			"metric":    query.Metric,
			"leaders":   rows,
		}), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "team_statistics",
		Description: "Returns per-season, per-category and overall statistics and records of a team",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args TeamArgs) (*mcp.CallToolResult, any, error) {
		report, err := deps.statistics.TeamStatistics(ctx, args.TeamID, args.CurrentSeason)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(report), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "player_statistics",
		Description: "Returns per-season, per-category and overall statistics and records of a player",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args PlayerArgs) (*mcp.CallToolResult, any, error) {
		report, err := deps.statistics.PlayerStatistics(ctx, args.PlayerID, args.CurrentSeason)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(report), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "team_rating",
		Description: "Returns a published version of the composite team rating",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args RatingArgs) (*mcp.CallToolResult, any, error) {
		if args.Number < 0 {
			return toolError(fmt.Errorf("rating version number must not be negative")), nil, nil
		}
		var (
			version any
			err     error
		)
		if args.Number == 0 {
			version, err = deps.rating.GetLatest(ctx)
		} else {
			version, err = deps.rating.GetByNumber(ctx, args.Number)
		}
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(version), nil, nil
	})
}

func leaderQuery(args LeadersArgs) (stats.LeaderQuery, error) {
	query := stats.LeaderQuery{Metric: stats.MetricGoals, PerMatch: args.PerMatch, Limit: 10}
	if args.Metric != "" {
		metric, err := stats.ParseMetric(args.Metric)
		if err != nil {
			return query, err
		}
		query.Metric = metric
	}
	if args.Limit > 0 {
		query.Limit = min(args.Limit, 100)
	}
	return query, nil
}

func toolJSON(v any) *mcp.CallToolResult {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
