package sports

import (
	"log/slog"
	"time"

	"github.com/novahq/nova-admin/internal"
	sportsDatamodel "github.com/novahq/nova-admin/internal/core/datamodel/sports"
)

type Team struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	League string `json:"league"`
	City   string `json:"city"`
}

type Game struct {
	ID         int64     `json:"id"`
	League     string    `json:"league"`
	HomeTeamID int64     `json:"home_team_id"`
	AwayTeamID int64     `json:"away_team_id"`
	HomeScore  *int      `json:"home_score,omitempty"`
	AwayScore  *int      `json:"away_score,omitempty"`
	Status     string    `json:"status"`
	StartsAt   time.Time `json:"starts_at"`
}

// GameFilter narrows the games listing. Zero values mean no filtering.
type GameFilter struct {
	League string
	Status string
	Limit  int
	Offset int
}

type RepositoryAPI interface {
	GetTeams(league string, limit, offset int) ([]*sportsDatamodel.Team, error)
	GetGames(filter GameFilter) ([]*sportsDatamodel.Game, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetTeams(league string, limit, offset int) ([]Team, error) {
	rows, err := s.repo.GetTeams(league, limit, offset)
	if err != nil {
		s.logger.Error("failed to list teams", "league", league, "error", err)
		return nil, internal.NewInternalError("failed to list teams", err)
	}

	teams := make([]Team, 0, len(rows))
	for _, row := range rows {
		teams = append(teams, Team{
			ID:     row.ID,
			Name:   row.Name,
			League: row.League,
			City:   row.City,
		})
	}
	return teams, nil
}

func (s *Service) GetGames(filter GameFilter) ([]Game, error) {
	rows, err := s.repo.GetGames(filter)
	if err != nil {
		s.logger.Error("failed to list games", "league", filter.League, "error", err)
		return nil, internal.NewInternalError("failed to list games", err)
	}

	games := make([]Game, 0, len(rows))
	for _, row := range rows {
		games = append(games, Game{
			ID:         row.ID,
			League:     row.League,
			HomeTeamID: row.HomeTeamID,
			AwayTeamID: row.AwayTeamID,
			HomeScore:  row.HomeScore,
			AwayScore:  row.AwayScore,
			Status:     row.Status,
			StartsAt:   row.StartsAt,
		})
	}
	return games, nil
}
