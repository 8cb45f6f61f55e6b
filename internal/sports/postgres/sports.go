package postgres

import (
	"gorm.io/gorm"

	sportsDatamodel "github.com/novahq/nova-admin/internal/core/datamodel/sports"
	"github.com/novahq/nova-admin/internal/sports"
)

type SportsRepository struct {
	db *gorm.DB
}

func NewSportsRepository(db *gorm.DB) *SportsRepository {
	return &SportsRepository{db: db}
}

func (r *SportsRepository) GetTeams(league string, limit, offset int) ([]*sportsDatamodel.Team, error) {
	query := r.db.Order("name ASC").Limit(limit).Offset(offset)
	if league != "" {
		query = query.Where("league = ?", league)
	}

	var teams []*sportsDatamodel.Team
	err := query.Find(&teams).Error
	return teams, err
}

func (r *SportsRepository) GetGames(filter sports.GameFilter) ([]*sportsDatamodel.Game, error) {
	query := r.db.Order("starts_at DESC").Limit(filter.Limit).Offset(filter.Offset)
	if filter.League != "" {
		query = query.Where("league = ?", filter.League)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var games []*sportsDatamodel.Game
	err := query.Find(&games).Error
	return games, err
}
