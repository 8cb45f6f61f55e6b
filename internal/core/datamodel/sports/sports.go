package sports

import "time"

type Team struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	League    string    `gorm:"column:league;not null"`
	City      string    `gorm:"column:city"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

func (Team) TableName() string {
	return "sports_teams"
}

type Game struct {
	ID         int64     `gorm:"primaryKey"`
	League     string    `gorm:"column:league;not null"`
	HomeTeamID int64     `gorm:"column:home_team_id;not null"`
	AwayTeamID int64     `gorm:"column:away_team_id;not null"`
	HomeScore  *int      `gorm:"column:home_score"`
	AwayScore  *int      `gorm:"column:away_score"`
	Status     string    `gorm:"column:status;default:scheduled"`
	StartsAt   time.Time `gorm:"column:starts_at"`
	CreatedAt  time.Time `gorm:"column:created_at;default:now()"`
}

func (Game) TableName() string {
	return "sports_games"
}
