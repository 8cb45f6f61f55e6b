package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with bootstrap and sample data",
	Long:  `Seed the permission catalog, system group, bootstrap superuser, page settings and sample dashboard data.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initGormDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			clearSeedData(db)
		}

		seedPermissions(db)
		adminGroupID := seedAdminGroup(db)
		adminID := seedSuperuser(db, cfg.Security.BCryptCost, adminGroupID)
		seedEditor(db, cfg.Security.BCryptCost, adminID)
		seedPageSettings(db)
		seedChannels(db)
		seedWeatherLocations(db)
		seedSports(db)

		fmt.Println("Seeding complete")
	},
}

// permissionCatalog is every permission the dashboard knows about. The
// resolver treats keys as opaque strings; this table exists for labels and
// grant bookkeeping.
var permissionCatalog = []struct {
	App      string
	Resource string
	Action   string
	Desc     string
}{
	{"nova", "system", "admin", "Full administrative access to system pages"},
	{"nova", "dashboard", "manage_config", "Can change dashboard page settings"},
	{"nova", "weather", "read", "Can view the weather page"},
	{"nova", "weather", "write", "Can override and refresh weather data"},
	{"nova", "sports", "read", "Can view the sports page"},
	{"nova", "sports", "write", "Can edit sports data"},
}

func clearSeedData(db *gorm.DB) {
	// Delete in dependency order so foreign keys never block the sweep.
	tables := []string{
		"channel_access",
		"channels",
		"user_permissions",
		"group_permissions",
		"user_groups",
		"page_settings",
		"weather_locations",
		"sports_games",
		"sports_teams",
		"permissions",
		"groups",
		"users",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("failed to clear table %s: %v", table, err)
		}
	}
	fmt.Println("Cleared existing data")
}

func seedPermissions(db *gorm.DB) {
	for _, p := range permissionCatalog {
		var pid int64
		row := db.Raw("SELECT id FROM permissions WHERE app_key = ? AND resource = ? AND action = ?", p.App, p.Resource, p.Action).Row()
		if err := row.Scan(&pid); err == nil {
			continue
		}

		if err := db.Exec("INSERT INTO permissions (app_key, resource, action, description, created_at) VALUES (?, ?, ?, ?, now())",
			p.App, p.Resource, p.Action, p.Desc).Error; err != nil {
			log.Fatalf("failed to insert permission %s.%s.%s: %v", p.App, p.Resource, p.Action, err)
		}
		fmt.Printf("Seeded permission: %s.%s.%s\n", p.App, p.Resource, p.Action)
	}
}

func seedAdminGroup(db *gorm.DB) int64 {
	const groupName = "Nova Administrators"

	var groupID int64
	row := db.Raw("SELECT id FROM groups WHERE name = ?", groupName).Row()
	if err := row.Scan(&groupID); err != nil {
		if err := db.Exec("INSERT INTO groups (name, description, color, is_system, created_at, updated_at) VALUES (?, ?, ?, true, now(), now())",
			groupName, "Built-in administrator group", "#7c3aed").Error; err != nil {
			log.Fatalf("failed to insert admin group: %v", err)
		}
		if err := db.Raw("SELECT id FROM groups WHERE name = ?", groupName).Row().Scan(&groupID); err != nil {
			log.Fatalf("admin group not found after insert: %v", err)
		}
		fmt.Println("Seeded system group:", groupName)
	}

	var adminPermID int64
	if err := db.Raw("SELECT id FROM permissions WHERE app_key = 'nova' AND resource = 'system' AND action = 'admin'").Row().Scan(&adminPermID); err != nil {
		log.Fatalf("admin permission not found: %v", err)
	}

	var exists int
	if err := db.Raw("SELECT 1 FROM group_permissions WHERE group_id = ? AND permission_id = ?", groupID, adminPermID).Row().Scan(&exists); err != nil {
		if err := db.Exec("INSERT INTO group_permissions (group_id, permission_id, granted_by, created_at) VALUES (?, ?, NULL, now())",
			groupID, adminPermID).Error; err != nil {
			log.Fatalf("failed to grant admin permission to group: %v", err)
		}
	}

	return groupID
}

// seedSuperuser guarantees at least one superuser exists so the dashboard
// never starts locked after a fresh install.
func seedSuperuser(db *gorm.DB, bcryptCost int, adminGroupID int64) int64 {
	const adminEmail = "admin@nova.dev"

	hash, err := bcrypt.GenerateFromPassword([]byte("change-me-on-first-login"), bcryptCost)
	if err != nil {
		log.Fatalf("failed to hash bootstrap password: %v", err)
	}

	var adminID int64
	row := db.Raw("SELECT id FROM users WHERE email = ?", adminEmail).Row()
	if err := row.Scan(&adminID); err != nil {
		if err := db.Exec("INSERT INTO users (email, name, password_hash, status, is_superuser, created_at, updated_at) VALUES (?, ?, ?, 'active', true, now(), now())",
			adminEmail, "Nova Admin", string(hash)).Error; err != nil {
			log.Fatalf("failed to insert bootstrap superuser: %v", err)
		}
		if err := db.Raw("SELECT id FROM users WHERE email = ?", adminEmail).Row().Scan(&adminID); err != nil {
			log.Fatalf("bootstrap superuser not found after insert: %v", err)
		}
		fmt.Println("Seeded bootstrap superuser:", adminEmail)
	}

	var exists int
	if err := db.Raw("SELECT 1 FROM user_groups WHERE user_id = ? AND group_id = ?", adminID, adminGroupID).Row().Scan(&exists); err != nil {
		if err := db.Exec("INSERT INTO user_groups (user_id, group_id, created_at) VALUES (?, ?, now())", adminID, adminGroupID).Error; err != nil {
			log.Fatalf("failed to add superuser to admin group: %v", err)
		}
	}

	return adminID
}

func seedEditor(db *gorm.DB, bcryptCost int, grantedBy int64) {
	const editorEmail = "editor@nova.dev"

	hash, err := bcrypt.GenerateFromPassword([]byte("change-me-on-first-login"), bcryptCost)
	if err != nil {
		log.Fatalf("failed to hash editor password: %v", err)
	}

	var editorID int64
	row := db.Raw("SELECT id FROM users WHERE email = ?", editorEmail).Row()
	if err := row.Scan(&editorID); err != nil {
		if err := db.Exec("INSERT INTO users (email, name, password_hash, status, is_superuser, created_at, updated_at) VALUES (?, ?, ?, 'active', false, now(), now())",
			editorEmail, "Weather Editor", string(hash)).Error; err != nil {
			log.Fatalf("failed to insert editor user: %v", err)
		}
		if err := db.Raw("SELECT id FROM users WHERE email = ?", editorEmail).Row().Scan(&editorID); err != nil {
			log.Fatalf("editor user not found after insert: %v", err)
		}
		fmt.Println("Seeded editor user:", editorEmail)
	}

	for _, action := range []string{"read", "write"} {
		var pid int64
		if err := db.Raw("SELECT id FROM permissions WHERE app_key = 'nova' AND resource = 'weather' AND action = ?", action).Row().Scan(&pid); err != nil {
			log.Fatalf("weather %s permission not found: %v", action, err)
		}

		var exists int
		if err := db.Raw("SELECT 1 FROM user_permissions WHERE user_id = ? AND permission_id = ?", editorID, pid).Row().Scan(&exists); err == nil {
			continue
		}

		if err := db.Exec("INSERT INTO user_permissions (user_id, permission_id, granted_by, created_at) VALUES (?, ?, ?, now())",
			editorID, pid, grantedBy).Error; err != nil {
			log.Fatalf("failed to grant weather %s to editor: %v", action, err)
		}
	}
}

func seedPageSettings(db *gorm.DB) {
	pages := []string{"users", "groups", "connections", "channels", "dashboard-config", "weather", "sports"}
	for _, page := range pages {
		var exists int
		row := db.Raw("SELECT 1 FROM page_settings WHERE app_key = 'nova' AND page_key = ?", page).Row()
		if err := row.Scan(&exists); err != nil {
			if err := db.Exec("INSERT INTO page_settings (app_key, page_key, is_visible, updated_at) VALUES ('nova', ?, true, now())", page).Error; err != nil {
				log.Fatalf("failed to insert page setting %s: %v", page, err)
			}
		}
	}
	fmt.Println("Page settings seeded")
}

func seedChannels(db *gorm.DB) {
	channels := []struct {
		ID   string
		Name string
		Desc string
	}{
		{"alerts", "Alerts", "Operational alert broadcasts"},
		{"announcements", "Announcements", "Company-wide announcements"},
	}

	for _, c := range channels {
		var exists int
		row := db.Raw("SELECT 1 FROM channels WHERE id = ?", c.ID).Row()
		if err := row.Scan(&exists); err != nil {
			if err := db.Exec("INSERT INTO channels (id, name, description, created_at) VALUES (?, ?, ?, now())", c.ID, c.Name, c.Desc).Error; err != nil {
				log.Fatalf("failed to insert channel %s: %v", c.ID, err)
			}
			fmt.Printf("Seeded channel: %s\n", c.ID)
		}
	}
}

// seedWeatherLocations inserts locations with plain field values; overrides
// only ever come from operator actions.
func seedWeatherLocations(db *gorm.DB) {
	locations := []struct {
		ProviderID  string
		Name        string
		Temperature float64
		Humidity    float64
		WindSpeed   float64
		Condition   string
	}{
		{"loc-seattle", "Seattle", 14.5, 81, 12.3, "rain"},
		{"loc-phoenix", "Phoenix", 38.2, 18, 6.5, "clear"},
		{"loc-chicago", "Chicago", 22.1, 54, 19.8, "cloudy"},
	}

	for _, l := range locations {
		var exists int
		row := db.Raw("SELECT 1 FROM weather_locations WHERE provider_id = ?", l.ProviderID).Row()
		if err := row.Scan(&exists); err == nil {
			continue
		}

		// Plain values serialize as bare JSON scalars.
		if err := db.Exec(`INSERT INTO weather_locations
			(provider_id, name, temperature, humidity, wind_speed, condition, fetched_at, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, now(), now())`,
			l.ProviderID,
			fmt.Sprintf("%q", l.Name),
			fmt.Sprintf("%g", l.Temperature),
			fmt.Sprintf("%g", l.Humidity),
			fmt.Sprintf("%g", l.WindSpeed),
			fmt.Sprintf("%q", l.Condition),
			time.Now()).Error; err != nil {
			log.Fatalf("failed to insert weather location %s: %v", l.ProviderID, err)
		}
		fmt.Printf("Seeded weather location: %s\n", l.Name)
	}
}

func seedSports(db *gorm.DB) {
	teams := []struct {
		Name   string
		League string
		City   string
	}{
		{"Storm", "NWL", "Seattle"},
		{"Suns", "NWL", "Phoenix"},
		{"Fire", "NWL", "Chicago"},
	}

	teamIDs := make(map[string]int64, len(teams))
	for _, t := range teams {
		var id int64
		row := db.Raw("SELECT id FROM sports_teams WHERE name = ? AND league = ?", t.Name, t.League).Row()
		if err := row.Scan(&id); err != nil {
			if err := db.Exec("INSERT INTO sports_teams (name, league, city, created_at) VALUES (?, ?, ?, now())", t.Name, t.League, t.City).Error; err != nil {
				log.Fatalf("failed to insert team %s: %v", t.Name, err)
			}
			if err := db.Raw("SELECT id FROM sports_teams WHERE name = ? AND league = ?", t.Name, t.League).Row().Scan(&id); err != nil {
				log.Fatalf("team not found after insert %s: %v", t.Name, err)
			}
			fmt.Printf("Seeded team: %s\n", t.Name)
		}
		teamIDs[t.Name] = id
	}

	var gameCount int64
	if err := db.Raw("SELECT COUNT(*) FROM sports_games").Row().Scan(&gameCount); err != nil || gameCount > 0 {
		return
	}

	games := []struct {
		Home   string
		Away   string
		Status string
		Starts time.Time
	}{
		{"Storm", "Suns", "final", time.Now().Add(-48 * time.Hour)},
		{"Fire", "Storm", "live", time.Now().Add(-time.Hour)},
		{"Suns", "Fire", "scheduled", time.Now().Add(72 * time.Hour)},
	}

	for _, g := range games {
		if err := db.Exec("INSERT INTO sports_games (league, home_team_id, away_team_id, status, starts_at, created_at) VALUES ('NWL', ?, ?, ?, ?, now())",
			teamIDs[g.Home], teamIDs[g.Away], g.Status, g.Starts).Error; err != nil {
			log.Fatalf("failed to insert game %s vs %s: %v", g.Home, g.Away, err)
		}
	}
	fmt.Println("Sports data seeded")
}
