package access

// Page keys as the dashboard routes know them.
const (
	PageUsers           = "users"
	PageGroups          = "groups"
	PageConnections     = "connections"
	PageChannels        = "channels"
	PageDashboardConfig = "dashboard-config"
	PageWeather         = "weather"
	PageSports          = "sports"
)

// systemPages require admin-or-superuser for both read and write, ignoring
// the generic per-page tables.
var systemPages = map[string]struct{}{
	PageUsers:       {},
	PageGroups:      {},
	PageConnections: {},
	PageChannels:    {},
}

var adminKey = NewKey(AppNova, "system", ActionAdmin).String()

var manageConfigKey = NewKey(AppNova, "dashboard", ActionManageConfig).String()

// Pages lists every page key the dashboard declares, for UI bootstrap
// responses.
func Pages() []string {
	return []string{
		PageUsers,
		PageGroups,
		PageConnections,
		PageChannels,
		PageDashboardConfig,
		PageWeather,
		PageSports,
	}
}

// pageReadPerms maps a page to the permission required to see it. Pages
// without an entry default to visible so undeclared pages are never hidden.
var pageReadPerms = map[string]string{
	PageWeather: NewKey(AppNova, "weather", ActionRead).String(),
	PageSports:  NewKey(AppNova, "sports", ActionRead).String(),
}

// pageWritePerms maps a page to the permission required to mutate it. Pages
// without an entry default to "any authenticated session".
var pageWritePerms = map[string]string{
	PageWeather: NewKey(AppNova, "weather", ActionWrite).String(),
	PageSports:  NewKey(AppNova, "sports", ActionWrite).String(),
}
