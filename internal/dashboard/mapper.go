package dashboard

import (
	"sort"
	"strconv"
	"strings"

	"github.com/fortuna/gamecast/internal/ingest/bdl"
	"github.com/fortuna/gamecast/internal/projection"
)

// Defaults applied when upstream rows omit optional fields. Normalization
// never fails; missing data always resolves to these.
const (
	unknownAbbr = "??"
	leagueTeam  = "NBA"
	liveStatus  = "Live"
)

// Mapper turns raw upstream box score rows into ranked dashboard entries.
type Mapper struct {
	baselines projection.Table
}

// NewMapper creates a mapper backed by the given baseline priors.
func NewMapper(baselines projection.Table) *Mapper {
	return &Mapper{baselines: baselines}
}

// MapPayload converts one poll's raw rows into dashboard entries, ranked by
// projected points descending. The sort is stable: ties keep the upstream
// row order.
func (m *Mapper) MapPayload(rows []bdl.PlayerBoxScore) []Entry {
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, m.mapRow(row))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ProjectedPts > entries[j].ProjectedPts
	})

	return entries
}

func (m *Mapper) mapRow(row bdl.PlayerBoxScore) Entry {
	name := row.Player.FirstName + " " + row.Player.LastName
	minutes := ParseMinutes(row.Minutes)
	scoreDiff := row.Game.HomeTeamScore - row.Game.VisitorTeamScore

	return Entry{
		ID:             SlugID(name),
		Name:           name,
		Team:           orDefault(row.Team.Abbreviation, leagueTeam),
		GameID:         row.Game.ID,
		Matchup:        matchup(row.Game),
		GameStatus:     orDefault(row.Game.Status, liveStatus),
		ActualPoints:   row.Points,
		ActualAssists:  row.Assists,
		ActualRebounds: row.Rebounds,
		Fouls:          row.PersonalFouls,
		Minutes:        minutes,
		ProjectedPts:   m.baselines.LiveProjection(name, row.Points, minutes, row.PersonalFouls, scoreDiff),
	}
}

// SlugID derives the stable per-player key: lowercased display name with
// spaces replaced by hyphens.
func SlugID(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// ParseMinutes extracts the whole-minute count from an upstream "MM:SS"
// string. Absent values, strings without a separator, and non-numeric
// minute portions all parse as 0; seconds are ignored entirely.
func ParseMinutes(raw string) int {
	minutePart, _, found := strings.Cut(raw, ":")
	if !found {
		return 0
	}
	minutes, err := strconv.Atoi(minutePart)
	if err != nil {
		return 0
	}
	return minutes
}

func matchup(game bdl.GameSnapshot) string {
	visitor := orDefault(game.VisitorTeam.Abbreviation, unknownAbbr)
	home := orDefault(game.HomeTeam.Abbreviation, unknownAbbr)
	return visitor + " @ " + home
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
