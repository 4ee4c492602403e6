package highscores

import (
	"fmt"

	"github.com/cdfisher/osrs-tools/internal/apperr"
)

// Key identifies a canonical highscores entry, e.g. "attack" or "vet_ion".
type Key string

// Kind classifies a canonical entry.
type Kind string

const (
	KindSkill    Kind = "skill"
	KindActivity Kind = "activity"
	KindBoss     Kind = "boss"
)

// Entry pairs a canonical key with the display name used by the upstream service.
type Entry struct {
	Key  Key
	Name string
}

// Skills lists the Overall aggregate followed by the 23 skills, in upstream order.
var Skills = []Entry{
	{"overall", "Overall"},
	{"attack", "Attack"},
	{"defence", "Defence"},
	{"strength", "Strength"},
	{"hitpoints", "Hitpoints"},
	{"ranged", "Ranged"},
	{"prayer", "Prayer"},
	{"magic", "Magic"},
	{"cooking", "Cooking"},
	{"woodcutting", "Woodcutting"},
	{"fletching", "Fletching"},
	{"fishing", "Fishing"},
	{"firemaking", "Firemaking"},
	{"crafting", "Crafting"},
	{"smithing", "Smithing"},
	{"mining", "Mining"},
	{"herblore", "Herblore"},
	{"agility", "Agility"},
	{"thieving", "Thieving"},
	{"slayer", "Slayer"},
	{"farming", "Farming"},
	{"runecraft", "Runecraft"},
	{"hunter", "Hunter"},
	{"construction", "Construction"},
}

// Activities lists minigame and clue entries. They precede the bosses in the
// upstream "activities" array.
var Activities = []Entry{
	{"league_points", "League Points"},
	{"bounty_hunter_hunter", "Bounty Hunter - Hunter"},
	{"bounty_hunter_rogue", "Bounty Hunter - Rogue"},
	{"bounty_hunter_legacy_hunter", "Bounty Hunter (Legacy) - Hunter"},
	{"bounty_hunter_legacy_rogue", "Bounty Hunter (Legacy) - Rogue"},
	{"clue_scrolls_all", "Clue Scrolls (all)"},
	{"clue_scrolls_beginner", "Clue Scrolls (beginner)"},
	{"clue_scrolls_easy", "Clue Scrolls (easy)"},
	{"clue_scrolls_medium", "Clue Scrolls (medium)"},
	{"clue_scrolls_hard", "Clue Scrolls (hard)"},
	{"clue_scrolls_elite", "Clue Scrolls (elite)"},
	{"clue_scrolls_master", "Clue Scrolls (master)"},
	{"lms_rank", "LMS - Rank"},
	{"pvp_arena_rank", "PvP Arena - Rank"},
	{"soul_wars_zeal", "Soul Wars Zeal"},
	{"rifts_closed", "Rifts closed"},
}

// Bosses lists boss kill-count entries in upstream order.
var Bosses = []Entry{
	{"abyssal_sire", "Abyssal Sire"},
	{"alchemical_hydra", "Alchemical Hydra"},
	{"artio", "Artio"},
	{"barrows_chests", "Barrows Chests"},
	{"bryophyta", "Bryophyta"},
	{"callisto", "Callisto"},
	{"calvar_ion", "Calvar'ion"},
	{"cerberus", "Cerberus"},
	{"chambers_of_xeric", "Chambers of Xeric"},
	{"chambers_of_xeric_challenge_mode", "Chambers of Xeric: Challenge Mode"},
	{"chaos_elemental", "Chaos Elemental"},
	{"chaos_fanatic", "Chaos Fanatic"},
	{"commander_zilyana", "Commander Zilyana"},
	{"corporeal_beast", "Corporeal Beast"},
	{"crazy_archaeologist", "Crazy Archaeologist"},
	{"dagannoth_prime", "Dagannoth Prime"},
	{"dagannoth_rex", "Dagannoth Rex"},
	{"dagannoth_supreme", "Dagannoth Supreme"},
	{"deranged_archaeologist", "Deranged Archaeologist"},
	{"general_graardor", "General Graardor"},
	{"giant_mole", "Giant Mole"},
	{"grotesque_guardians", "Grotesque Guardians"},
	{"hespori", "Hespori"},
	{"kalphite_queen", "Kalphite Queen"},
	{"king_black_dragon", "King Black Dragon"},
	{"kraken", "Kraken"},
	{"kree_arra", "Kree'Arra"},
	{"kril_tsutsaroth", "K'ril Tsutsaroth"},
	{"mimic", "Mimic"},
	{"nex", "Nex"},
	{"nightmare", "Nightmare"},
	{"phosanis_nightmare", "Phosani's Nightmare"},
	{"obor", "Obor"},
	{"phantom_muspah", "Phantom Muspah"},
	{"sarachnis", "Sarachnis"},
	{"scorpia", "Scorpia"},
	{"skotizo", "Skotizo"},
	{"spindel", "Spindel"},
	{"tempoross", "Tempoross"},
	{"the_gauntlet", "The Gauntlet"},
	{"the_corrupted_gauntlet", "The Corrupted Gauntlet"},
	{"theatre_of_blood", "Theatre of Blood"},
	{"theatre_of_blood_hard_mode", "Theatre of Blood: Hard Mode"},
	{"thermonuclear_smoke_devil", "Thermonuclear Smoke Devil"},
	{"tombs_of_amascut", "Tombs of Amascut"},
	{"tombs_of_amascut_expert_mode", "Tombs of Amascut: Expert Mode"},
	{"tzkal_zuk", "TzKal-Zuk"},
	{"tztok_jad", "TzTok-Jad"},
	{"venenatis", "Venenatis"},
	{"vet_ion", "Vet'ion"},
	{"vorkath", "Vorkath"},
	{"wintertodt", "Wintertodt"},
	{"zalcano", "Zalcano"},
	{"zulrah", "Zulrah"},
}

type indexed struct {
	Entry
	kind     Kind
	position int
}

var (
	byName = map[string]indexed{}
	byKey  = map[Key]indexed{}
)

func init() {
	register := func(entries []Entry, kind Kind) {
		for i, e := range entries {
			ix := indexed{Entry: e, kind: kind, position: i}
			byName[e.Name] = ix
			byKey[e.Key] = ix
		}
	}
	register(Skills, KindSkill)
	register(Activities, KindActivity)
	register(Bosses, KindBoss)
}

// LookupName maps an upstream display name to its canonical entry.
func LookupName(name string) (Entry, Kind, bool) {
	ix, ok := byName[name]
	return ix.Entry, ix.kind, ok
}

// KindOf reports whether key names a skill, activity or boss.
func KindOf(key Key) (Kind, error) {
	ix, ok := byKey[key]
	if !ok {
		return "", fmt.Errorf("%w: unknown highscores entry %q", apperr.ErrNotFound, key)
	}
	return ix.kind, nil
}

// Keys returns the canonical keys of entries in order.
func Keys(entries []Entry) []Key {
	keys := make([]Key, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return keys
}
